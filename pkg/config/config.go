/*
Package config manages the TOML config of snipserve.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/snipserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Completer CompleterConfig `toml:"completer"`
	Server    ServerConfig    `toml:"server"`
	CLI       CliConfig       `toml:"cli"`
}

// CompleterConfig selects the language and the extra completion sources.
type CompleterConfig struct {
	Language   string `toml:"language"`
	LearnWords bool   `toml:"learn_words"`
	WordList   string `toml:"word_list"`
	Catalog    string `toml:"catalog"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxCandidates int `toml:"max_candidates"`
	MaxText       int `toml:"max_text"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	MaxVisible int  `toml:"max_visible"`
	ShowDocs   bool `toml:"show_docs"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Completer: CompleterConfig{
			Language:   "javascript",
			LearnWords: true,
		},
		Server: ServerConfig{
			MaxCandidates: 64,
			MaxText:       1 << 20,
		},
		CLI: CliConfig{
			MaxVisible: 10,
			ShowDocs:   true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/snipserve
// 2. ~/Library/Application Support/snipserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primary := filepath.Join(homeDir, ".config", "snipserve")
	if utils.WritableDir(primary) {
		return primary, nil
	}
	macOS := filepath.Join(homeDir, "Library", "Application Support", "snipserve")
	if utils.WritableDir(macOS) {
		return macOS, nil
	}
	return utils.ExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/snipserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if utils.FileExists(customPath) {
			return LoadConfig(customPath), customPath, nil
		}
		log.Warnf("Custom config file not found at %s. Trying default path...", customPath)
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(path string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, path); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: %s", path)
		return cfg, nil
	}
	return LoadConfig(path), nil
}

// LoadConfig reads path over the defaults. A file that fails to decode is
// recovered section by section, and an unreadable one yields the defaults.
func LoadConfig(path string) *Config {
	cfg := DefaultConfig()
	if err := utils.DecodeTOMLFile(path, cfg); err != nil {
		log.Warnf("Config %s is malformed: %v. Attempting partial recovery...", path, err)
		return tryPartialParse(path)
	}
	cfg.normalize()
	log.Debugf("Loaded config from %s", path)
	return cfg
}

func tryPartialParse(path string) *Config {
	cfg := DefaultConfig()

	data, err := utils.DecodeTOMLMap(path)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", path, err)
		return cfg
	}
	if section, ok := utils.Section(data, "completer"); ok {
		extractCompleterConfig(section, &cfg.Completer)
	}
	if section, ok := utils.Section(data, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.Section(data, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	cfg.normalize()
	return cfg
}

func extractCompleterConfig(data map[string]any, c *CompleterConfig) {
	if v, ok := utils.String(data, "language"); ok {
		c.Language = v
	}
	if v, ok := utils.Bool(data, "learn_words"); ok {
		c.LearnWords = v
	}
	if v, ok := utils.String(data, "word_list"); ok {
		c.WordList = v
	}
	if v, ok := utils.String(data, "catalog"); ok {
		c.Catalog = v
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if v, ok := utils.Int(data, "max_candidates"); ok {
		s.MaxCandidates = v
	}
	if v, ok := utils.Int(data, "max_text"); ok {
		s.MaxText = v
	}
}

func extractCliConfig(data map[string]any, c *CliConfig) {
	if v, ok := utils.Int(data, "max_visible"); ok {
		c.MaxVisible = v
	}
	if v, ok := utils.Bool(data, "show_docs"); ok {
		c.ShowDocs = v
	}
}

// normalize puts out of range values back to their defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Completer.Language == "" {
		c.Completer.Language = def.Completer.Language
	}
	if c.Server.MaxCandidates <= 0 {
		log.Warnf("Invalid max_candidates %d, using %d", c.Server.MaxCandidates, def.Server.MaxCandidates)
		c.Server.MaxCandidates = def.Server.MaxCandidates
	}
	if c.Server.MaxText <= 0 {
		c.Server.MaxText = def.Server.MaxText
	}
	if c.CLI.MaxVisible <= 0 {
		c.CLI.MaxVisible = def.CLI.MaxVisible
	}
}

// ResolvePath makes a path from the config relative to the config file.
func ResolvePath(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) || configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}
