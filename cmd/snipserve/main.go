// Copyright 2025 The SnipServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the snipserve completion server and CLI [DBG] application.

SnipServe completes code as it is typed: language keywords, identifiers
already present in the document, and members of registered custom types
such as "self.move_to" or "player:jump", with snippet insertion and cursor
placement. It runs as a MessagePack IPC server for editor integration, or as
an interactive CLI for testing catalogs.

# Usage

Start the server with default settings:

	snipserve

Complete Lua with a catalog of custom types and debug logging:

	snipserve --language lua --catalog types.toml -d

Run the interactive CLI:

	snipserve -c

# Configuration

A TOML file is created with defaults on first run, in ~/.config/snipserve:

	[completer]
	language = "javascript"
	learn_words = true
	word_list = ""
	catalog = ""

	[server]
	max_candidates = 64
	max_text = 1048576

	[cli]
	max_visible = 10
	show_docs = true

Relative word_list and catalog paths are resolved against the config file.
Flags take precedence over the file.

# Catalogs

Custom types and global snippets are declared in TOML or YAML, see package
catalog. Word lists are .txt or .bin files, or a directory of them, see
package dictionary.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/snipserve/internal/cli"
	"github.com/bastiangx/snipserve/internal/logger"
	"github.com/bastiangx/snipserve/internal/utils"
	"github.com/bastiangx/snipserve/pkg/config"
	"github.com/bastiangx/snipserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	ucli "github.com/urfave/cli/v3"
)

const (
	Version = "0.1.0-beta"
	AppName = "snipserve"
	gh      = "https://github.com/bastiangx/snipserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()
	ucli.VersionPrinter = printVersion

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%s: %v", AppName, err)
	}
}

func newApp() *ucli.Command {
	return &ucli.Command{
		Name:    AppName,
		Version: Version,
		Usage:   "Code completion server with custom types and snippets",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "config", Usage: "path to config.toml"},
			&ucli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "language definition (javascript, lua)"},
			&ucli.StringFlag{Name: "catalog", Usage: "TOML or YAML catalog of custom types and globals"},
			&ucli.StringFlag{Name: "words", Usage: "word list file or directory added to the language dictionary"},
			&ucli.BoolFlag{Name: "no-learn", Usage: "do not learn words from the document"},
			&ucli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "toggle debug mode"},
			&ucli.BoolFlag{Name: "cli", Aliases: []string{"c"}, Usage: "run the interactive CLI -- useful for testing catalogs"},
		},
		Commands: []*ucli.Command{
			completeCommand(),
			wordsCommand(),
		},
		Action: run,
	}
}

// run loads the config and starts the server or the CLI.
func run(_ context.Context, cmd *ucli.Command) error {
	logger.Setup(cmd.Bool("debug"))

	cfg, configPath, err := config.LoadConfigWithPriority(cmd.String("config"))
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	completer, err := buildCompleter(cfg.Completer, configPath)
	if err != nil {
		return err
	}

	if cmd.Bool("cli") {
		log.Debug("Input info:", "maxVisible", cfg.CLI.MaxVisible, "showDocs", cfg.CLI.ShowDocs)
		return cli.NewInputHandler(completer, cfg.CLI).Start()
	}

	showStartupInfo(cfg, configPath)
	return server.NewServer(completer, cfg.Server).Start()
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cmd *ucli.Command, cfg *config.Config) {
	if cmd.IsSet("language") {
		cfg.Completer.Language = cmd.String("language")
	}
	if cmd.IsSet("catalog") {
		cfg.Completer.Catalog = cmd.String("catalog")
	}
	if cmd.IsSet("words") {
		cfg.Completer.WordList = cmd.String("words")
	}
	if cmd.Bool("no-learn") {
		cfg.Completer.LearnWords = false
	}
}

func printVersion(cmd *ucli.Command) {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ SnipServe ] Completes your code, snippets included!")
	l.Print("", "version", cmd.Root().Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(cfg *config.Config, configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	fmt.Fprintln(os.Stderr, "===========")
	fmt.Fprintln(os.Stderr, " SnipServe ")
	fmt.Fprintln(os.Stderr, "===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", utils.AbsPath(configPath))
	log.Infof("language: %s", cfg.Completer.Language)
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "===========")
}
