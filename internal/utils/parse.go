package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// DecodeTOMLFile decodes the TOML file at path into v. Keys unknown to v
// are ignored.
func DecodeTOMLFile(path string, v any) error {
	if _, err := toml.DecodeFile(path, v); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

// DecodeTOMLMap decodes the file at path into a generic map, for recovering
// the valid sections of a file that does not fit the target struct.
func DecodeTOMLMap(path string) (map[string]any, error) {
	data := make(map[string]any)
	if _, err := toml.DecodeFile(path, &data); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return data, nil
}

// Section returns the table named name.
func Section(data map[string]any, name string) (map[string]any, bool) {
	section, ok := data[name].(map[string]any)
	return section, ok
}

// Int returns data[key] when it is a TOML integer.
func Int(data map[string]any, key string) (int, bool) {
	if v, ok := data[key].(int64); ok {
		return int(v), true
	}
	return 0, false
}

// Bool returns data[key] when it is a TOML boolean.
func Bool(data map[string]any, key string) (bool, bool) {
	v, ok := data[key].(bool)
	return v, ok
}

// String returns data[key] when it is a TOML string.
func String(data map[string]any, key string) (string, bool) {
	v, ok := data[key].(string)
	return v, ok
}
