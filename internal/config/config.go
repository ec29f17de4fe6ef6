// Package config resolves formatic's persisted defaults: compile-time
// values, overridable by an optional TOML file, in turn overridable by CLI
// flags. Modeled on cmd/devshell's config-directory resolution
// (resolveConfigDir/loadSources), adapted from a directory of YAML node
// files to a single TOML settings file — formatic has one flat bag of
// scalar defaults, not a registry of typed nodes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "formatic"

// envConfigPath is the one environment variable formatic recognizes: the
// path to its TOML config file. This does not override any oracle-facing
// behavior itself, only where the defaults are read from.
const envConfigPath = "FORMATIC_CONFIG"

// Config holds every value the CLI can default, override via TOML, and
// further override via flags.
type Config struct {
	InjectionMarker        string   `toml:"injection_marker"`
	InjectionIndex         int      `toml:"injection_index"`
	ResponseMarker         string   `toml:"response_marker"`
	RandomResponseMarkerLen int     `toml:"random_response_marker_length"`
	BytecodeVersion        string   `toml:"bytecode_version"`
	Verbosity              int      `toml:"verbosity"`
	AttributeBlacklist     []string `toml:"attribute_blacklist"`
	ClassBlacklist         []string `toml:"class_blacklist"`
	ModuleBlacklist        []string `toml:"module_blacklist"`
	OutputPath             string   `toml:"output_path"`
	Gzip                   bool     `toml:"gzip"`
}

// Defaults returns formatic's compile-time defaults.
func Defaults() Config {
	return Config{
		InjectionMarker:         "@@",
		InjectionIndex:          0,
		RandomResponseMarkerLen: 16,
		BytecodeVersion:         "3.7",
	}
}

// ResolvePath returns the TOML config file to load, in priority order:
// explicit (the --config flag) if non-empty, then $FORMATIC_CONFIG, then
// ~/.config/formatic/config.toml. It returns ""
// (not an error) when neither exists, since having no config file is the
// common case, not a fault.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := os.Getenv(envConfigPath); v != "" {
		return v, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	candidate := filepath.Join(home, ".config", appName, "config.toml")
	if _, err := os.Stat(candidate); err != nil {
		return "", nil
	}
	return candidate, nil
}

// Load builds a Config starting from Defaults(), then merges in whatever is
// present at path (if path is "" nothing is merged, and Defaults() is
// returned unchanged). Fields absent from the TOML file keep their default
// value: BurntSushi/toml only overwrites fields it finds keys for.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return cfg, nil
}
