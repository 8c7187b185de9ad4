// Package config holds the engine's file-based configuration,
// decoded with a toml file laid out the way the rest of the examined
// cluster configs are: a flat struct of primitives with toml tags and
// a package-level default.
package config

import "github.com/BurntSushi/toml"

// Config controls the CLI driver: where it reads a workload from,
// where it writes output, and how the logger behaves.
type Config struct {
	LogLevel  string `toml:"log-level"`  // debug, info, warn, error
	LogFormat string `toml:"log-format"` // console or json
	Input     string `toml:"input"`      // workload file path, "-" for stdin
	Output    string `toml:"output"`     // output file path, "-" for stdout
	Echo      bool   `toml:"echo"`       // echo each input line to the log before dispatch
}

// DefaultConf mirrors the defaults the CLI falls back to when no
// config file is given and no flag overrides a field.
var DefaultConf = Config{
	LogLevel:  "info",
	LogFormat: "console",
	Input:     "-",
	Output:    "-",
	Echo:      false,
}

// Load decodes a toml file into a copy of DefaultConf, so unset
// fields keep their default rather than zeroing out.
func Load(path string) (Config, error) {
	cfg := DefaultConf
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
