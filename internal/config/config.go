// Package config loads asm2pil's project configuration: the default trace
// degree, the output directory for generated PIL, and the logging level.
//
// Precedence, low to highest: built-in defaults, an optional YAML project
// file, then command-line flags - the CLI is responsible for applying flag
// overrides on top of a loaded Config.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project config file cobra looks for in the
// current directory when --config is not given.
const DefaultFilename = "asm2pil.yaml"

// Config is the compiler's project-level configuration.
type Config struct {
	// Degree is the default trace length used when a source file has no
	// leading "degree" statement. Must be a power of two.
	Degree int64 `yaml:"degree"`

	// OutputDir is the directory generated .pil files are written to.
	OutputDir string `yaml:"output_dir"`

	// LogLevel is a logrus level name: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration, used when no project file
// is present.
func Default() Config {
	return Config{
		Degree:    1024,
		OutputDir: ".",
		LogLevel:  "info",
	}
}

// Load reads and parses a YAML config file at path, overlaying it onto
// Default(). A missing file is not an error: Load returns the defaults
// unchanged, since the project file is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config file %q", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %q", path)
	}
	return cfg, nil
}
