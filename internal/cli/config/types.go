// Package config provides configuration management for the stoich CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string      `koanf:"state_path"`
	ElementsFile string      `koanf:"elements_file"`
	OutputFormat string      `koanf:"output"`
	Verbose      bool        `koanf:"verbose"`
	LogLevel     string      `koanf:"log_level"`
	Precision    int         `koanf:"precision"`
	Serve        ServeConfig `koanf:"serve"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// ServeConfig holds configuration for the HTTP API.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// Default configuration values.
const (
	DefaultStateFile = ".stoich/state.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	DefaultPrecision = 3
	DefaultServeAddr = "127.0.0.1:8088"

	// ConfigFileName is the name of the config file.
	ConfigFileName = "stoich.yaml"
	// ConfigFileNameAlt is the alternate name of the config file.
	ConfigFileNameAlt = "stoich.yml"

	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "STOICH_"
)

// Default returns a Config with default values and no project root.
func Default() *Config {
	return &Config{
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
		LogLevel:     DefaultLogLevel,
		Precision:    DefaultPrecision,
		Serve:        ServeConfig{Addr: DefaultServeAddr},
	}
}
