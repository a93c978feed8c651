// Package config loads calculator settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// EnvPath is the environment variable naming a config file to load when no
// path is given explicitly.
const EnvPath = "CALC_CONFIG"

// Config holds the settings of an interactive session.
type Config struct {
	// Backend is "float" or "decimal".
	Backend string `yaml:"backend"`
	// Prec is the precision in bits of the float backend.
	Prec uint `yaml:"prec"`
	// DivPrec is the number of decimal places kept by decimal quotients.
	DivPrec int32 `yaml:"div_prec"`
	// Places is the number of decimal places printed in results.
	Places int `yaml:"places"`
	// Prompt is printed before reading each line.
	Prompt string `yaml:"prompt"`
	// Exit is the command that ends the session.
	Exit string `yaml:"exit"`
	// Echo prints the postfix form of each expression before its result.
	Echo bool `yaml:"echo"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Backend:  "float",
		Prec:     calc.DefaultPrec,
		DivPrec:  calc.DefaultDivPrec,
		Places:   2,
		Prompt:   "Please enter an expression to calculate: ",
		Exit:     "exit",
		LogLevel: "warn",
	}
}

// Load reads settings from a YAML file on top of the defaults. Fields absent
// from the file keep their default values. An empty file gives the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	if err := cfg.decode(file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by EnvPath, or returns the defaults if the
// variable is unset.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (cfg *Config) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks that the settings are usable.
func (cfg Config) Validate() error {
	var issues []string
	if _, err := cfg.NewBackend(); err != nil {
		issues = append(issues, fmt.Sprintf("backend must be float or decimal, not %q", cfg.Backend))
	}
	if cfg.Backend != "decimal" && cfg.Prec == 0 {
		issues = append(issues, "prec must be positive")
	}
	if cfg.Backend == "decimal" && cfg.DivPrec <= 0 {
		issues = append(issues, "div_prec must be positive")
	}
	if cfg.Places < 0 {
		issues = append(issues, "places must not be negative")
	}
	if strings.TrimSpace(cfg.Exit) == "" {
		issues = append(issues, "exit must not be blank")
	}
	if len(issues) > 0 {
		return errors.New(strings.Join(issues, "; "))
	}
	return nil
}

// NewBackend creates the arithmetic backend the settings describe.
func (cfg Config) NewBackend() (calc.Backend, error) {
	return calc.BackendByName(cfg.Backend, cfg.Prec, cfg.DivPrec)
}
