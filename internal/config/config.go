package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "ELECTIONMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ELECTIONMAP_*). A .env file in the
// working directory is read first when present. Nested keys use a
// double underscore: ELECTIONMAP_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists replace the defaults rather than merging into them.
	if k.Exists("datasets") {
		cfg.Datasets = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: failed %q check", strings.ToLower(fe.Namespace()), fe.Tag())
		}
		return err
	}

	if c.Source == SourceSQLite && c.DatabasePath == "" {
		return fmt.Errorf("database_path is required when source is sqlite")
	}

	// With a glob the years are only known after discovery.
	if c.ResultsGlob != "" {
		return nil
	}
	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset or results_glob is required")
	}
	seen := make(map[string]bool, len(c.Datasets))
	for _, d := range c.Datasets {
		if seen[d.Year] {
			return fmt.Errorf("dataset year %s listed twice", d.Year)
		}
		seen[d.Year] = true
	}
	if !seen[c.DefaultYear] {
		return fmt.Errorf("default_year %s has no dataset", c.DefaultYear)
	}
	return nil
}
