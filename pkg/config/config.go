// Package config loads and validates configuration for the sort-state
// demo service, with precedence ENV > file > defaults.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Service ServiceConfig `mapstructure:"service"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
	Table   TableConfig   `mapstructure:"table"`
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// HTTPConfig configures the HTTP listener of the reference view binding.
type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TableConfig declares the sortable fields of the served table and the
// controller's initial state.
type TableConfig struct {
	// AllowMultiple enables multi-criteria sorting: toggled fields
	// accumulate in click order instead of replacing each other.
	AllowMultiple bool `mapstructure:"allow_multiple"`
	// InitialSort is the initial criteria sequence in compact query
	// form, e.g. "-created_at,name".
	InitialSort string `mapstructure:"initial_sort"`
	// Fields lists the sortable fields, in display order.
	Fields []FieldConfig `mapstructure:"fields"`
}

// FieldConfig declares one sortable field.
type FieldConfig struct {
	Name  string `mapstructure:"name"`
	Label string `mapstructure:"label"`
	// DescendingFirst selects which direction the field's toggle cycle
	// visits first. Typical for timestamps and scores.
	DescendingFirst bool `mapstructure:"descending_first"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			Name:        "sortstated",
			Environment: "development",
		},
		HTTP: HTTPConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Table: TableConfig{
			AllowMultiple: false,
		},
	}
}
