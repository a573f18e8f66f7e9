package config

import (
	"errors"
	"fmt"

	"github.com/tablekit/sortstate/pkg/observability/logger"
	"github.com/tablekit/sortstate/pkg/sortstate"
)

// Validate checks the configuration for internal consistency. The table
// section is validated against the same invariants the controller
// enforces, so misconfiguration fails at startup rather than on the
// first toggle.
func (l *ViperLoader) Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.Service.Name == "" {
		return errors.New("service.name must not be empty")
	}

	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout <= 0 {
		return fmt.Errorf("http.read_timeout must be positive, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout <= 0 {
		return fmt.Errorf("http.write_timeout must be positive, got %s", cfg.HTTP.WriteTimeout)
	}

	if _, err := logger.ParseLogLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logger.ParseLogFormat(cfg.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}

	return validateTable(&cfg.Table)
}

func validateTable(table *TableConfig) error {
	names := make(map[string]struct{}, len(table.Fields))
	for i, f := range table.Fields {
		if f.Name == "" {
			return fmt.Errorf("table.fields[%d].name must not be empty", i)
		}
		if _, dup := names[f.Name]; dup {
			return fmt.Errorf("table.fields[%d]: duplicate field %q", i, f.Name)
		}
		names[f.Name] = struct{}{}
	}

	if table.InitialSort == "" {
		return nil
	}
	state, err := sortstate.ParseQuery(table.InitialSort)
	if err != nil {
		return fmt.Errorf("table.initial_sort: %w", err)
	}
	// The initial sort may only reference declared fields; anything else
	// would be untoggleable state.
	if err := state.Safelist(func(field string) bool {
		_, ok := names[field]
		return ok
	}); err != nil {
		return fmt.Errorf("table.initial_sort: %w", err)
	}
	return nil
}
