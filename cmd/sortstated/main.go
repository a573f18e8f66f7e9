// Command sortstated serves a demo sortable collection behind the
// sort-state HTTP binding.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tablekit/sortstate/pkg/cli"
	"github.com/tablekit/sortstate/pkg/config"
	"github.com/tablekit/sortstate/pkg/observability/logger"
	"github.com/tablekit/sortstate/pkg/server"
)

func main() {
	rootCmd := cli.NewRootCommand(cli.Options{
		Name:        "sortstated",
		Description: "Sort-state controller demo service",
		EnvPrefix:   "SORTSTATE",
		RunServer:   runServer,
	})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if len(cfg.Table.Fields) == 0 {
		cfg.Table = demoTable()
	}
	srv, err := server.New(*cfg, log, demoSource())
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func demoTable() config.TableConfig {
	return config.TableConfig{
		AllowMultiple: true,
		InitialSort:   "-remaining_cookies",
		Fields: []config.FieldConfig{
			{Name: "name", Label: "Name"},
			{Name: "team", Label: "Team"},
			{Name: "remaining_cookies", Label: "Remaining cookies", DescendingFirst: true},
		},
	}
}

func demoSource() server.StaticSource {
	return server.StaticSource{
		{"name": "Tom", "team": "platform", "remaining_cookies": 3},
		{"name": "Evan", "team": "platform", "remaining_cookies": nil},
		{"name": "Jim", "team": "search", "remaining_cookies": 9},
		{"name": "Ada", "team": "search", "remaining_cookies": 5},
		{"name": "Mia", "team": "billing", "remaining_cookies": 9},
	}
}
