// Package ui wires the command line interface.
package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/api"
	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/db"
	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool   // Enable debug logging
	source string // overrides api.source when set
	store  *db.SQLite
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "abastecimentos",
		Short: "Browse and export the supply history",
		Long: `Abastecimentos lists, filters and exports the supply (restocking) history.

Without a subcommand it opens the interactive history view. Records come
from the remote API or from the local SQLite store (see "source").`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			src, err := a.historySource()
			if err != nil {
				return err
			}
			return tui.RunWithDebug(src, a.config, a.debug, tui.WithSink(a.sink()))
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+tui.DebugLogPath+")")
	a.root.PersistentFlags().StringVar(&a.source, "source", "", "History source: api or local (overrides config)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("abastecimentos %s (commit: %s)\n", Version, Commit)
		},
	}
}

// historySource returns the configured history backend.
func (a *App) historySource() (supply.Source, error) {
	source := a.config.API.Source
	if a.source != "" {
		source = a.source
	}

	switch source {
	case config.SourceLocal:
		return a.openStore()
	case config.SourceAPI:
		if a.config.API.BaseURL == "" {
			return nil, fmt.Errorf("api base_url is not configured")
		}
		timeout, err := a.config.APITimeout()
		if err != nil {
			return nil, err
		}
		return api.NewClient(api.Options{
			BaseURL: a.config.API.BaseURL,
			Token:   a.config.API.Token,
			Timeout: timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want %s or %s)", source, config.SourceAPI, config.SourceLocal)
	}
}

// openStore opens the local SQLite store once.
func (a *App) openStore() (*db.SQLite, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return store, nil
}

func (a *App) sink() export.Sink {
	return export.NewFileSink(a.config.Export.Dir, a.config.Export.OpenPrint)
}

func (a *App) location() (*time.Location, error) {
	loc, err := format.Location(a.config.UI.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}
	return loc, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the local store, if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
