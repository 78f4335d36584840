package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  abastecimentos config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(os.Stdout, cfg)

	reader := bufio.NewReader(os.Stdin)

	// Ask if user wants to edit
	if !promptYesNo(reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	editConfig(reader, cfg)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

// editConfig prompts for every editable setting, keeping the current value
// on empty input.
func editConfig(reader *bufio.Reader, cfg *config.Config) {
	cfg.API.Source = promptChoice(reader, "History source", cfg.API.Source, []string{config.SourceAPI, config.SourceLocal})
	cfg.API.BaseURL = promptValue(reader, "API base URL", cfg.API.BaseURL)
	cfg.API.Token = promptValue(reader, "API token (empty for none)", cfg.API.Token)
	cfg.API.Timeout = promptValue(reader, "API timeout", cfg.API.Timeout)
	cfg.History.PageSize = promptInt(reader, "Page size", cfg.History.PageSize)
	cfg.History.Sort = promptChoice(reader, "Sort", cfg.History.Sort, []string{"created_at_desc", "created_at_asc"})
	cfg.Export.Dir = promptValue(reader, "Export directory", cfg.Export.Dir)
	cfg.Export.Schedule = promptValue(reader, "Snapshot schedule (cron, empty to disable)", cfg.Export.Schedule)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Server.Addr = promptValue(reader, "Server address", cfg.Server.Addr)
	cfg.UI.Theme = promptChoice(reader, "UI theme", cfg.UI.Theme, theme.Available())
	cfg.UI.MobileWidth = promptInt(reader, "Card layout below width", cfg.UI.MobileWidth)
	cfg.UI.Timezone = promptValue(reader, "Timezone", cfg.UI.Timezone)
}

func printConfig(w io.Writer, cfg *config.Config) {
	token := ""
	if cfg.API.Token != "" {
		token = "(set)"
	}
	schedule := cfg.Export.Schedule
	if schedule == "" {
		schedule = "(disabled)"
	}

	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[api]")
	fmt.Fprintf(w, "  source       = %s\n", cfg.API.Source)
	fmt.Fprintf(w, "  base_url     = %s\n", cfg.API.BaseURL)
	fmt.Fprintf(w, "  token        = %s\n", token)
	fmt.Fprintf(w, "  timeout      = %s\n", cfg.API.Timeout)
	fmt.Fprintln(w, "\n[history]")
	fmt.Fprintf(w, "  page_size    = %d\n", cfg.History.PageSize)
	fmt.Fprintf(w, "  sort         = %s\n", cfg.History.Sort)
	fmt.Fprintln(w, "\n[export]")
	fmt.Fprintf(w, "  dir          = %s\n", cfg.Export.Dir)
	fmt.Fprintf(w, "  open_print   = %t\n", cfg.Export.OpenPrint)
	fmt.Fprintf(w, "  schedule     = %s\n", schedule)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr         = %s\n", cfg.Server.Addr)
	fmt.Fprintln(w, "\n[ui]")
	themeName := cfg.UI.Theme
	if !theme.IsAvailable(themeName) {
		themeName += " (unknown, using mocha)"
	}
	fmt.Fprintf(w, "  theme        = %s\n", themeName)
	fmt.Fprintf(w, "  mobile_width = %d\n", cfg.UI.MobileWidth)
	fmt.Fprintf(w, "  timezone     = %s\n", cfg.UI.Timezone)
}

func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Printf("  Invalid number %q\n", value)
	}
}

func promptChoice(reader *bufio.Reader, label, current string, options []string) string {
	joined := strings.Join(options, ", ")
	label = fmt.Sprintf("%s (%s)", label, joined)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		for _, opt := range options {
			if opt == value {
				return value
			}
		}
		fmt.Printf("  Invalid value %q. Available: %s\n", value, joined)
	}
}
