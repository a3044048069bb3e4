package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"orbis/internal/core"
	"orbis/internal/domain"
	"orbis/internal/storage/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "0.3.0"

	// Global flags
	configDir  string
	dataDir    string
	hytaleRoot string
	saveName   string
	verbose    bool
	jsonOutput bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orbis",
	Short: "Orbis - Hytale mod loader",
	Long: `orbis manages Hytale mods: the global mod archive store, which mods each
save enables, modpack installs, and save imports.

Use subcommands for operations. Run 'orbis --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/orbis)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/orbis)")
	rootCmd.PersistentFlags().StringVar(&hytaleRoot, "hytale-root", "", "Hytale installation root (overrides config and HYTALE_ROOT)")
	rootCmd.PersistentFlags().StringVarP(&saveName, "save", "s", "", "save name or directory to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, global, saves, history)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func colorize(style lipgloss.Style, s string) string {
	if !colorEnabled() {
		return s
	}
	return style.Render(s)
}

func colorGreen(s string) string  { return colorize(greenStyle, s) }
func colorRed(s string) string    { return colorize(redStyle, s) }
func colorYellow(s string) string { return colorize(yellowStyle, s) }

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if core.IsNotConfigured(err) {
				fmt.Fprintln(os.Stderr, "Set one with 'orbis config set hytale_root <path>' or the HYTALE_ROOT environment variable.")
			}
		}
		os.Exit(1)
	}
}

// newLogger returns the diagnostics logger; warnings by default, debug with --verbose
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "orbis"})
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return nil, err
	}

	// Ensure directories exist
	if err := os.MkdirAll(cfg.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	return core.NewService(cfg)
}

// getServiceConfig returns the service configuration with defaults.
// The Hytale root comes from --hytale-root, then HYTALE_ROOT, then config.yaml.
func getServiceConfig() (core.ServiceConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return core.ServiceConfig{}, fmt.Errorf("home directory: %w", err)
	}

	cfg := core.ServiceConfig{
		ConfigDir:  configDir,
		DataDir:    dataDir,
		HytaleRoot: hytaleRoot,
		Logger:     newLogger(os.Stderr),
	}

	// Apply defaults
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = filepath.Join(homeDir, ".config", "orbis")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "orbis")
	}
	if cfg.HytaleRoot == "" {
		cfg.HytaleRoot = os.Getenv("HYTALE_ROOT")
	}

	return cfg, nil
}

// requireSave resolves the save to operate on from --save or the configured default
func requireSave(svc *core.Service) (string, error) {
	name := saveName
	if name == "" {
		name = svc.Config().DefaultSave
		if name != "" && verbose {
			fmt.Printf("Using default save: %s\n", name)
		}
	}
	if name == "" {
		return "", fmt.Errorf("no save specified; use --save or -s flag, or set a default with 'orbis config set default_save <name>'")
	}

	path, err := svc.ResolveSave(name)
	if err != nil {
		if errors.Is(err, domain.ErrSaveNotFound) {
			return "", fmt.Errorf("save not found: %s", name)
		}
		return "", err
	}
	return path, nil
}

// closeService closes the service, reporting (not returning) close errors
func closeService(svc *core.Service) {
	if err := svc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing service: %v\n", err)
	}
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// effectiveConfigDir returns the effective config directory
func effectiveConfigDir() (string, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return "", err
	}
	return cfg.ConfigDir, nil
}

// loadAppConfig reads config.yaml from the effective config directory
func loadAppConfig() (*config.Config, string, error) {
	dir, err := effectiveConfigDir()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}
