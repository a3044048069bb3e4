package main

import (
	"fmt"

	"orbis/internal/storage/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change orbis settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print config.yaml",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a value in config.yaml.

Keys:
  hytale_root   Hytale installation root (must be an existing directory)
  default_save  Save used when --save is not given

Examples:
  orbis config set hytale_root ~/Games/Hytale
  orbis config set default_save World1`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadAppConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, map[string]string{
			"config_dir":   dir,
			"hytale_root":  cfg.HytaleRoot,
			"default_save": cfg.DefaultSave,
		})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if verbose {
		fmt.Fprintf(out, "# %s\n", dir)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, dir, err := loadAppConfig()
	if err != nil {
		return err
	}

	switch key {
	case "hytale_root":
		root, err := config.ParseRootPath(value)
		if err != nil {
			return err
		}
		cfg.HytaleRoot = root
	case "default_save":
		cfg.DefaultSave = value
	default:
		return fmt.Errorf("unknown config key %q (valid: hytale_root, default_save)", key)
	}

	if err := cfg.Save(dir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", colorGreen("✓"), key, value)
	return nil
}
