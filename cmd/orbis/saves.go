package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"orbis/internal/domain"

	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saves",
	Long: `List the saves under <hytale_root>/UserData/Saves with their enabled mod counts.

Examples:
  orbis saves
  orbis saves --json`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

var importCmd = &cobra.Command{
	Use:   "import <save.zip>",
	Short: "Import a save from a zip archive",
	Long: `Extract a save archive into the saves directory. The save is named after the
archive without its extension; an existing save with that name is never overwritten.

Examples:
  orbis import ~/Downloads/Adventure.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

type saveJSON struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	EnabledMods  int    `json:"enabled_mods"`
	HasLocalMods bool   `json:"has_local_mods"`
	ConfigError  string `json:"config_error,omitempty"`
}

func init() {
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(importCmd)
}

func runSaves(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	saves, err := service.ListSaves()
	if err != nil {
		return fmt.Errorf("listing saves: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]saveJSON, 0, len(saves))
		for _, s := range saves {
			item := saveJSON{Name: s.Name, Path: s.Path, EnabledMods: s.EnabledMods, HasLocalMods: s.HasLocalMods}
			if s.ConfigErr != nil {
				item.ConfigError = s.ConfigErr.Error()
			}
			items = append(items, item)
		}
		return writeJSON(out, items)
	}

	if len(saves) == 0 {
		fmt.Fprintln(out, "No saves found.")
		return nil
	}

	defaultSave := service.Config().DefaultSave

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAVE\tMODS\tLOCAL MODS")
	fmt.Fprintln(w, "----\t----\t----------")
	for _, s := range saves {
		name := s.Name
		if name == defaultSave {
			name += " (default)"
		}
		mods := fmt.Sprintf("%d", s.EnabledMods)
		if s.ConfigErr != nil {
			mods = colorRed("config error")
		}
		local := "no"
		if s.HasLocalMods {
			local = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(name, 40), mods, local)
	}
	w.Flush()

	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	name, err := service.ImportSave(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrSaveExists) {
			return fmt.Errorf("a save with that name already exists: %w", err)
		}
		return fmt.Errorf("importing save: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Imported save %s\n", colorGreen("✓"), name)
	return nil
}
