package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"orbis/internal/domain"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "List mods in the global mods directory",
	Long: `List every mod archive in <hytale_root>/UserData/Mods with its manifest.

Archives without a readable manifest.json are skipped; a warning naming each one
and the reason is printed to stderr.

Examples:
  orbis global
  orbis global --json
  orbis global remove SomeMod-1.0.jar`,
	Args: cobra.NoArgs,
	RunE: runGlobal,
}

var globalRemoveCmd = &cobra.Command{
	Use:   "remove <file>",
	Short: "Delete an archive from the global mods directory",
	Long: `Delete an archive from the global mods directory and drop its install metadata.

Saves that enable the mod keep their config entry; the mod simply stops
appearing in their list until the archive is installed again.

Examples:
  orbis global remove SomeMod-1.0.jar`,
	Args: cobra.ExactArgs(1),
	RunE: runGlobalRemove,
}

func init() {
	globalCmd.AddCommand(globalRemoveCmd)
	rootCmd.AddCommand(globalCmd)
}

func runGlobal(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	mods, err := service.GlobalMods()
	if err != nil {
		return fmt.Errorf("listing global mods: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, mods)
	}

	if len(mods) == 0 {
		fmt.Fprintln(out, "No mods in the global mods directory.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tIDENTITY\tVERSION\tSIZE\tINSTALLED")
	fmt.Fprintln(w, "----\t--------\t-------\t----\t---------")
	for _, mod := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(mod.FileName, 40),
			truncate(mod.Manifest.Identity(), 40),
			mod.Manifest.Version,
			humanize.Bytes(uint64(mod.Size)),
			installedAgo(mod.Metadata),
		)
	}
	w.Flush()

	if verbose {
		fmt.Fprintf(out, "\nTotal: %d archive(s)\n", len(mods))
	}

	return nil
}

func runGlobalRemove(cmd *cobra.Command, args []string) error {
	fileName := args[0]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	if err := service.DeleteGlobalMod(fileName); err != nil {
		if errors.Is(err, domain.ErrArchiveNotFound) {
			return fmt.Errorf("no archive named %s in the global mods directory", fileName)
		}
		return fmt.Errorf("removing %s: %w", fileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", colorGreen("✓"), fileName)
	return nil
}

// installedAgo renders the install time recorded in metadata, or "-" when unknown
func installedAgo(meta *domain.InstallMetadata) string {
	if meta == nil || meta.InstalledAt == "" {
		return "-"
	}
	t, err := parseInstalledAt(meta.InstalledAt)
	if err != nil {
		return meta.InstalledAt
	}
	return humanize.Time(t)
}
