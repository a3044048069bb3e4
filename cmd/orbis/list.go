package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"orbis/internal/domain"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods enabled for a save",
	Long: `List the mods a save enables that have an archive in the global mods directory.

Entries in the save's config.json without a matching archive are skipped.

Examples:
  orbis list --save World1
  orbis list --save World1 --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	savePath, err := requireSave(service)
	if err != nil {
		return err
	}

	mods, err := service.InstalledMods(savePath)
	if err != nil {
		return fmt.Errorf("listing mods: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, mods)
	}

	if len(mods) == 0 {
		fmt.Fprintln(out, "No mods enabled.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTITY\tVERSION\tFILE\tAUTHORS")
	fmt.Fprintln(w, "--------\t-------\t----\t-------")
	for _, mod := range mods {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(mod.Identity(), 40),
			mod.Manifest.Version,
			mod.FileName,
			truncate(authorList(mod.Manifest), 30),
		)
	}
	w.Flush()

	if verbose {
		fmt.Fprintf(out, "\nTotal: %d mod(s)\n", len(mods))
	}

	return nil
}

func authorList(m domain.Manifest) string {
	names := m.AuthorNames()
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
