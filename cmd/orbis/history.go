package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"orbis/internal/core"
	"orbis/internal/storage/db"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyAll   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show install history",
	Long: `Show modpack installs and archive registrations, newest first.

By default only the selected save is shown; use --all for every save.
Pass a record ID to show that install in full.

Examples:
  orbis history --save World1
  orbis history --all --limit 50
  orbis history 0b6f2c1e-5d0a-4c7e-9a43-3f1f0b2d9e11`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

type historyJSON struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Source      string    `json:"source"`
	Save        string    `json:"save"`
	Mods        []string  `json:"mods"`
	ModFiles    int       `json:"mod_files"`
	ConfigFiles int       `json:"config_files"`
	InstalledAt time.Time `json:"installed_at"`
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records (0 for all)")
	historyCmd.Flags().BoolVarP(&historyAll, "all", "a", false, "show history for every save")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	if len(args) == 1 {
		return showInstallRecord(cmd, service, args[0])
	}

	var savePath string
	if !historyAll {
		savePath, err = requireSave(service)
		if err != nil {
			return err
		}
	}

	records, err := service.History(savePath, historyLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]historyJSON, 0, len(records))
		for _, r := range records {
			items = append(items, toHistoryJSON(r))
		}
		return writeJSON(out, items)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "No install history.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tKIND\tSOURCE\tSAVE\tMODS")
	fmt.Fprintln(w, "----\t----\t------\t----\t----")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(r.InstalledAt),
			r.Kind,
			truncate(r.Source, 30),
			filepath.Base(r.SavePath),
			truncate(strings.Join(historyIdentities(r), ", "), 50),
		)
	}
	w.Flush()

	return nil
}

// showInstallRecord prints one record with every mod it enabled
func showInstallRecord(cmd *cobra.Command, service *core.Service, id string) error {
	r, err := service.InstallRecord(id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return fmt.Errorf("no install record with ID %s", id)
		}
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, toHistoryJSON(*r))
	}

	fmt.Fprintf(out, "ID:           %s\n", r.ID)
	fmt.Fprintf(out, "Kind:         %s\n", r.Kind)
	fmt.Fprintf(out, "Source:       %s\n", r.Source)
	fmt.Fprintf(out, "Save:         %s\n", r.SavePath)
	fmt.Fprintf(out, "Installed:    %s (%s)\n", r.InstalledAt.Format(time.RFC3339), humanize.Time(r.InstalledAt))
	fmt.Fprintf(out, "Mod files:    %d\n", r.ModFiles)
	fmt.Fprintf(out, "Config files: %d\n", r.ConfigFiles)

	if len(r.Mods) == 0 {
		fmt.Fprintln(out, "Mods:         none")
		return nil
	}
	fmt.Fprintln(out, "Mods:")
	for _, m := range r.Mods {
		fmt.Fprintf(out, "  - %s (%s)\n", m.Identity, m.FileName)
	}
	return nil
}

func toHistoryJSON(r db.InstallRecord) historyJSON {
	return historyJSON{
		ID:          r.ID,
		Kind:        r.Kind,
		Source:      r.Source,
		Save:        r.SavePath,
		Mods:        historyIdentities(r),
		ModFiles:    r.ModFiles,
		ConfigFiles: r.ConfigFiles,
		InstalledAt: r.InstalledAt,
	}
}

func historyIdentities(r db.InstallRecord) []string {
	ids := make([]string, 0, len(r.Mods))
	for _, m := range r.Mods {
		ids = append(ids, m.Identity)
	}
	return ids
}
