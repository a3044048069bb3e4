package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <modpack.zip>",
	Short: "Install a modpack into a save",
	Long: `Install a modpack bundle. Files under Mods/ are copied to the global mods
directory, archives under Configs/ are unpacked into the save's mods folder, and
every installed mod with a readable manifest is enabled for the save.

The modpack file is deleted after a successful install. Files extracted before
a failure are left in place.

Examples:
  orbis install ~/Downloads/starter-pack.zip --save World1`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	packPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	if _, err := os.Stat(packPath); err != nil {
		return fmt.Errorf("modpack not found: %s", args[0])
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	savePath, err := requireSave(service)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Installing %s into %s...\n", filepath.Base(packPath), savePath)
	}

	result, err := service.InstallModpack(packPath, savePath)
	if err != nil {
		if result != nil && (result.ModFiles > 0 || result.ConfigFiles > 0) {
			fmt.Fprintf(os.Stderr, "%s %d mod file(s) and %d config file(s) were extracted before the failure\n",
				colorYellow("warning:"), result.ModFiles, result.ConfigFiles)
		}
		return fmt.Errorf("installing modpack: %w", err)
	}

	for _, a := range result.Installed {
		fmt.Fprintf(out, "  %s %s (%s)\n", colorGreen("✓"), a.Identity, a.FileName)
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(out, "  %s %s: %v\n", colorYellow("!"), filepath.Base(s.Path), s.Err)
	}

	fmt.Fprintf(out, "\n%s Installed %d mod(s); %d mod file(s), %d config file(s)\n",
		colorGreen("✓"), len(result.Installed), result.ModFiles, result.ConfigFiles)
	if !result.SourceRemoved {
		fmt.Fprintf(out, "%s could not delete %s\n", colorYellow("note:"), packPath)
	}

	return nil
}
