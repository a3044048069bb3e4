package main

import (
	"errors"
	"fmt"

	"orbis/internal/domain"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <file>",
	Short: "Enable an archive for a save by reading its manifest",
	Long: `Read manifest.json from an archive and add its Group:Name to the save's config
as enabled. The archive is looked up in the save's mods folder first, then in the
global mods directory. An existing config entry (enabled or not) is left alone.

Examples:
  orbis register SomeMod-1.0.jar --save World1`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

var enableCmd = &cobra.Command{
	Use:   "enable <Group:Name>",
	Short: "Enable a mod for a save",
	Long: `Enable a mod in the save's config.json, adding the entry if needed.

Examples:
  orbis enable Hytale:Core --save World1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabled(cmd, args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <Group:Name>",
	Short: "Disable a mod for a save",
	Long: `Disable a mod in the save's config.json. The entry is kept so the choice sticks.

Examples:
  orbis disable Hytale:Core --save World1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetEnabled(cmd, args[0], false)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <Group:Name>",
	Short: "Add a mod to a save's config if it is not listed",
	Long: `Add a mod to the save's config.json as enabled. A mod that is already listed,
even as disabled, is not changed.

Examples:
  orbis add Hytale:Core --save World1`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove <Group:Name> [file]",
	Short: "Remove a mod from a save",
	Long: `Remove a mod's entry from the save's config.json. When a file name is given,
that archive is also deleted from the save's mods folder; a missing file is fine.
The global mods directory is never touched (see 'orbis global remove').

Examples:
  orbis remove Hytale:Core --save World1
  orbis remove Hytale:Core Core-1.0.jar --save World1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	fileName := args[0]

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer closeService(service)

	savePath, err := requireSave(service)
	if err != nil {
		return err
	}

	reg, err := service.RegisterArchive(savePath, fileName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArchiveNotFound):
			return fmt.Errorf("archive %s not found in the save's mods folder or the global mods directory", fileName)
		case errors.Is(err, domain.ErrManifestMissing):
			return fmt.Errorf("%s has no manifest.json", fileName)
		}
		return fmt.Errorf("registering %s: %w", fileName, err)
	}

	out := cmd.OutOrStdout()
	if reg.Added {
		fmt.Fprintf(out, "%s Enabled %s (%s)\n", colorGreen("✓"), reg.Manifest.Identity(), reg.Manifest.Version)
	} else {
		fmt.Fprintf(out, "%s %s is already in the save's config\n", colorYellow("•"), reg.Manifest.Identity())
	}
	if verbose {
		fmt.Fprintf(out, "  Archive: %s\n", reg.Path)
	}
	return nil
}

func runSetEnabled(cmd *cobra.Command, arg string, enabled bool) error {
	identity, err := parseIdentityArg(arg)
	if err != nil {
		return err
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

	if err := service.SetModEnabled(savePath, identity, enabled); err != nil {
		return fmt.Errorf("updating %s: %w", identity, err)
	}

	if enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Enabled %s\n", colorGreen("✓"), identity)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Disabled %s\n", colorYellow("✓"), identity)
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	identity, err := parseIdentityArg(args[0])
	if err != nil {
		return err
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

	added, err := service.AddMod(savePath, identity)
	if err != nil {
		return fmt.Errorf("adding %s: %w", identity, err)
	}

	if added {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", colorGreen("✓"), identity)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is already in the save's config\n", colorYellow("•"), identity)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	identity, err := parseIdentityArg(args[0])
	if err != nil {
		return err
	}
	var fileName string
	if len(args) > 1 {
		fileName = args[1]
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

	if err := service.DeleteMod(savePath, identity, fileName); err != nil {
		return fmt.Errorf("removing %s: %w", identity, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", colorRed("✓"), identity)
	return nil
}
