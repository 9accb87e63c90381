package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "featweaver",
		Short: "Generate feat spells for installed BG3 mods",
		Long: `featweaver reads the feats, descriptions and candidate lists of every
installed mod package, merges them in load order and generates the shout
spells, boosts and wiring that expose each feat choice in game.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config file")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newModulesCmd(opts))
	cmd.AddCommand(newSelectorCmd())
	cmd.AddCommand(newCacheCmd(opts))

	return cmd
}
