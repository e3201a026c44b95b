package main

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/deskline/deskline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration deskline would run with, after applying the
file given by --config over the defaults, as TOML.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(globalOpts.configPath)
		if err != nil {
			return err
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
