package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configSave   bool
	configOutput string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, the config file and command line flags.
With --save the result is written to the user config directory, or to --output.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the configuration to the user config directory")
	configCmd.Flags().StringVarP(&configOutput, "output", "o", "", "Write the configuration to this file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	switch {
	case configOutput != "":
		if err := cfg.SaveTo(configOutput); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", configOutput)
		return nil
	case configSave:
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved")
		return nil
	default:
		return cfg.Write(cmd.OutOrStdout())
	}
}
