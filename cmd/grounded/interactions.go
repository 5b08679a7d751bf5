package main

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [interaction-id]",
	Short: "Check the status of an interaction",
	Long: `Check the status of a stored interaction, including any output
produced so far. Useful for background interactions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		return printResult(cmd, client.GetInteraction(cmd.Context(), args[0]))
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [interaction-id]",
	Short: "Cancel a background interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		return printResult(cmd, client.CancelInteraction(cmd.Context(), args[0]))
	},
}
