package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/grounded/internal/config"
	"github.com/jackzampolin/grounded/internal/home"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to the grounded home directory.

The generated file references GEMINI_API_KEY from the environment; set it in
your shell: export GEMINI_API_KEY=xxx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		return nil
	},
}
