package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config")
}

var rootCmd = &cobra.Command{
	Use:   "soundpool",
	Short: "Load and play short audio clips through mixing pools",
}
var configPath string
