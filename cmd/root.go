package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "packfix",
	Short: "packfix 📦 - fix wrong image extensions and pack the result into a zip",
	Long:  "packfix 📦 detects each image's true format from its leading bytes, renames files whose extension lies, and packs the corrected set into a single zip archive.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
