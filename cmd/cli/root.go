// Package cli holds the foodgram command line: the API server and the
// database maintenance commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Foodgram recipe API",
	Long: `Foodgram serves the recipe sharing API and manages its database:
migrations and reference data imports for tags and ingredients.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importIngredientsCmd)
	rootCmd.AddCommand(importTagsCmd)
}
