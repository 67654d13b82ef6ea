package cmd

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog management commands",
	Long:  `Commands for building, analyzing and publishing the photo catalog.`,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
