package cmd

import (
	"fmt"

	"github.com/alexiusacademia/beamreport/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamreport",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
		fmt.Println("Beam Analysis Report Generator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
