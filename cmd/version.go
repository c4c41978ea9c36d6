package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pinnacle version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pinnacle version %s\n", Version)
	},
}
