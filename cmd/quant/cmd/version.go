package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quant version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quant %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
