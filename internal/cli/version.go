package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	appver "ratline/internal/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Flags().Bool("version", false, "print version and exit")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print rat's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(appver.AppVersion)
	},
}
