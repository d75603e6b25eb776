package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ratline/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "rat [path]",
	Short: "rat - a split-pane terminal and editor",
	Long:  "rat runs a terminal multiplexer alongside a modal text editor in one split-pane session.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			versionCmd.Run(cmd, nil)
			return nil
		}
		if u, _ := cmd.Flags().GetBool("update"); u {
			return runUpdate()
		}
		opts := app.Options{}
		if len(args) == 1 {
			opts.OpenPath = args[0]
		}
		return app.Start(opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI, exiting 1 on unrecoverable initialization
// failure per §6's exit code contract.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
