package cli

import (
	"fmt"
	"runtime"

	appver "ratline/internal/version"
)

func init() {
	rootCmd.Flags().Bool("update", false, "check for and apply an update")
}

// runUpdate invokes the updater, an out-of-scope external collaborator
// per §6. The check/download/replace flow itself is not this binary's
// concern; this only reports the hook point exists.
func runUpdate() error {
	fmt.Println("rat self-update")
	fmt.Printf("  current version: v%s\n", appver.AppVersion)
	fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()
	fmt.Println("no updater is registered; pass control to an external updater collaborator.")
	return nil
}
