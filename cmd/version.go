package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped with -ldflags "-X github.com/abhisek/lifecompass/cmd.version=…".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and platform",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lifecompass %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
