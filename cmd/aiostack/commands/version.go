package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// build is stamped by main from linker flags.
var build = struct {
	version, commit, date string
}{"dev", "none", "unknown"}

// SetVersionInfo records the build metadata main received at link time.
func SetVersionInfo(version, commit, date string) {
	build.version, build.commit, build.date = version, commit, date
}

// Version returns the version command.
func Version() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the aiostack build",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, build.version)
				return
			}
			fmt.Fprintf(out, "aiostack %s (commit %s, built %s, %s/%s)\n",
				build.version, build.commit, build.date, runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
