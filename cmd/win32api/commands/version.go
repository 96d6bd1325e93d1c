package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agiangrant/win32api"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "win32api version %s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "platform %s/%s, convention %s\n",
				runtime.GOOS, runtime.GOARCH, win32api.SelectConvention())
		},
	}
}
