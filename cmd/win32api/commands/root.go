// Package commands implements the win32api command-line interface.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agiangrant/win32api"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	convention string
}

// options turns the global flags into binding options.
func (g *globalFlags) options() ([]win32api.Option, error) {
	if g.convention == "" {
		return nil, nil
	}
	c, ok := win32api.ParseConvention(g.convention)
	if !ok {
		return nil, fmt.Errorf("unknown convention %q (want default or stdcall)", g.convention)
	}
	return []win32api.Option{win32api.WithConvention(c)}, nil
}

// NewRootCommand builds the win32api command tree.
func NewRootCommand(version string) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "win32api",
		Short: "Call native library functions from type-code signatures",
		Long: `win32api binds functions exported by native libraries using one-letter type codes
and calls them with arguments given on the command line.

Type codes: P pointer, I 32-bit integer, L/N pointer-sized integer.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !g.verbose {
				win32api.SetLogger(zap.NewNop())
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			win32api.SetLogger(l)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = win32api.Logger().Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log binding and library activity")
	root.PersistentFlags().StringVar(&g.convention, "convention", "", "calling convention override: default or stdcall")

	root.AddCommand(
		NewTypesCommand(),
		NewCallCommand(g),
		NewCheckCommand(),
		NewRunCommand(g),
		NewVersionCommand(version),
	)
	return root
}
