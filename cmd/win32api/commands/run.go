package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/win32api"
	"github.com/agiangrant/win32api/manifest"
)

// NewRunCommand binds a manifest and calls one of its functions.
func NewRunCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run MANIFEST FUNCTION [ARGS...]",
		Short: "Call a function declared in a binding manifest",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			lib, err := win32api.LoadLibrary(m.Library)
			if err != nil {
				return err
			}
			defer lib.Close()

			set, err := m.Bind(lib, opts...)
			if err != nil {
				return err
			}
			defer set.Close()

			api, ok := set.Get(args[1])
			if !ok {
				return fmt.Errorf("%s is not declared in %s (have %v)", args[1], args[0], set.Names())
			}
			callArgs, err := parseArgs(api.Params(), args[2:])
			if err != nil {
				return fmt.Errorf("%s: %w", api, err)
			}
			result, err := api.Call(callArgs...)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatResult(result))
			return nil
		},
	}
}
