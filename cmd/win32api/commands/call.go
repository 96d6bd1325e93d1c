package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/win32api"
)

// NewCallCommand binds one function and calls it.
func NewCallCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "call LIBRARY FUNCTION PARAMS RETURN [ARGS...]",
		Short: "Bind a function by signature and call it once",
		Example: `  win32api call libc.so.6 abs I I -- -42
  win32api call libc.so.6 strlen P L hello
  win32api call user32.dll MessageBoxA LPPI I 0 "hi" "title" 0`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options()
			if err != nil {
				return err
			}

			lib, err := win32api.LoadLibrary(args[0])
			if err != nil {
				return err
			}
			defer lib.Close()

			api, err := win32api.New(args[1], args[2], args[3], lib, opts...)
			if err != nil {
				return err
			}
			defer api.Close()

			callArgs, err := parseArgs(api.Params(), args[4:])
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
