package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/win32api"
)

// NewTypesCommand lists the type-code vocabulary.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported type codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, code := range win32api.TypeCodes() {
				t, err := win32api.Resolve(code)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%c  %-8s %d bytes\n", code, t, t.Size())
			}
			return nil
		},
	}
}
