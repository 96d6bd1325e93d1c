package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agiangrant/win32api"
	"github.com/agiangrant/win32api/manifest"
)

// NewCheckCommand validates a manifest without loading its library.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check MANIFEST",
		Short: "Validate a binding manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "library %s\n", m.Library)
			for _, f := range m.Functions {
				params, _ := win32api.ResolveSequence(f.Params)
				ret, _ := win32api.ResolveSequence(f.Return)
				names := make([]string, len(params))
				for i, p := range params {
					names[i] = p.String()
				}
				_, _ = fmt.Fprintf(out, "  %-16s %s(%s) %s\n", f.Name, f.NativeName(), strings.Join(names, ", "), ret[0])
			}
			_, _ = fmt.Fprintf(out, "%d functions ok\n", len(m.Functions))
			return nil
		},
	}
}
