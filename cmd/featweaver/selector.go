package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/feat-weaver/internal/selectors"
)

func newSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "selector <text>",
		Short:   "Parse one selector expression and print its variant",
		Example: `  featweaver selector "SelectAbilities(b9149c8e-52c8-46e5-9cb6-fc39301c05fe,2,2,FeatASI)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := selectors.Parse(args[0])
			chain := []selectors.Selector{sel}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind: %s\n", sel.Kind())
			fmt.Fprintf(out, "canonical: %s\n", sel.String())
			fmt.Fprintf(out, "list: %s\n", sel.ListID())
			fmt.Fprintf(out, "fields: %+v\n", sel)
			fmt.Fprintf(out, "expandable: %t\n", selectors.Supported(chain))

			return selectors.Validate(chain)
		},
	}
}
