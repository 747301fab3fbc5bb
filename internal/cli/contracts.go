package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xab-mack/authsurface/internal/engine"
	"github.com/xab-mack/authsurface/internal/model"
)

func newContractsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts [path]",
		Short: "List discovered contracts with their function counts",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			program, err := engine.New().LoadProgram(cmd.Context(), path)
			if err != nil {
				return err
			}
			for _, c := range program.Contracts {
				fns, mods := 0, 0
				for _, f := range c.Functions {
					if f.Kind == model.KindModifier {
						mods++
					} else {
						fns++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d state variables\t%d functions\t%d modifiers\t%s\n",
					c.Name, len(c.StateVariables), fns, mods, c.File)
			}
			return nil
		},
	}
	return cmd
}
