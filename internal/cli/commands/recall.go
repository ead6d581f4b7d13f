package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/spf13/cobra"
)

// NewRecallCommand creates the recall command.
func NewRecallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recall <formula>",
		Short: "Recalculate a saved formula",
		Long: `Look up a formula in the catalog and recalculate it against the current
element table. Shell completion offers the saved formulas.`,
		Example: `  stoich recall C6H12O6`,
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			defer cleanup()
			formulas, err := cmdCtx.Store.ListFormulas(cmd.Context())
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return formulas, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := cmdCtx.Service.Recall(cmd.Context(), args[0])
			if errors.Is(err, state.ErrNotFound) {
				return fmt.Errorf("formula %q is not saved", args[0])
			}
			if err != nil {
				return userError(cmdCtx.Cfg, err)
			}
			return renderResult(cmdCtx.Renderer, res)
		},
	}
}
