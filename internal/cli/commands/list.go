package commands

import (
	"fmt"

	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved formulas",
		Long: `List every formula in the catalog with its stored molecular weight, oldest
first.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List saved formulas
  stoich list

  # List as JSON
  stoich list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	molecules, err := cmdCtx.Service.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list formulas: %w", err)
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return listJSON(r, molecules)
	}

	if len(molecules) == 0 {
		r.Muted("No saved formulas")
		return nil
	}

	r.Header(1, fmt.Sprintf("Saved formulas (%d total)", len(molecules)))
	r.Println("")
	rows := make([][]string, 0, len(molecules))
	for _, m := range molecules {
		rows = append(rows, []string{
			m.Formula,
			m.Normalized,
			output.FormatWeight(m.MolecularWeight, r.Precision()),
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	r.Table([]string{"Formula", "Normalized", "Weight (g/mol)", "Saved"}, rows, 3)
	return nil
}

func listJSON(r *output.Renderer, molecules []*state.Molecule) error {
	out := output.ListOutput{
		Molecules: make([]output.MoleculeItem, 0, len(molecules)),
		Count:     len(molecules),
	}
	for _, m := range molecules {
		out.Molecules = append(out.Molecules, moleculeItem(m))
	}
	return r.JSON(out)
}
