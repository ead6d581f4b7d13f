package commands

import (
	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <formula>",
		Short: "Print the normalized form of a formula",
		Long: `Validate a formula and print its normalized form: each element once, in
order of first appearance, with its total count. A count of one is written
only if it was written explicitly.`,
		Example: `  stoich normalize HH        # H2
  stoich normalize NNiN      # N2Ni
  stoich normalize H2H3 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args[0])
		},
	}
}

func runNormalize(cmd *cobra.Command, raw string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Service.Normalize(cmd.Context(), raw)
	if err != nil {
		return userError(cmdCtx.Cfg, err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Input", res.Input))
		r.Println(output.FormatKeyValue("Normalized", res.Normalized))
		r.Println(output.FormatKeyValue("Molecular Weight", output.FormatWeight(res.MolecularWeight, r.Precision())+" g/mol"))
	default:
		r.Println(r.Styles().Formula.Render(res.Normalized))
	}
	return nil
}
