package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/spf13/cobra"
)

// SaveOptions holds options for the save command.
type SaveOptions struct {
	Normalize bool
	Yes       bool
}

// NewSaveCommand creates the save command.
func NewSaveCommand() *cobra.Command {
	opts := &SaveOptions{}

	cmd := &cobra.Command{
		Use:   "save <formula>",
		Short: "Save a formula and its molecular weight to the catalog",
		Long: `Validate a formula, calculate its molecular weight and append both to the
formula catalog in the state database.

On a terminal you are asked to confirm first; use --yes to skip the prompt.
Saving a formula that is already in the catalog is an error.`,
		Example: `  # Save as typed
  stoich save C6H12O6

  # Save the normalized form without asking
  stoich save HH --normalize --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Normalize, "normalize", false, "Store the normalized form instead of the input")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func runSave(cmd *cobra.Command, raw string, opts *SaveOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	// Validate before asking, so the prompt can show the weight.
	res, err := cmdCtx.Service.Calculate(cmd.Context(), raw)
	if err != nil {
		return userError(cmdCtx.Cfg, err)
	}

	if !opts.Yes && r.IsTTY() {
		shown := res.Input
		if opts.Normalize {
			shown = res.Normalized
		}
		prompt := fmt.Sprintf("Save %s (%s g/mol)? [y/N] ", shown, output.FormatWeight(res.MolecularWeight, r.Precision()))
		ok, err := confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(output.SaveOutput{Saved: false})
			}
			r.Muted("Not saved")
			return nil
		}
	}

	m, err := cmdCtx.Service.Save(cmd.Context(), raw, opts.Normalize)
	if err != nil {
		if errors.Is(err, state.ErrDuplicate) {
			return fmt.Errorf("formula %q is already saved", raw)
		}
		return userError(cmdCtx.Cfg, err)
	}

	item := moleculeItem(m)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.SaveOutput{Saved: true, Molecule: &item})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Saved"))
		r.Println("")
		r.Println(output.FormatKeyValue("Formula", m.Formula))
		r.Println(output.FormatKeyValue("Molecular Weight", output.FormatWeight(m.MolecularWeight, r.Precision())+" g/mol"))
		r.Println(output.FormatKeyValue("ID", m.ID))
	default:
		r.Success(fmt.Sprintf("Saved %s (%s g/mol)", m.Formula, output.FormatWeight(m.MolecularWeight, r.Precision())))
	}
	return nil
}

// confirm asks a yes/no question on the terminal. Anything but y or yes is no.
func confirm(prompt string) (bool, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return false, fmt.Errorf("failed to open prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func moleculeItem(m *state.Molecule) output.MoleculeItem {
	return output.MoleculeItem{
		ID:              m.ID,
		Formula:         m.Formula,
		Normalized:      m.Normalized,
		MolecularWeight: m.MolecularWeight,
		CreatedAt:       m.CreatedAt,
	}
}
