package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/pkg/formula"
	"github.com/spf13/cobra"
)

// ElementsOptions holds options for the elements command.
type ElementsOptions struct {
	Symbols []string
}

// NewElementsCommand creates the elements command.
func NewElementsCommand() *cobra.Command {
	opts := &ElementsOptions{}

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "Show the element table used for validation",
		Long: `Show the element table formulas are validated against.

The table comes from elements_file when configured, otherwise from the state
database, which is seeded with the built-in periodic table on first use.`,
		Example: `  # Full table
  stoich elements

  # Selected elements
  stoich elements --symbol H --symbol O

  # From a custom table
  stoich elements --elements ./my-elements.csv -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runElements(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Symbols, "symbol", "s", nil, "Only show these symbols (repeatable or comma separated)")

	return cmd
}

func runElements(cmd *cobra.Command, opts *ElementsOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tbl := cmdCtx.Elements.Table()
	elems, err := selectElements(tbl, opts.Symbols)
	if err != nil {
		return err
	}

	source := cmdCtx.Elements.Path()
	if source == "" {
		source = cmdCtx.Store.Path()
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		out := output.ElementsOutput{
			Source:   source,
			Elements: make([]output.ElementItem, 0, len(elems)),
			Count:    len(elems),
		}
		for _, e := range elems {
			out.Elements = append(out.Elements, output.ElementItem{
				Number:       e.Number,
				Symbol:       string(e.Symbol),
				Name:         e.Name,
				AtomicWeight: e.AtomicWeight,
			})
		}
		return r.JSON(out)
	}

	r.Header(1, fmt.Sprintf("Elements (%d)", len(elems)))
	r.KeyValue("Source", source)
	r.Println("")
	rows := make([][]string, 0, len(elems))
	for _, e := range elems {
		rows = append(rows, []string{
			strconv.Itoa(e.Number),
			string(e.Symbol),
			e.Name,
			strconv.FormatFloat(e.AtomicWeight, 'f', -1, 64),
		})
	}
	r.Table([]string{"Number", "Symbol", "Name", "Atomic Weight"}, rows, 1, 4)
	return nil
}

// selectElements returns the table in periodic order, or just the requested
// symbols in the order given.
func selectElements(tbl *formula.Table, symbols []string) ([]formula.Element, error) {
	if len(symbols) == 0 {
		return tbl.Elements(), nil
	}
	elems := make([]formula.Element, 0, len(symbols))
	for _, s := range symbols {
		e, ok := tbl.Lookup(formula.Symbol(s))
		if !ok {
			return nil, fmt.Errorf("unknown element %q", s)
		}
		elems = append(elems, e)
	}
	return elems, nil
}
