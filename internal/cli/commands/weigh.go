package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/spf13/cobra"
)

// WeighOptions holds options for the weigh command.
type WeighOptions struct {
	File    string
	Workers int
}

// NewWeighCommand creates the weigh command.
func NewWeighCommand() *cobra.Command {
	opts := &WeighOptions{}

	cmd := &cobra.Command{
		Use:     "weigh [formula...]",
		Aliases: []string{"calc", "calculate"},
		Short:   "Validate formulas and calculate their molecular weight",
		Long: `Validate one or more chemical formulas and calculate their molecular weight
in g/mol.

A formula is a sequence of element symbols, each optionally followed by a
positive count: H2O, C6H12O6, NaCl. Repeated elements are merged, so HH is
the same molecule as H2.

With more than one formula, or with --file, every line is validated
independently and a summary table is printed.`,
		Example: `  # Weigh a single formula
  stoich weigh H2O

  # Weigh several formulas at once
  stoich weigh H2O CO2 C6H12O6

  # Weigh every line of a file (use - for stdin)
  stoich weigh --file formulas.txt

  # JSON output with element breakdown
  stoich calc C6H12O6 -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeigh(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read formulas from file, one per line (- for stdin)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent workers for batch mode (default: GOMAXPROCS)")

	return cmd
}

func runWeigh(cmd *cobra.Command, args []string, opts *WeighOptions) error {
	inputs := args
	if opts.File != "" {
		lines, err := readFormulaLines(cmd, opts.File)
		if err != nil {
			return err
		}
		inputs = append(inputs, lines...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no formula given (pass one as an argument or use --file)")
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(inputs) == 1 && opts.File == "" {
		res, err := cmdCtx.Service.Calculate(cmd.Context(), inputs[0])
		if err != nil {
			return userError(cmdCtx.Cfg, err)
		}
		return renderResult(cmdCtx.Renderer, res)
	}

	results, err := cmdCtx.Service.CalculateBatch(cmd.Context(), inputs, opts.Workers)
	if err != nil {
		return err
	}
	return renderBatch(cmdCtx, results)
}

// readFormulaLines reads one formula per line. Blank lines are skipped;
// anything else, including surrounding spaces, is kept verbatim.
func readFormulaLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open formula file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read formulas: %w", err)
	}
	return lines, nil
}

// renderResult prints one calculation.
func renderResult(r *output.Renderer, res *molecule.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(res)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, res.Formula))
		r.Println("")
		r.Println(output.FormatKeyValue("Normalized", res.Normalized))
		r.Println(output.FormatKeyValue("Molecular Weight", output.FormatWeight(res.MolecularWeight, r.Precision())+" g/mol"))
		r.Println(output.FormatKeyValue("Atoms", output.FormatCount(res.Atoms)))
		r.Println("")
		r.Println(output.FormatHeader(2, "Composition"))
		r.Println("")
		renderComposition(r, res)
		return nil
	default:
		styles := r.Styles()
		r.Printf("%s  %s\n",
			styles.Formula.Render(res.Formula),
			styles.Weight.Render(output.FormatWeight(res.MolecularWeight, r.Precision())+" g/mol"))
		if res.Normalized != res.Formula {
			r.Println(styles.Muted.Render("normalized: " + res.Normalized))
		}
		r.Println("")
		renderComposition(r, res)
		return nil
	}
}

func renderComposition(r *output.Renderer, res *molecule.Result) {
	rows := make([][]string, 0, len(res.Elements))
	for _, e := range res.Elements {
		rows = append(rows, []string{
			e.Symbol,
			e.Name,
			strconv.Itoa(e.Count),
			output.FormatWeight(e.AtomicWeight, r.Precision()),
			output.FormatWeight(e.Mass, r.Precision()),
			output.FormatPercent(e.MassPercent),
		})
	}
	r.Table([]string{"Symbol", "Element", "Count", "Atomic Weight", "Mass", "Mass %"}, rows, 3, 4, 5, 6)
}

func renderBatch(cmdCtx *CommandContext, results []molecule.BatchResult) error {
	r := cmdCtx.Renderer

	out := output.BatchOutput{Results: make([]output.BatchItem, 0, len(results))}
	for _, br := range results {
		item := output.BatchItem{Input: br.Input}
		if br.Err != nil {
			item.Error = userError(cmdCtx.Cfg, br.Err).Error()
			out.Summary.Invalid++
		} else {
			item.Result = br.Result
			out.Summary.Valid++
		}
		out.Summary.Total++
		out.Results = append(out.Results, item)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	default:
		rows := make([][]string, 0, len(results))
		for _, br := range results {
			if br.Err != nil {
				rows = append(rows, []string{br.Input, "", "", userError(cmdCtx.Cfg, br.Err).Error()})
				continue
			}
			rows = append(rows, []string{
				br.Input,
				br.Result.Normalized,
				output.FormatWeight(br.Result.MolecularWeight, r.Precision()),
				"",
			})
		}
		r.Table([]string{"Formula", "Normalized", "Weight", "Error"}, rows, 3)
		r.Println("")
		r.KeyValue("Valid", fmt.Sprintf("%d of %d", out.Summary.Valid, out.Summary.Total))
	}

	if out.Summary.Invalid > 0 {
		return fmt.Errorf("%d of %d formulas are invalid", out.Summary.Invalid, out.Summary.Total)
	}
	return nil
}
