package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/stoich/internal/cli/output"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/spf13/cobra"
)

const replPrompt = "stoich> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive formula calculator",
		Long: `Start an interactive session. Type a formula to see its weight, or a
dot-command to save, list and recall formulas.`,
		Example: `  stoich repl`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

func runREPL(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	session := newREPLSession(cmdCtx, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var historyFile string
	if cmdCtx.Cfg.StatePath != ":memory:" {
		historyFile = filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "repl_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    session.completer(ctx),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stoich REPL (state: %s)\n", cmdCtx.Cfg.StatePath)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type a formula, .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if quit := session.handleLine(ctx, line); quit {
			break
		}
	}
	return nil
}

// replSession holds the state of one interactive session.
type replSession struct {
	cmdCtx *CommandContext
	out    io.Writer
	errOut io.Writer
	// last is the most recent valid formula, the default for .save.
	last *molecule.Result
}

func newREPLSession(cmdCtx *CommandContext, out, errOut io.Writer) *replSession {
	return &replSession{cmdCtx: cmdCtx, out: out, errOut: errOut}
}

// handleLine processes one input line and reports whether the session ends.
// Formulas are taken verbatim apart from the line's outer whitespace.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.handleDotCommand(ctx, line)
	}

	res, err := s.cmdCtx.Service.Calculate(ctx, line)
	if err != nil {
		s.printError(userError(s.cmdCtx.Cfg, err))
		return false
	}
	s.last = res
	if err := renderResult(s.cmdCtx.Renderer, res); err != nil {
		s.printError(err)
	}
	_, _ = fmt.Fprintln(s.out)
	return false
}

func (s *replSession) handleDotCommand(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".save", ".savenorm":
		raw := ""
		if len(args) > 0 {
			raw = args[0]
		} else if s.last != nil {
			raw = s.last.Input
		}
		if raw == "" {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .save <formula> (or weigh a formula first)")
			return false
		}
		m, err := s.cmdCtx.Service.Save(ctx, raw, command == ".savenorm")
		if errors.Is(err, state.ErrDuplicate) {
			s.printError(fmt.Errorf("formula %q is already saved", raw))
			return false
		}
		if err != nil {
			s.printError(userError(s.cmdCtx.Cfg, err))
			return false
		}
		_, _ = fmt.Fprintf(s.out, "Saved %s\n", m.Formula)

	case ".normalize":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .normalize <formula>")
			return false
		}
		res, err := s.cmdCtx.Service.Normalize(ctx, args[0])
		if err != nil {
			s.printError(userError(s.cmdCtx.Cfg, err))
			return false
		}
		s.last = res
		_, _ = fmt.Fprintln(s.out, res.Normalized)

	case ".list":
		molecules, err := s.cmdCtx.Service.List(ctx)
		if err != nil {
			s.printError(err)
			return false
		}
		if len(molecules) == 0 {
			_, _ = fmt.Fprintln(s.out, "No saved formulas")
			return false
		}
		for _, m := range molecules {
			_, _ = fmt.Fprintf(s.out, "%-20s %s\n", m.Formula, output.FormatWeight(m.MolecularWeight, s.cmdCtx.Renderer.Precision())+" g/mol")
		}

	case ".recall":
		if len(args) != 1 {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .recall <formula>")
			return false
		}
		res, err := s.cmdCtx.Service.Recall(ctx, args[0])
		if errors.Is(err, state.ErrNotFound) {
			s.printError(fmt.Errorf("formula %q is not saved", args[0]))
			return false
		}
		if err != nil {
			s.printError(userError(s.cmdCtx.Cfg, err))
			return false
		}
		s.last = res
		if err := renderResult(s.cmdCtx.Renderer, res); err != nil {
			s.printError(err)
		}

	case ".elements":
		elems, err := selectElements(s.cmdCtx.Elements.Table(), args)
		if err != nil {
			s.printError(err)
			return false
		}
		for _, e := range elems {
			_, _ = fmt.Fprintf(s.out, "%3d  %-3s %-14s %g\n", e.Number, e.Symbol, e.Name, e.AtomicWeight)
		}

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")
		s.last = nil

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func (s *replSession) printError(err error) {
	_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  <formula>             Validate a formula and show its weight
  .normalize <formula>  Show the normalized form
  .save [formula]       Save a formula (default: the last one weighed)
  .savenorm [formula]   Save the normalized form
  .list                 List saved formulas
  .recall <formula>     Recalculate a saved formula
  .elements [symbol...] Show the element table
  .clear                Clear the screen
  .quit / .exit         Exit the REPL

Tips:
  - Use arrow keys to navigate history
  - Tab completion works for commands and saved formulas
`
	_, _ = fmt.Fprintln(w, help)
}

// completer offers dot-commands and, after .recall, the saved formulas.
func (s *replSession) completer(ctx context.Context) *readline.PrefixCompleter {
	saved := func(string) []string {
		if s.cmdCtx.Store == nil {
			return nil
		}
		formulas, err := s.cmdCtx.Store.ListFormulas(ctx)
		if err != nil {
			return nil
		}
		return formulas
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".normalize"),
		readline.PcItem(".save"),
		readline.PcItem(".savenorm"),
		readline.PcItem(".list"),
		readline.PcItem(".recall", readline.PcItemDynamic(saved)),
		readline.PcItem(".elements"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
