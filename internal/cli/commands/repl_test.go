package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*replSession, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	setupEnv(t, "text")

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd := NewREPLCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetContext(context.Background())

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return newREPLSession(cmdCtx, out, errOut), out, errOut
}

func TestREPL_FormulaLine(t *testing.T) {
	s, out, errOut := newTestSession(t)
	ctx := context.Background()

	assert.False(t, s.handleLine(ctx, "  H2O  "))
	assert.Contains(t, out.String(), "H2O  18.015 g/mol")
	assert.Empty(t, errOut.String())
	require.NotNil(t, s.last)
	assert.Equal(t, "H2O", s.last.Input)

	out.Reset()
	assert.False(t, s.handleLine(ctx, "h2o"))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: invalid formula entered")
	assert.Equal(t, "H2O", s.last.Input, "a rejected line keeps the last valid formula")
}

func TestREPL_SaveListRecall(t *testing.T) {
	s, out, errOut := newTestSession(t)
	ctx := context.Background()

	// Nothing weighed yet
	assert.False(t, s.handleLine(ctx, ".save"))
	assert.Contains(t, errOut.String(), "Usage: .save")

	s.handleLine(ctx, "NNiN")
	out.Reset()
	s.handleLine(ctx, ".save")
	assert.Equal(t, "Saved NNiN\n", out.String())

	out.Reset()
	s.handleLine(ctx, ".savenorm HH")
	assert.Equal(t, "Saved H2\n", out.String())

	errOut.Reset()
	s.handleLine(ctx, ".save NNiN")
	assert.Contains(t, errOut.String(), "already saved")

	out.Reset()
	s.handleLine(ctx, ".list")
	assert.Contains(t, out.String(), "NNiN")
	assert.Contains(t, out.String(), "2.016 g/mol")

	out.Reset()
	s.handleLine(ctx, ".recall H2")
	assert.Contains(t, out.String(), "H2  2.016 g/mol")

	errOut.Reset()
	s.handleLine(ctx, ".recall CO2")
	assert.Contains(t, errOut.String(), "not saved")
}

func TestREPL_DotCommands(t *testing.T) {
	s, out, errOut := newTestSession(t)
	ctx := context.Background()

	s.handleLine(ctx, ".normalize H2H3")
	assert.Equal(t, "H5\n", out.String())

	out.Reset()
	s.handleLine(ctx, ".elements O")
	assert.Contains(t, out.String(), "Oxygen")

	out.Reset()
	s.handleLine(ctx, ".list")
	assert.Equal(t, "No saved formulas\n", out.String())

	out.Reset()
	s.handleLine(ctx, ".help")
	assert.Contains(t, out.String(), ".recall <formula>")

	s.handleLine(ctx, ".bogus")
	assert.Contains(t, errOut.String(), "Unknown command: .bogus")

	assert.True(t, s.handleLine(ctx, ".quit"))
	assert.True(t, s.handleLine(ctx, ".EXIT"))
	assert.False(t, s.handleLine(ctx, ""))
}

func TestREPL_Completer(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()
	s.handleLine(ctx, ".save H2O")

	c := s.completer(ctx)
	names := make([]string, 0, len(c.GetChildren()))
	for _, child := range c.GetChildren() {
		names = append(names, strings.TrimSpace(string(child.GetName())))
	}
	assert.Contains(t, names, ".recall")
	assert.Contains(t, names, ".quit")
}
