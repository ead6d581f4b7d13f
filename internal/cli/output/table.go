package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table writes rows under header using a box table in text mode and a
// markdown table otherwise. Columns listed in numeric are right aligned.
func (r *Renderer) Table(header []string, rows [][]string, numeric ...int) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	t.AppendHeader(hdr)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if len(numeric) > 0 {
		configs := make([]table.ColumnConfig, 0, len(numeric))
		for _, col := range numeric {
			configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight})
		}
		t.SetColumnConfigs(configs)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleRounded)
		t.Render()
		return
	}
	t.RenderMarkdown()
}
