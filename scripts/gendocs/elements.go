package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/stoich/internal/elements"
)

// generateElementsDocs writes elements.md listing the built-in element table.
func generateElementsDocs(outDir string) error {
	log.Printf("Generating element table docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tbl := elements.Default()

	w := NewMarkdownWriter()
	w.Frontmatter("Element Table", "Built-in element symbols and standard atomic weights")
	w.GeneratedMarker()

	w.Header(1, "Element Table")
	w.Paragraph(fmt.Sprintf("A new state database is seeded with these %d elements. Symbols are case-sensitive. Set %s to use a different table.",
		tbl.Len(), InlineCode("elements_file")))

	rows := make([][]string, 0, tbl.Len())
	for _, e := range tbl.Elements() {
		rows = append(rows, []string{
			strconv.Itoa(e.Number),
			InlineCode(string(e.Symbol)),
			e.Name,
			strconv.FormatFloat(e.AtomicWeight, 'f', -1, 64),
		})
	}
	w.Table([]string{"Number", "Symbol", "Name", "Atomic Weight"}, rows)

	w.Header(2, "Custom Tables")
	w.Paragraph("YAML files hold an elements list; CSV files need a header row with at least symbol and atomic_weight columns.")
	w.CodeBlock("yaml", `elements:
  - {symbol: H, name: Hydrogen, number: 1, atomic_weight: 1.008}
  - {symbol: O, name: Oxygen, number: 8, atomic_weight: 15.999}`)

	filename := filepath.Join(outDir, "elements.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated elements.md")
	return nil
}
