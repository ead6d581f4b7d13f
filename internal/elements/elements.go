// Package elements loads element tables: the embedded periodic table and
// user supplied YAML or CSV files.
package elements

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/stoich/pkg/formula"
	"gopkg.in/yaml.v3"
)

//go:embed periodic_table.yaml
var periodicTableYAML []byte

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

type document struct {
	Elements []formula.Element `yaml:"elements"`
}

var (
	defaultOnce  sync.Once
	defaultTable *formula.Table
)

// Default returns the embedded periodic table.
func Default() *formula.Table {
	defaultOnce.Do(func() {
		elems, err := Decode(bytes.NewReader(periodicTableYAML), FormatYAML)
		if err != nil {
			panic(fmt.Sprintf("elements: embedded periodic table: %v", err))
		}
		defaultTable = formula.MustTable(elems...)
	})
	return defaultTable
}

// DefaultElements returns the elements of the embedded periodic table.
func DefaultElements() []formula.Element {
	return Default().Elements()
}

// FormatForPath infers the file format from the extension of path.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported element file %s: expected .yaml, .yml or .csv", path)
	}
}

// LoadFile reads an element table from a YAML or CSV file.
func LoadFile(path string) (*formula.Table, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open element file: %w", err)
	}
	defer func() { _ = f.Close() }()

	elems, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	tbl, err := formula.NewTable(elems...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// Decode reads elements in the given format.
func Decode(r io.Reader, format string) ([]formula.Element, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return decodeCSV(r)
	default:
		return nil, fmt.Errorf("unknown element format %q", format)
	}
}

func decodeYAML(r io.Reader) ([]formula.Element, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse element YAML: %w", err)
	}
	return doc.Elements, nil
}

// decodeCSV reads a CSV file with a header row. The symbol and atomic_weight
// columns are required; name and number are optional.
func decodeCSV(r io.Reader) ([]formula.Element, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read element CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"symbol", "atomic_weight"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("element CSV is missing the %q column", required)
		}
	}

	field := func(rec []string, name string) string {
		if i, ok := cols[name]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var elems []formula.Element
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return elems, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read element CSV: %w", err)
		}

		weight, err := strconv.ParseFloat(field(rec, "atomic_weight"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid atomic_weight: %w", line, err)
		}
		e := formula.Element{
			Symbol:       formula.Symbol(field(rec, "symbol")),
			Name:         field(rec, "name"),
			AtomicWeight: weight,
		}
		if n := field(rec, "number"); n != "" {
			if e.Number, err = strconv.Atoi(n); err != nil {
				return nil, fmt.Errorf("line %d: invalid number: %w", line, err)
			}
		}
		elems = append(elems, e)
	}
}
