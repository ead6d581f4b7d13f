package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/stoich/internal/cli/config"
)

// ConfigField describes one configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Flag        string
	Description string
}

// EnvVar returns the environment variable that overrides the key.
func (f ConfigField) EnvVar() string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(f.Key, ".", "__"))
}

// configFields returns the configuration schema. Defaults come from
// config.Default so the page cannot drift from the loader.
func configFields() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "state_path", Type: "string", Default: def.StatePath, Flag: "--state", Description: "Path to the SQLite state database holding the element table and saved formulas. Use :memory: for a throwaway database."},
		{Key: "elements_file", Type: "string", Flag: "--elements", Description: "YAML or CSV element table that replaces the table stored in the state database"},
		{Key: "output", Type: "string", Default: def.OutputFormat, Flag: "--output", Description: "Output format: auto, text, markdown, json"},
		{Key: "verbose", Type: "bool", Default: strconv.FormatBool(def.Verbose), Flag: "--verbose", Description: "Show parse diagnostics and debug logs"},
		{Key: "log_level", Type: "string", Default: def.LogLevel, Flag: "--log-level", Description: "Log level: debug, info, warn, error"},
		{Key: "precision", Type: "int", Default: strconv.Itoa(def.Precision), Flag: "--precision", Description: fmt.Sprintf("Decimal places for weights (0-%d)", config.MaxPrecision)},
		{Key: "serve.addr", Type: "string", Default: def.Serve.Addr, Flag: "serve --addr", Description: "Listen address for the HTTP API"},
		{Key: "serve.watch", Type: "bool", Default: strconv.FormatBool(def.Serve.Watch), Flag: "serve --watch", Description: "Reload elements_file when it changes"},
	}
}

// generateConfigDocs writes configuration.md.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "stoich configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("stoich reads %s (or %s) from the current directory or the nearest parent. Relative paths in the file resolve against the directory that holds it.",
		InlineCode(config.ConfigFileName), InlineCode(config.ConfigFileNameAlt)))

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables prefixed with %s", InlineCode(config.EnvPrefix)),
		"The config file",
		"Built-in defaults",
	})

	w.Header(2, "Keys")
	var rows [][]string
	for _, f := range configFields() {
		def := f.Default
		if def != "" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{
			InlineCode(f.Key),
			f.Type,
			def,
			InlineCode(f.Flag),
			InlineCode(f.EnvVar()),
			cleanDescription(f.Description),
		})
	}
	w.Table([]string{"Key", "Type", "Default", "Flag", "Environment", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `state_path: .stoich/state.db
elements_file: elements.yaml
output: text
precision: 4
serve:
  addr: 127.0.0.1:8088
  watch: true`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
