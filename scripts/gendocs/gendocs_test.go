package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerators(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string) error
		file     string
		contains []string
	}{
		{"cli", generateCLIDocs, "index.md", []string{"# CLI Reference", "[`weigh`](/cli/weigh)", "`STOICH_STATE_PATH`"}},
		{"cli command", generateCLIDocs, "weigh.md", []string{"# weigh", "`calc`", "`--file`"}},
		{"config", generateConfigDocs, "configuration.md", []string{"`serve.addr`", "`STOICH_SERVE__ADDR`", "`127.0.0.1:8088`"}},
		{"elements", generateElementsDocs, "elements.md", []string{"`Ni`", "Nickel", "15.999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, tt.fn(dir))

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			content := string(data)
			assert.Contains(t, content, generatedHeader)
			for _, want := range tt.contains {
				assert.Contains(t, content, want)
			}
		})
	}
}

func TestConfigField_EnvVar(t *testing.T) {
	assert.Equal(t, "STOICH_LOG_LEVEL", ConfigField{Key: "log_level"}.EnvVar())
	assert.Equal(t, "STOICH_SERVE__WATCH", ConfigField{Key: "serve.watch"}.EnvVar())
}

func TestCleanExample(t *testing.T) {
	got := cleanExample("  # Weigh water\n  stoich weigh H2O\n\n    indented")
	assert.Equal(t, "# Weigh water\nstoich weigh H2O\n\n  indented", got)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "a b | c", cleanDescription(" a\n  b | c "))
}
