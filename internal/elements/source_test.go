package elements

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/stoich/internal/testutil"
	"github.com/leapstack-labs/stoich/pkg/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	s := NewStaticSource(Default())
	assert.Same(t, Default(), s.Table())
	assert.Empty(t, s.Path())
	assert.NoError(t, s.Reload())
}

func TestFileSource_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elements:\n  - {symbol: \"H\", atomic_weight: 1.008}\n"), 0o600))

	s, err := NewFileSource(path, testutil.NewTestLogger(t))
	require.NoError(t, err)
	first := s.Table()
	assert.Equal(t, 1, first.Len())

	require.NoError(t, os.WriteFile(path, []byte("elements: [oops"), 0o600))
	require.Error(t, s.Reload())
	assert.Same(t, first, s.Table())
}

func TestFileSource_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elements:\n  - {symbol: \"H\", atomic_weight: 1.008}\n"), 0o600))

	s, err := NewFileSource(path, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("elements:\n  - {symbol: \"H\", atomic_weight: 1.008}\n  - {symbol: \"O\", atomic_weight: 15.999}\n"), 0o600))

	assert.Eventually(t, func() bool {
		_, ok := s.Table().Lookup(formula.Symbol("O"))
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestFileSource_OnReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,atomic_weight\nH,1.008\n"), 0o600))

	s, err := NewFileSource(path, nil)
	require.NoError(t, err)

	var got *formula.Table
	s.OnReload(func(tbl *formula.Table) { got = tbl })

	require.NoError(t, os.WriteFile(path, []byte("symbol,atomic_weight\nH,1.008\nO,15.999\n"), 0o600))
	require.NoError(t, s.Reload())
	require.NotNil(t, got)
	assert.Same(t, s.Table(), got)
	assert.Equal(t, 2, got.Len())

	// Failed reloads do not fire the hook.
	got = nil
	require.NoError(t, os.WriteFile(path, []byte("symbol,atomic_weight\nH,heavy\n"), 0o600))
	require.Error(t, s.Reload())
	assert.Nil(t, got)
}
