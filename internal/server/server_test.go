package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/stoich/internal/elements"
	"github.com/leapstack-labs/stoich/internal/molecule"
	"github.com/leapstack-labs/stoich/internal/state"
	"github.com/leapstack-labs/stoich/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	store := state.NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(ctx))

	src := elements.NewStaticSource(testutil.ScenarioTable())
	logger := testutil.NewTestLogger(t)
	return New(Config{
		Service: molecule.NewService(src, store, logger),
		Source:  src,
		Logger:  logger,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 6, body["elements"])
}

func TestElements(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := do(t, h, http.MethodGet, "/elements", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 6, body["count"])
	first := body["elements"].([]any)[0].(map[string]any)
	assert.Equal(t, "H", first["symbol"])

	rec, body = do(t, h, http.MethodGet, "/elements/Ni", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Nickel", body["name"])
	assert.InDelta(t, 58.693, body["atomic_weight"], 1e-9)

	rec, body = do(t, h, http.MethodGet, "/elements/Xx", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, body["error"], "Xx")
}

func TestWeigh(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantWeight float64
		wantColumn float64
	}{
		{name: "water", body: `{"formula":"H2O"}`, wantStatus: http.StatusOK, wantWeight: 18.015},
		{name: "nickel nitride", body: `{"formula":"Ni3N"}`, wantStatus: http.StatusOK, wantWeight: 190.086},
		{name: "unknown element", body: `{"formula":"NaCl"}`, wantStatus: http.StatusUnprocessableEntity, wantColumn: 1},
		{name: "lower-case start", body: `{"formula":"h2o"}`, wantStatus: http.StatusUnprocessableEntity, wantColumn: 1},
		{name: "trailing space", body: `{"formula":"H2O "}`, wantStatus: http.StatusUnprocessableEntity, wantColumn: 4},
		{name: "empty", body: `{"formula":""}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "malformed body", body: `{"formula":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"formule":"H2O"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := do(t, h, http.MethodPost, "/weigh", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			switch tt.wantStatus {
			case http.StatusOK:
				assert.InDelta(t, tt.wantWeight, body["molecular_weight"], 1e-9)
			case http.StatusUnprocessableEntity:
				assert.Equal(t, invalidFormulaMessage, body["error"])
				assert.NotContains(t, body, "molecular_weight")
				if tt.wantColumn > 0 {
					assert.Equal(t, tt.wantColumn, body["column"])
				}
			}
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, body["request_id"])
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := do(t, h, http.MethodPost, "/normalize", `{"formula":"NNiN"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "N2Ni", body["formula"])
	assert.Equal(t, "N2Ni", body["normalized"])
	assert.Equal(t, "NNiN", body["input"])
}

func TestMolecules(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, body := do(t, h, http.MethodGet, "/molecules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["molecules"])

	rec, body = do(t, h, http.MethodPost, "/molecules", `{"formula":"HH","normalize":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "H2", body["formula"])
	assert.NotEmpty(t, body["id"])

	rec, _ = do(t, h, http.MethodPost, "/molecules", `{"formula":"H2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/molecules", `{"formula":"NaCl"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = do(t, h, http.MethodGet, "/molecules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	rec, body = do(t, h, http.MethodGet, "/molecules/H2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 2.016, body["molecular_weight"], 1e-9)

	rec, _ = do(t, h, http.MethodGet, "/molecules/CO2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type brokenCatalog struct{}

func (brokenCatalog) SaveMolecule(context.Context, *state.Molecule) error {
	return errors.New("disk on fire")
}

func (brokenCatalog) GetMolecule(context.Context, string) (*state.Molecule, error) {
	return nil, errors.New("disk on fire")
}

func (brokenCatalog) ListMolecules(context.Context) ([]*state.Molecule, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	src := elements.NewStaticSource(testutil.ScenarioTable())
	srv := New(Config{Service: molecule.NewService(src, brokenCatalog{}, testutil.NewTestLogger(t))})

	rec, body := do(t, srv.Handler(), http.MethodGet, "/molecules", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", body["error"])
	assert.NotContains(t, rec.Body.String(), "disk on fire")
}

func TestWithoutCatalog(t *testing.T) {
	src := elements.NewStaticSource(testutil.ScenarioTable())
	srv := New(Config{Service: molecule.NewService(src, nil, nil)})

	rec, _ := do(t, srv.Handler(), http.MethodGet, "/molecules", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEvents(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return srv.Notifier().Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	post, err := ts.Client().Post(ts.URL+"/molecules", "application/json", strings.NewReader(`{"formula":"H2O"}`))
	require.NoError(t, err)
	_ = post.Body.Close()
	require.Equal(t, http.StatusCreated, post.StatusCode)

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: "+EventMoleculeSaved+"\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"formula":"H2O"`)
}

func TestServeListener_WatchAndShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elements.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,atomic_weight\nH,1.008\n"), 0o600))

	logger := testutil.NewTestLogger(t)
	src, err := elements.NewFileSource(path, logger)
	require.NoError(t, err)

	srv := New(Config{
		Service: molecule.NewService(src, nil, logger),
		Source:  src,
		Watch:   true,
		Logger:  logger,
	})
	updates := srv.Notifier().Subscribe()
	defer srv.Notifier().Unsubscribe(updates)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String()
	require.Eventually(t, func() bool {
		resp, err := http.Get(url + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("symbol,atomic_weight\nH,1.008\nO,15.999\n"), 0o600))

	select {
	case ev := <-updates:
		assert.Equal(t, EventElementsChanged, ev.Kind)
		assert.Equal(t, 2, ev.Count)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
