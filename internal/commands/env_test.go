package commands_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opendatateam/ucli/internal/commands"
	"github.com/opendatateam/ucli/internal/lib"
	"github.com/opendatateam/ucli/internal/models"
	"github.com/opendatateam/ucli/internal/services"
	"github.com/opendatateam/ucli/internal/ui"
)

// fakeAPI is a scripted uData instance keyed by "METHOD /path"
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	requests []string
	bodies   map[string][]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		routes: make(map[string]func(w http.ResponseWriter, r *http.Request)),
		bodies: make(map[string][]string),
	}
}

// reply registers a canned JSON response
func (f *fakeAPI) reply(route string, status int, body string) {
	f.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == route {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/1")

	var body bytes.Buffer
	_, _ = body.ReadFrom(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, route)
	f.bodies[route] = append(f.bodies[route], body.String())
	handler, ok := f.routes[route]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not found"}`))
		return
	}
	handler(w, r)
}

// testEnv bundles an Env with the buffers it writes to
type testEnv struct {
	*commands.Env
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func (e *testEnv) stdout() string { return e.out.String() }
func (e *testEnv) stderr() string { return e.errOut.String() }

func newTestEnv(t *testing.T, api *fakeAPI, input string) *testEnv {
	t.Helper()

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	var out, errOut bytes.Buffer
	logger := lib.NewLoggerWithWriters(lib.LogLevelInfo, &out, &errOut)
	printer := ui.NewPrinter(&out)

	return &testEnv{
		Env: &commands.Env{
			API:    services.NewClient(models.ClientConfig{URL: server.URL, Token: "key", SSLCheck: true}, logger),
			Prompt: ui.NewPrompter(strings.NewReader(input), printer),
			Out:    printer,
			Logger: logger,
		},
		out:    &out,
		errOut: &errOut,
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
