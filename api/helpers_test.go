package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"studentrecords/llm"
	"studentrecords/srv"
	"studentrecords/srv/sqlite"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeOllama serves canned responses on /api/generate and records prompts.
type fakeOllama struct {
	mu      sync.Mutex
	prompts []string
	status  int
	lines   []string
}

func (f *fakeOllama) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req llm.GenerateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	status, lines := f.status, f.lines
	f.mu.Unlock()

	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(strings.Join(lines, "\n")))
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)
	for _, line := range lines {
		_, _ = w.Write([]byte(line + "\n"))
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (f *fakeOllama) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type testEnv struct {
	ctrl   Controller
	router *gin.Engine
	ollama *fakeOllama
}

// newTestEnv wires a controller over a fresh sqlite database and an
// in-memory summary cache, with a real Ollama client pointed at a fake
// server answering with status and lines.
func newTestEnv(t *testing.T, status int, lines ...string) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ollama := &fakeOllama{status: status, lines: lines}
	server := httptest.NewServer(ollama)
	t.Cleanup(server.Close)

	storage := sqlite.NewTestSqliteStorage(t, "api_test")
	service := srv.NewDelegator(storage, srv.NewMemorySummaryCache())
	generator := llm.NewOllamaClient(server.URL, "test-model", server.Client())

	ctrl := newController(service, generator, BuildDefaultAllowedOrigins())
	return testEnv{ctrl: ctrl, router: DefineRoutes(ctrl), ollama: ollama}
}

func newDefaultTestEnv(t *testing.T) testEnv {
	return newTestEnv(t, http.StatusOK,
		`{"response":"All students ","done":false}`,
		`{"response":"are doing well.","done":true}`,
	)
}

func (env testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// create posts body and returns the new record's id.
func (env testEnv) create(t *testing.T, path, body string) int64 {
	t.Helper()
	w := env.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp MutationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotZero(t, resp.Id)
	return resp.Id
}
