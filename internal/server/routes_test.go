package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/config"
	"github.com/bobmcallan/bitcoin-mcp/internal/tools"
	"github.com/bobmcallan/bitcoin-mcp/internal/upstream"
)

func newTestHTTPServer(t *testing.T, mcpHandler http.Handler) *Server {
	t.Helper()
	cfg := config.NewDefaultConfig()
	return New(cfg.Server, mcpHandler, common.NewSilentLogger())
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	srv := newTestHTTPServer(t, http.NotFoundHandler())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
	if body["version"] != config.GetVersion() {
		t.Errorf("expected version %s, got %s", config.GetVersion(), body["version"])
	}
}

func TestRoutes_HealthRejectsPost(t *testing.T) {
	srv := newTestHTTPServer(t, http.NotFoundHandler())

	req := httptest.NewRequest("POST", "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestRoutes_NotFound(t *testing.T) {
	srv := newTestHTTPServer(t, http.NotFoundHandler())

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}
}

func TestRoutes_MCPReceivesCorrelationID(t *testing.T) {
	var seen string
	srv := newTestHTTPServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = common.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{}`))
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("expected status 202, got %d", w.Code)
	}
	if seen != "req-42" {
		t.Errorf("expected correlation ID req-42 on MCP request, got %q", seen)
	}
}

func TestRoutes_StreamableToolsCall(t *testing.T) {
	cfg := config.NewDefaultConfig()
	logger := common.NewSilentLogger()
	registry, err := tools.Build(upstream.NewClient(cfg.Upstream, logger), logger)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	s := mcpserver.NewMCPServer(cfg.Server.Name, "test", mcpserver.WithToolCapabilities(true))
	registry.Mount(s)

	srv := New(cfg.Server, mcpserver.NewStreamableHTTPServer(s, mcpserver.WithStateLess(true)), logger)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"over http"}}}`
	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	if resp.Result.IsError || len(resp.Result.Content) != 1 || resp.Result.Content[0].Text != "over http" {
		t.Errorf("unexpected result %+v", resp.Result)
	}
}

func TestRoutes_RealIPFromForwardedHeader(t *testing.T) {
	var remote string
	srv := newTestHTTPServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remote = r.RemoteAddr
	}))

	req := httptest.NewRequest("POST", "/mcp", strings.NewReader(`{}`))
	req.Header.Set("X-Real-IP", "203.0.113.7")
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	if remote != "203.0.113.7" {
		t.Errorf("expected RemoteAddr from X-Real-IP, got %q", remote)
	}
}
