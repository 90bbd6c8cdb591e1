package tools

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/config"
	"github.com/bobmcallan/bitcoin-mcp/internal/upstream"
)

// fakeUpstream serves canned responses for the three bitcoin endpoints and
// counts how many requests reached it.
type fakeUpstream struct {
	server *httptest.Server
	hits   atomic.Int64
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeUpstream(t *testing.T, price, height, fees cannedResponse) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	mux := http.NewServeMux()
	serve := func(c cannedResponse) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.hits.Add(1)
			status := c.status
			if status == 0 {
				status = http.StatusOK
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(c.body))
		}
	}
	mux.HandleFunc("/price", serve(price))
	mux.HandleFunc("/height", serve(height))
	mux.HandleFunc("/fees", serve(fees))
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) client() *upstream.Client {
	return upstream.NewClient(config.UpstreamConfig{
		PriceURL:  f.server.URL + "/price",
		HeightURL: f.server.URL + "/height",
		FeesURL:   f.server.URL + "/fees",
		Timeout:   "5s",
	}, common.NewSilentLogger())
}

func testRegistry(t *testing.T, f *fakeUpstream) *Registry {
	t.Helper()
	r, err := Build(f.client(), common.NewSilentLogger())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return r
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	if args != nil {
		request.Params.Arguments = args
	}
	return request
}
