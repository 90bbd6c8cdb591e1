package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/config"
	"github.com/bobmcallan/bitcoin-mcp/internal/tools"
	"github.com/bobmcallan/bitcoin-mcp/internal/upstream"
)

func TestNewMCPServer_Initialize(t *testing.T) {
	cfg := config.NewDefaultConfig()
	logger := common.NewSilentLogger()
	registry, err := tools.Build(upstream.NewClient(cfg.Upstream, logger), logger)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	s := newMCPServer(cfg, registry)

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`)
	raw, err := json.Marshal(s.HandleMessage(t.Context(), msg))
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
			Capabilities struct {
				Tools *struct{} `json:"tools"`
			} `json:"capabilities"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Result.ServerInfo.Name != "Bitcoin MCP" {
		t.Errorf("expected server name Bitcoin MCP, got %q", resp.Result.ServerInfo.Name)
	}
	if resp.Result.ServerInfo.Version != config.GetVersion() {
		t.Errorf("expected version %q, got %q", config.GetVersion(), resp.Result.ServerInfo.Version)
	}
	if resp.Result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be advertised")
	}
}

func TestNewMCPServer_SealsRegistry(t *testing.T) {
	cfg := config.NewDefaultConfig()
	logger := common.NewSilentLogger()
	registry, err := tools.Build(upstream.NewClient(cfg.Upstream, logger), logger)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	newMCPServer(cfg, registry)

	err = registry.Register(tools.Definition{Name: "late"}, func(_ context.Context, _ tools.Args) (string, error) {
		return "", nil
	})
	if err == nil {
		t.Fatal("expected registration after mount to fail")
	}
}
