package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/bitcoin-mcp/internal/common"
	"github.com/bobmcallan/bitcoin-mcp/internal/config"
	httpserver "github.com/bobmcallan/bitcoin-mcp/internal/server"
	"github.com/bobmcallan/bitcoin-mcp/internal/tools"
	"github.com/bobmcallan/bitcoin-mcp/internal/upstream"
)

func main() {
	stdio := flag.Bool("stdio", true, "Use stdio transport (for Claude Desktop and other agent hosts)")
	configFile := flag.String("config", "bitcoin-mcp.toml", "Path to config file")
	port := flag.Int("port", 0, "Port for the streamable HTTP transport (with -stdio=false)")
	envFile := flag.String("env", ".env", "Path to dotenv file with BITCOIN_MCP_* overrides")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *port)
	config.LoadVersionFromFile()

	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := upstream.NewClient(cfg.Upstream, logger)
	registry, err := tools.Build(client, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("tool registration failed")
		os.Exit(1)
	}

	mcpServer := newMCPServer(cfg, registry)

	// Cancelling ctx aborts in-flight upstream requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("name", cfg.Server.Name).
		Str("version", config.GetFullVersion()).
		Int("tools", len(registry.List())).
		Msg("bitcoin-mcp starting")

	if *stdio {
		stdioServer := server.NewStdioServer(mcpServer)
		if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := httpserver.New(cfg.Server,
		server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true)),
		logger,
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(httpServer.Start)
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}

// newMCPServer creates the MCP server and mounts the registry's tools on it.
func newMCPServer(cfg *config.Config, registry *tools.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)
	registry.Mount(s)
	return s
}
