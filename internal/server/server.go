// Package server assembles the MCP server: it wires the tp runner into the
// tool set and exposes the result over the configured transport.
package server

import (
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tensorpool/tensorpool-mcp/internal/config"
	"github.com/tensorpool/tensorpool-mcp/internal/errors"
	"github.com/tensorpool/tensorpool-mcp/internal/logger"
	"github.com/tensorpool/tensorpool-mcp/internal/tools"
	"github.com/tensorpool/tensorpool-mcp/internal/tpcli"
)

// Name is the server name announced during MCP initialization.
const Name = "TensorPool MCP"

// Server is a fully wired MCP server ready to serve one transport.
type Server struct {
	cfg *config.Config
	log logger.Logger
	mcp *mcpserver.MCPServer
}

// New builds the MCP server from config: one CLIRunner shared by all tools
// (it holds no per-invocation state, so concurrent tool calls are fine).
func New(cfg *config.Config, version string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}

	s := mcpserver.NewMCPServer(Name, version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)

	runner := tpcli.NewCLIRunner(cfg.TPBinary, cfg.Timeout(), log)
	tools.RegisterAll(s, &tools.Deps{Runner: runner, Log: log})

	return &Server{cfg: cfg, log: log, mcp: s}
}

// Serve blocks, serving MCP on the configured transport, until the client
// disconnects (stdio) or the listener fails (http).
func (s *Server) Serve() error {
	switch s.cfg.Transport {
	case config.TransportHTTP:
		s.log.Info("serving MCP over streamable HTTP on %s (tp binary: %s, timeout: %s)",
			s.cfg.HTTPAddr, s.cfg.TPBinary, s.cfg.Timeout())
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		if err := httpServer.Start(s.cfg.HTTPAddr); err != nil {
			return errors.WrapWithCode(err, errors.ErrServer,
				"HTTP server stopped: "+s.cfg.HTTPAddr,
				"Check the address isn't already in use")
		}
		return nil
	default:
		s.log.Info("serving MCP over stdio (tp binary: %s, timeout: %s)",
			s.cfg.TPBinary, s.cfg.Timeout())
		if err := mcpserver.ServeStdio(s.mcp); err != nil {
			return errors.WrapWithCode(err, errors.ErrServer,
				"stdio server stopped",
				"This usually means the client closed the connection uncleanly")
		}
		return nil
	}
}
