// Package tools defines the MCP tools that bridge a calling agent to the
// TensorPool `tp` CLI. Each tool assembles a fixed argument vector, hands it
// to the runner, and returns the rendered result text. Domain failures never
// surface as Go errors to the MCP client — they come back as descriptive
// text, so a bad call can't crash the server.
package tools

import (
	stderrors "errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tensorpool/tensorpool-mcp/internal/errors"
	"github.com/tensorpool/tensorpool-mcp/internal/logger"
	"github.com/tensorpool/tensorpool-mcp/internal/tpcli"
)

// Deps carries the shared collaborators every tool handler needs.
type Deps struct {
	Runner tpcli.Runner
	Log    logger.Logger
}

// Tool bundles an MCP tool definition with its handler.
type Tool interface {
	Definition() mcp.Tool
	Handler(deps *Deps) server.ToolHandlerFunc
}

// All returns the full tool set in registration order.
func All() []Tool {
	return []Tool{
		clusterCreate{},
		clusterList{},
		clusterInfo{},
		clusterDestroy{},
		jobWriteConfig{},
		jobPush{},
		jobList{},
		jobInfo{},
		jobPull{},
		jobCancel{},
	}
}

// RegisterAll adds every tool to the MCP server.
func RegisterAll(s *server.MCPServer, deps *Deps) {
	if deps.Log == nil {
		deps.Log = logger.Noop()
	}
	for _, t := range All() {
		s.AddTool(t.Definition(), t.Handler(deps))
	}
}

// runResult converts a runner result into a tool result, flagging
// non-success outcomes as errors so agents can reason about them.
func runResult(res *tpcli.Result) *mcp.CallToolResult {
	if res.OK() {
		return mcp.NewToolResultText(res.Render())
	}
	return mcp.NewToolResultError(res.Render())
}

// errorText renders a validation or setup error as one descriptive line.
func errorText(err error) string {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		if structured.Suggestion != "" {
			return fmt.Sprintf("ERROR: %s. %s", structured.Message, structured.Suggestion)
		}
		return "ERROR: " + structured.Message
	}
	return "ERROR: " + err.Error()
}
