package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tensorpool/tensorpool-mcp/internal/jobconfig"
)

type jobWriteConfig struct{}

func (jobWriteConfig) Definition() mcp.Tool {
	return mcp.NewTool("job_write_config",
		mcp.WithDescription("Generate a tp.config.toml for tp job push."),
		mcp.WithString("workdir",
			mcp.Required(),
			mcp.Description("Directory to write the config in")),
		mcp.WithString("instance_type",
			mcp.Required(),
			mcp.Description(`e.g. "1xH100"`)),
		mcp.WithArray("commands",
			mcp.Required(),
			mcp.Description(`Shell commands to run sequentially, e.g. ["pip install -r requirements.txt","python train.py"]`),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("outputs",
			mcp.Description(`Files/dirs/globs to save, e.g. ["checkpoints/"]`),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("ignore",
			mcp.Description(`Paths/globs to exclude from upload, e.g. [".venv"]`),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("filename",
			mcp.Description("Config filename (default tp.config.toml)")),
	)
}

func (jobWriteConfig) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		workdir, err := req.RequireString("workdir")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		instanceType, err := req.RequireString("instance_type")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}

		cfg := &jobconfig.Config{
			InstanceType: instanceType,
			Commands:     req.GetStringSlice("commands", nil),
			Outputs:      req.GetStringSlice("outputs", nil),
			Ignore:       req.GetStringSlice("ignore", nil),
		}

		path, err := cfg.Write(workdir, req.GetString("filename", ""))
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}

		deps.Log.Debug("wrote job config %s", path)
		return mcp.NewToolResultText("Wrote " + path), nil
	}
}
