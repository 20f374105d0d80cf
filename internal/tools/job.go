package tools

import (
	"context"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tensorpool/tensorpool-mcp/internal/jobconfig"
	"github.com/tensorpool/tensorpool-mcp/internal/tpcli"
)

// refuseCancel is returned when job_cancel is called without confirm=true.
const refuseCancel = "Refusing to cancel job: set confirm=true to proceed."

type jobPush struct{}

func (jobPush) Definition() mcp.Tool {
	return mcp.NewTool("job_push",
		mcp.WithDescription("Submit a job using tp job push <config_path>."),
		mcp.WithString("config_path",
			mcp.Required(),
			mcp.Description("Path to tp.config.toml")),
		mcp.WithString("workdir",
			mcp.Description("Optional working directory for the push")),
	)
}

func (jobPush) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		configPath, err := req.RequireString("config_path")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		workdir := req.GetString("workdir", "")

		// Pre-flight: the config must exist and parse before tp uploads
		// anything. Catches a mistyped path without a billable submission.
		resolved := configPath
		if workdir != "" && !filepath.IsAbs(configPath) {
			resolved = filepath.Join(workdir, configPath)
		}
		cfg, err := jobconfig.Load(resolved)
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		if err := cfg.Validate(); err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}

		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{
			Args: []string{"job", "push", configPath},
			Dir:  workdir,
		})), nil
	}
}

type jobList struct{}

func (jobList) Definition() mcp.Tool {
	return mcp.NewTool("job_list",
		mcp.WithDescription("List TensorPool jobs."),
		mcp.WithBoolean("org",
			mcp.Description("List organization jobs")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (jobList) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := []string{"job", "list"}
		if req.GetBool("org", false) {
			args = append(args, "--org")
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{Args: args})), nil
	}
}

type jobInfo struct{}

func (jobInfo) Definition() mcp.Tool {
	return mcp.NewTool("job_info",
		mcp.WithDescription("Get detailed information about a job."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job id")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (jobInfo) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("job_id")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{
			Args: []string{"job", "info", id},
		})), nil
	}
}

type jobPull struct{}

func (jobPull) Definition() mcp.Tool {
	return mcp.NewTool("job_pull",
		mcp.WithDescription("Download output files from a completed job."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job id")),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing files")),
	)
}

func (jobPull) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("job_id")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		args := []string{"job", "pull", id}
		if req.GetBool("force", false) {
			args = append(args, "--force")
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{Args: args})), nil
	}
}

type jobCancel struct{}

func (jobCancel) Definition() mcp.Tool {
	return mcp.NewTool("job_cancel",
		mcp.WithDescription("Cancel a running job (requires confirm=true)."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job id")),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to actually cancel the job")),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

func (jobCancel) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("job_id")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		// Hard gate: no argument assembly, no process, without explicit confirmation
		if !req.GetBool("confirm", false) {
			deps.Log.Info("refused job_cancel for %q without confirm", id)
			return mcp.NewToolResultError(refuseCancel), nil
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{
			Args: []string{"job", "cancel", id},
		})), nil
	}
}
