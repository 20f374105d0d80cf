package tools

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tensorpool/tensorpool-mcp/internal/sshkey"
	"github.com/tensorpool/tensorpool-mcp/internal/tpcli"
)

// refuseDestroy is returned when cluster_destroy is called without confirm=true.
const refuseDestroy = "Refusing to destroy cluster: set confirm=true to proceed."

type clusterCreate struct{}

func (clusterCreate) Definition() mcp.Tool {
	return mcp.NewTool("cluster_create",
		mcp.WithDescription("Create a TensorPool GPU cluster using an SSH public key."),
		mcp.WithString("ssh_public_key",
			mcp.Required(),
			mcp.Description("OpenSSH public key text (single line), e.g. 'ssh-ed25519 AAAA... user@host'")),
		mcp.WithString("instance_type",
			mcp.Required(),
			mcp.Description("Instance type, e.g. 1xH100, 8xH200, 8xB200")),
		mcp.WithNumber("num_nodes",
			mcp.Description("Number of nodes (1 for single-node; >1 for multi-node types)")),
		mcp.WithString("name",
			mcp.Description("Optional cluster name")),
	)
}

func (clusterCreate) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawKey, err := req.RequireString("ssh_public_key")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		instanceType, err := req.RequireString("instance_type")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}

		// Validate before anything touches disk or spawns a process
		key, err := sshkey.Validate(rawKey)
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}

		tmp, err := sshkey.WriteTempKey(key, deps.Log)
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		// The key file lives exactly as long as this invocation, on every
		// exit path
		defer tmp.Remove()

		args := []string{"cluster", "create", "-i", tmp.Path(), "-t", instanceType}
		if n := req.GetInt("num_nodes", 1); n > 1 {
			args = append(args, "-n", strconv.Itoa(n))
		}
		if name := req.GetString("name", ""); name != "" {
			args = append(args, "--name", name)
		}

		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{Args: args})), nil
	}
}

type clusterList struct{}

func (clusterList) Definition() mcp.Tool {
	return mcp.NewTool("cluster_list",
		mcp.WithDescription("List your TensorPool clusters."),
		mcp.WithBoolean("org",
			mcp.Description("List organization clusters (if supported)")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (clusterList) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := []string{"cluster", "list"}
		if req.GetBool("org", false) {
			args = append(args, "--org")
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{Args: args})), nil
	}
}

type clusterInfo struct{}

func (clusterInfo) Definition() mcp.Tool {
	return mcp.NewTool("cluster_info",
		mcp.WithDescription("Get info for a TensorPool cluster by id."),
		mcp.WithString("cluster_id",
			mcp.Required(),
			mcp.Description("Cluster id")),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func (clusterInfo) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("cluster_id")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{
			Args: []string{"cluster", "info", id},
		})), nil
	}
}

type clusterDestroy struct{}

func (clusterDestroy) Definition() mcp.Tool {
	return mcp.NewTool("cluster_destroy",
		mcp.WithDescription("Destroy a TensorPool cluster by id (requires confirm=true)."),
		mcp.WithString("cluster_id",
			mcp.Required(),
			mcp.Description("Cluster id")),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true to actually destroy the cluster")),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

func (clusterDestroy) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("cluster_id")
		if err != nil {
			return mcp.NewToolResultError(errorText(err)), nil
		}
		// Hard gate: no argument assembly, no process, without explicit confirmation
		if !req.GetBool("confirm", false) {
			deps.Log.Info("refused cluster_destroy for %q without confirm", id)
			return mcp.NewToolResultError(refuseDestroy), nil
		}
		return runResult(deps.Runner.Run(ctx, tpcli.Invocation{
			Args: []string{"cluster", "destroy", id, "--no-input"},
		})), nil
	}
}
