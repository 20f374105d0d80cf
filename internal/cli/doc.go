// Package cli implements the tensorpool-mcp command-line surface: the
// default serve behavior plus the init and version subcommands.
package cli
