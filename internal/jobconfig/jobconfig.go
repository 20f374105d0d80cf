// Package jobconfig renders and parses tp.config.toml, the job description
// file consumed by `tp job push`.
package jobconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tensorpool/tensorpool-mcp/internal/errors"
)

// DefaultFilename is the config filename tp job push looks for.
const DefaultFilename = "tp.config.toml"

// Config describes one TensorPool job.
type Config struct {
	// InstanceType is the GPU instance type, e.g. "1xH100" or "8xB200".
	InstanceType string `toml:"instance_type"`
	// Commands are shell commands run sequentially on the instance.
	Commands []string `toml:"commands"`
	// Outputs are files/dirs/globs saved when the job finishes.
	Outputs []string `toml:"outputs"`
	// Ignore are paths/globs excluded from the upload.
	Ignore []string `toml:"ignore"`
}

// Validate checks the fields a job config can't do without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.InstanceType) == "" {
		return errors.New(errors.ErrConfig,
			"instance_type is required",
			`Use a value like "1xH100"`)
	}
	if len(c.Commands) == 0 {
		return errors.New(errors.ErrConfig,
			"commands must contain at least one command",
			`Add the commands the job should run, e.g. ["python train.py"]`)
	}
	return nil
}

// Render emits the config as TOML, one key per line, with string lists as
// bracketed, newline-separated, quoted entries. The layout is kept hand
// rendered (rather than using a TOML encoder, which writes arrays inline) so
// the generated file matches what tp's own docs show.
func (c *Config) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "instance_type = %q\n", c.InstanceType)
	fmt.Fprintf(&b, "commands = %s\n", renderList(c.Commands))
	fmt.Fprintf(&b, "outputs = %s\n", renderList(c.Outputs))
	fmt.Fprintf(&b, "ignore = %s\n", renderList(c.Ignore))
	return b.String()
}

func renderList(items []string) string {
	var b strings.Builder
	b.WriteString("[\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  %q,\n", item)
	}
	b.WriteString("]")
	return b.String()
}

// Write renders the config into dir/filename, creating dir if needed, and
// returns the absolute path of the written file. An empty filename uses
// DefaultFilename.
func (c *Config) Write(dir, filename string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if filename == "" {
		filename = DefaultFilename
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't resolve the workdir path: "+dir,
			"Pass an absolute path or a path relative to the server's cwd")
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create the workdir: "+abs,
			"Check permissions on the parent directory")
	}

	path := filepath.Join(abs, filename)
	if err := os.WriteFile(path, []byte(c.Render()), 0o644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check the directory is writable")
	}
	return path, nil
}

// Parse decodes TOML data into a Config.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Not a valid tp.config.toml",
			"Regenerate it with the job_write_config tool")
	}
	return cfg, nil
}

// Load reads and decodes a job config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't read job config: "+path,
			"Check the path, or generate the file with the job_write_config tool")
	}
	return Parse(data)
}
