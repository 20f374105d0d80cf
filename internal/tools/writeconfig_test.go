package tools

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorpool/tensorpool-mcp/internal/jobconfig"
)

func TestJobWriteConfig(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}

	res := callTool(t, jobWriteConfig{}, newDeps(runner), map[string]any{
		"workdir":       dir,
		"instance_type": "1xH100",
		"commands":      []any{"pip install -r requirements.txt", "python train.py"},
		"outputs":       []any{"checkpoints/"},
		"ignore":        []any{".venv"},
	})

	assert.False(t, res.IsError)
	assert.Empty(t, runner.calls, "writing a config never shells out")

	path := filepath.Join(dir, jobconfig.DefaultFilename)
	assert.Equal(t, "Wrote "+path, resultText(t, res))

	loaded, err := jobconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1xH100", loaded.InstanceType)
	assert.Equal(t, []string{"pip install -r requirements.txt", "python train.py"}, loaded.Commands)
	assert.Equal(t, []string{"checkpoints/"}, loaded.Outputs)
	assert.Equal(t, []string{".venv"}, loaded.Ignore)
}

func TestJobWriteConfig_CustomFilename(t *testing.T) {
	dir := t.TempDir()

	res := callTool(t, jobWriteConfig{}, newDeps(&fakeRunner{}), map[string]any{
		"workdir":       dir,
		"instance_type": "8xB200",
		"commands":      []any{"true"},
		"filename":      "experiment.toml",
	})

	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "experiment.toml")
}

func TestJobWriteConfig_CreatesNestedWorkdir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	res := callTool(t, jobWriteConfig{}, newDeps(&fakeRunner{}), map[string]any{
		"workdir":       dir,
		"instance_type": "1xH100",
		"commands":      []any{"true"},
	})

	assert.False(t, res.IsError)
	_, err := jobconfig.Load(filepath.Join(dir, jobconfig.DefaultFilename))
	assert.NoError(t, err)
}

func TestJobWriteConfig_RejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "no commands",
			args: map[string]any{"workdir": t.TempDir(), "instance_type": "1xH100"},
		},
		{
			name: "blank instance type",
			args: map[string]any{"workdir": t.TempDir(), "instance_type": "  ", "commands": []any{"true"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, jobWriteConfig{}, newDeps(&fakeRunner{}), tt.args)

			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), "ERROR")
		})
	}
}
