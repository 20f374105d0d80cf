package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorpool/tensorpool-mcp/internal/config"
	"github.com/tensorpool/tensorpool-mcp/internal/logger"
)

func TestNew(t *testing.T) {
	cfg := config.Default()

	srv := New(cfg, "test", logger.Noop())

	require.NotNil(t, srv)
	assert.NotNil(t, srv.mcp)
	assert.Equal(t, cfg, srv.cfg)
}

func TestNew_NilLogger(t *testing.T) {
	srv := New(config.Default(), "test", nil)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.log)
}
