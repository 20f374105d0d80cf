package cli

import (
	"os"

	"github.com/tensorpool/tensorpool-mcp/internal/config"
	"github.com/tensorpool/tensorpool-mcp/internal/logger"
	"github.com/tensorpool/tensorpool-mcp/internal/server"
	"github.com/tensorpool/tensorpool-mcp/internal/tpcli"
)

// Serve flags. Each one, when set, overrides the corresponding config value.
var (
	flagConfig    string
	flagTransport string
	flagHTTPAddr  string
	flagTPBinary  string
	flagTimeout   int
)

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "",
		"Path to config file (default: ./tensorpool-mcp.yaml, then ~/.config/tensorpool-mcp/config.yaml)")
	rootCmd.Flags().StringVar(&flagTransport, "transport", "",
		"MCP transport: stdio or http")
	rootCmd.Flags().StringVar(&flagHTTPAddr, "http-addr", "",
		"Listen address for the http transport")
	rootCmd.Flags().StringVar(&flagTPBinary, "tp-binary", "",
		"Name or path of the tp executable")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0,
		"Per-invocation timeout in seconds")
}

// applyOverrides folds non-empty flag values into the loaded config.
func applyOverrides(cfg *config.Config) {
	if flagTransport != "" {
		cfg.Transport = flagTransport
	}
	if flagHTTPAddr != "" {
		cfg.HTTPAddr = flagHTTPAddr
	}
	if flagTPBinary != "" {
		cfg.TPBinary = flagTPBinary
	}
	if flagTimeout > 0 {
		cfg.TimeoutSeconds = flagTimeout
	}
}

func runServe() error {
	// .env first, so the credential check below sees it. Never overrides
	// variables that are already set.
	config.LoadDotenv()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.NewEnvLogger("[tensorpool-mcp]")

	// Startup warning only: each invocation re-checks, and the key may be
	// exported after the server starts.
	if _, ok := tpcli.BridgeCredential(os.Environ()); !ok {
		log.Warn("%s is not set; tool calls will fail until it is exported", tpcli.EnvAPIKey)
	}

	return server.New(cfg, version, log).Serve()
}
