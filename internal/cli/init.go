package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tensorpool/tensorpool-mcp/internal/config"
	"github.com/tensorpool/tensorpool-mcp/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Write a commented default config to ~/.config/tensorpool-mcp/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

const configHeader = `# tensorpool-mcp configuration
#
# Every field is optional; these are the defaults. Environment variables with
# the TPMCP_ prefix override file values (e.g. TPMCP_TRANSPORT=http).
# The TensorPool API key is NOT configured here: export TENSORPOOL_API_KEY
# (or TP_API_KEY) in the environment, or put it in a .env file next to where
# the server starts.
`

func runInit() error {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	return writeDefaultConfig(path, initForce)
}

// writeDefaultConfig renders the default config with a header comment and
// writes it to path, refusing to clobber an existing file unless forced.
func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Pass --force to overwrite it")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create config directory: "+filepath.Dir(path),
			"Check permissions on ~/.config")
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't render the default config",
			"This shouldn't happen - please report this bug!")
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write config file: "+path,
			"Check the directory is writable")
	}

	fmt.Println("Wrote", path)
	return nil
}
