// Package cmdutil holds the setup shared by every rhetor subcommand.
package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/app/common"
	"github.com/Lorak9904/RhetorAI/internal/config"
)

const (
	ConfigFlag  = "config"
	VerboseFlag = "verbose"
)

// Setup loads .env and the config file named by --config (or the default
// location) and builds the logger. --verbose forces a development logger at
// debug level.
func Setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path := stringFlag(cmd, ConfigFlag)
	if path == "" {
		path = config.DefaultConfigPath()
	}
	verbose := boolFlag(cmd, VerboseFlag)

	bootLevel := "warn"
	if verbose {
		bootLevel = "debug"
	}
	boot, err := common.NewLoggerWithLevel(verbose, bootLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	cfg, err := config.InitializeConfig(path, boot)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		return cfg, boot, nil
	}

	logger, err := common.NewLoggerWithLevel(cfg.Log.Development, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	return cfg, logger, nil
}

// ReadText returns the joined args, or the trimmed content of file when args
// is empty.
func ReadText(args []string, file string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file == "" {
		return "", fmt.Errorf("provide the text as arguments or with --file")
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func boolFlag(cmd *cobra.Command, name string) bool {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String() == "true"
	}
	return false
}
