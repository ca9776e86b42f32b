// Package cli implements the hunter CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/hunter-protocol/internal/config"
)

var (
	homeFlag     string
	logLevelFlag string

	cfg    config.Config
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "hunter",
	Short: "Track a hunter through the 210-day protocol",
	Long: "A small CLI for the Hunter Protocol. One hunter, one save file, " +
		"quests that unlock, complete and fail. Output is JSON; warnings go to stderr.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "Home directory holding .hunter-protocol (default: $HOME)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default: $HUNTER_LOG_LEVEL or warn)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if homeFlag != "" {
		c.Home = homeFlag
	}
	if logLevelFlag != "" {
		c.LogLevel = logLevelFlag
	}

	l, err := c.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
