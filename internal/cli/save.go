package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/hunter-protocol/internal/store"
)

func init() {
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Inspect or remove the save file",
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show save file location and size",
		Run:   runSaveInfo,
	}

	rm := &cobra.Command{
		Use:   "rm",
		Short: "Delete the save file (the backup is kept)",
		Run:   runSaveRm,
	}

	saveCmd.AddCommand(info, rm)
	RootCmd.AddCommand(saveCmd)
}

func runSaveInfo(cmd *cobra.Command, args []string) {
	fs, err := store.New(cfg.Home, logger)
	if err != nil {
		exitErr("save info", err)
	}

	out := map[string]any{"file": fs.Info()}
	if fs.Exists() {
		if _, err := fs.Read(); err != nil {
			out["valid"] = false
			out["problem"] = store.Describe(err)
		} else {
			out["valid"] = true
		}
	}
	printJSON(cmd, out)
}

func runSaveRm(cmd *cobra.Command, args []string) {
	fs, err := store.New(cfg.Home, logger)
	if err != nil {
		exitErr("save rm", err)
	}
	if err := fs.Delete(); err != nil {
		exitErr("save rm", err)
	}
	printJSON(cmd, map[string]any{"deleted": fs.Path()})
}
