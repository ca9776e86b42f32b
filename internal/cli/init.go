package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/hunter-protocol/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Start a new hunter",
		Long:  "Create a day-one E-Rank hunter seeded with the quest catalog and save it.",
		Run:   runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing save (the old one is kept as save.dat.bak)")

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	force, _ := cmd.Flags().GetBool("force")

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		name = defaultHunterName
	}

	fs, err := store.New(cfg.Home, logger)
	if err != nil {
		exitErr("init", err)
	}
	if fs.Exists() && !force {
		exitErr("init", errors.New("a save already exists (use --force to replace it)"))
	}

	st, err := freshState(name)
	if err != nil {
		exitErr("init", err)
	}

	saved := true
	if err := fs.Init(); err != nil {
		logger.Warn("could not initialize save system", zap.String("reason", store.Describe(err)), zap.Error(err))
	}
	if err := fs.Write(st); err != nil {
		logger.Warn("could not save", zap.String("reason", store.Describe(err)), zap.Error(err))
		saved = false
	}

	printJSON(cmd, map[string]any{
		"hunter": viewHunter(st.Hunter),
		"quests": summarize(st),
		"saved":  saved,
		"path":   fs.Path(),
	})
}
