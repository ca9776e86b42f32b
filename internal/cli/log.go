package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/hunter-protocol/internal/journal"
	"github.com/rcliao/hunter-protocol/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show journaled progression events",
		Run:   runLog,
	}

	cmd.Flags().String("kind", "", "Filter by kind: xp, rank_up, streak, quest_unlock, quest_accept, quest_complete, quest_fail, quest_retry")
	cmd.Flags().Uint32("quest", 0, "Filter by quest id")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("stats", false, "Show journal statistics instead of events")

	RootCmd.AddCommand(cmd)
}

func openJournal() (*journal.SQLiteStore, error) {
	if !cfg.Journal {
		return nil, errors.New("journal disabled (HUNTER_JOURNAL=false)")
	}
	path, err := cfg.JournalPath()
	if err != nil {
		return nil, err
	}
	return journal.Open(path)
}

func runLog(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	questID, _ := cmd.Flags().GetUint32("quest")
	limit, _ := cmd.Flags().GetInt("limit")
	stats, _ := cmd.Flags().GetBool("stats")

	if kind != "" && !model.ValidEventKinds[model.EventKind(kind)] {
		exitErr("log", fmt.Errorf("kind %q: %w", kind, model.ErrInvalidArgument))
	}

	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	if stats {
		st, err := j.Stats(cmd.Context())
		if err != nil {
			j.Close()
			exitErr("log stats", err)
		}
		printJSON(cmd, st)
		return
	}

	events, err := j.List(cmd.Context(), journal.ListParams{
		Kind:    model.EventKind(kind),
		QuestID: questID,
		Limit:   limit,
	})
	if err != nil {
		j.Close()
		exitErr("log", err)
	}
	if events == nil {
		events = []model.Event{}
	}

	printJSON(cmd, events)
}
