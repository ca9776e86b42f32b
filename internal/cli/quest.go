package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/hunter-protocol/internal/journal"
	"github.com/rcliao/hunter-protocol/internal/model"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "List and progress quests",
}

// transition is a quest subcommand that moves one quest through its lifecycle.
type transition struct {
	use   string
	short string
	apply func(ctx context.Context, s *session, q *model.Quest) (any, error)
}

var transitions = []transition{
	{
		use:   "unlock",
		short: "Unlock a locked quest whose day and rank requirements are met",
		apply: func(ctx context.Context, s *session, q *model.Quest) (any, error) {
			if err := s.tracker.Unlock(q, s.state.Hunter); err != nil {
				return nil, err
			}
			s.record(ctx, journal.RecordParams{Kind: model.EventQuestUnlock, QuestID: q.ID})
			return nil, nil
		},
	},
	{
		use:   "accept",
		short: "Start an available quest",
		apply: func(ctx context.Context, s *session, q *model.Quest) (any, error) {
			if err := s.tracker.Accept(q); err != nil {
				return nil, err
			}
			s.record(ctx, journal.RecordParams{Kind: model.EventQuestAccept, QuestID: q.ID, Amount: q.Attempts})
			return nil, nil
		},
	},
	{
		use:   "complete",
		short: "Complete an active quest and collect its reward",
		apply: func(ctx context.Context, s *session, q *model.Quest) (any, error) {
			c, err := s.tracker.Complete(q, s.state.Hunter)
			if err != nil {
				return nil, err
			}
			s.record(ctx, journal.RecordParams{Kind: model.EventQuestComplete, QuestID: q.ID, Amount: c.XP})
			s.recordXP(ctx, q.ID, c.XP, c.OldRank, q.Name)
			s.record(ctx, journal.RecordParams{Kind: model.EventStreak, QuestID: q.ID, Amount: c.Streak})
			return c, nil
		},
	},
	{
		use:   "fail",
		short: "Mark an active quest as failed",
		apply: func(ctx context.Context, s *session, q *model.Quest) (any, error) {
			if err := s.tracker.Fail(q); err != nil {
				return nil, err
			}
			s.record(ctx, journal.RecordParams{Kind: model.EventQuestFail, QuestID: q.ID, Amount: q.Attempts})
			return nil, nil
		},
	},
	{
		use:   "retry",
		short: "Restart a failed quest",
		apply: func(ctx context.Context, s *session, q *model.Quest) (any, error) {
			if err := s.tracker.Retry(q); err != nil {
				return nil, err
			}
			s.record(ctx, journal.RecordParams{Kind: model.EventQuestRetry, QuestID: q.ID, Amount: q.Attempts})
			return nil, nil
		},
	},
}

func init() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		Run:   runQuestList,
	}
	list.Flags().String("status", "", "Filter by status: locked, available, active, completed, failed")
	list.Flags().Bool("available", false, "Only quests the hunter can take now")
	questCmd.AddCommand(list)

	for _, t := range transitions {
		questCmd.AddCommand(t.command())
	}

	RootCmd.AddCommand(questCmd)
}

func (t transition) command() *cobra.Command {
	return &cobra.Command{
		Use:   t.use + " <id>",
		Short: t.short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseQuestID(args[0])
			if err != nil {
				exitErr(t.use, err)
			}

			s, err := openSession()
			if err != nil {
				exitErr("load", err)
			}
			defer s.close()

			q := s.quest(id)
			result, err := t.apply(cmd.Context(), s, q)
			if err != nil {
				s.close()
				exitErr(t.use, err)
			}
			s.save()

			out := map[string]any{"quest": q, "hunter": viewHunter(s.state.Hunter)}
			if result != nil {
				out["result"] = result
			}
			printJSON(cmd, out)
		},
	}
}

func runQuestList(cmd *cobra.Command, args []string) {
	statusStr, _ := cmd.Flags().GetString("status")
	available, _ := cmd.Flags().GetBool("available")

	s, err := openSession()
	if err != nil {
		exitErr("load", err)
	}
	defer s.close()
	s.flush()

	var quests []*model.Quest
	switch {
	case available:
		quests = s.state.Quests.Available(s.state.Hunter)
	case statusStr != "":
		status, ok := model.ParseQuestStatus(statusStr)
		if !ok {
			s.close()
			exitErr("quest list", fmt.Errorf("status %q: %w", statusStr, model.ErrInvalidArgument))
		}
		quests = s.state.Quests.WithStatus(status)
	default:
		quests = s.state.Quests.All()
	}
	if quests == nil {
		quests = []*model.Quest{}
	}

	printJSON(cmd, quests)
}

func parseQuestID(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("quest id %q: %w", arg, model.ErrInvalidArgument)
	}
	return uint32(id), nil
}
