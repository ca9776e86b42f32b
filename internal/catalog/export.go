package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/hunter-protocol/internal/model"
)

// FromQuest converts q back into its catalog form.
func FromQuest(q *model.Quest) Entry {
	return Entry{
		ID:          q.ID,
		Name:        q.Name,
		Description: q.Description,
		Type:        q.Type.String(),
		Season:      q.Season.String(),
		Status:      q.Status.String(),
		DayDeadline: q.DayDeadline,
		Reward:      Reward{XP: q.Reward.XP, Stats: q.Reward.StatBonus},
		Requirements: Requirement{
			MinDay:         q.Requirement.MinDay,
			MinRank:        q.Requirement.MinRank.String(),
			PrerequisiteID: q.Requirement.PrerequisiteID,
		},
	}
}

// Write encodes quests as a catalog that Parse accepts.
func Write(w io.Writer, quests []*model.Quest) error {
	entries := make([]Entry, 0, len(quests))
	for _, q := range quests {
		entries = append(entries, FromQuest(q))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
