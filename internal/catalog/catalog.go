// Package catalog loads quest definitions from YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/hunter-protocol/internal/model"
)

//go:embed quests.yaml
var defaultCatalog []byte

// Entry is one quest as written in a catalog file.
type Entry struct {
	ID           uint32      `yaml:"id"`
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Type         string      `yaml:"type"`
	Season       string      `yaml:"season"`
	Status       string      `yaml:"status"`
	DayDeadline  uint32      `yaml:"day_deadline"`
	Reward       Reward      `yaml:"reward"`
	Requirements Requirement `yaml:"requirements"`
}

type Reward struct {
	XP    uint32      `yaml:"xp"`
	Stats model.Stats `yaml:"stats"`
}

type Requirement struct {
	MinDay         uint32 `yaml:"min_day"`
	MinRank        string `yaml:"min_rank"`
	PrerequisiteID uint32 `yaml:"prerequisite_id"`
}

// Default returns the built-in starter quests.
func Default() ([]*model.Quest, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalog from path.
func LoadFile(path string) ([]*model.Quest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML list of quests. Unknown fields and names are errors.
func Parse(r io.Reader) ([]*model.Quest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var entries []Entry
	if err := dec.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	quests := make([]*model.Quest, 0, len(entries))
	for i, e := range entries {
		q, err := e.Quest()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		quests = append(quests, q)
	}
	return quests, nil
}

// Quest converts e into a model quest. Empty type, season and status default
// to daily, the season of MinDay, and locked.
func (e Entry) Quest() (*model.Quest, error) {
	if e.ID == 0 {
		return nil, fmt.Errorf("id must be non-zero: %w", model.ErrInvalidArgument)
	}
	if e.Name == "" {
		return nil, fmt.Errorf("quest %d: name required: %w", e.ID, model.ErrInvalidArgument)
	}

	typ := model.QuestDaily
	if e.Type != "" {
		t, ok := model.ParseQuestType(e.Type)
		if !ok {
			return nil, fmt.Errorf("quest %d: unknown type %q: %w", e.ID, e.Type, model.ErrInvalidArgument)
		}
		typ = t
	}

	season := model.SeasonForDay(e.Requirements.MinDay)
	if e.Season != "" {
		s, ok := model.ParseSeason(e.Season)
		if !ok {
			return nil, fmt.Errorf("quest %d: unknown season %q: %w", e.ID, e.Season, model.ErrInvalidArgument)
		}
		season = s
	}

	status := model.StatusLocked
	if e.Status != "" {
		s, ok := model.ParseQuestStatus(e.Status)
		if !ok {
			return nil, fmt.Errorf("quest %d: unknown status %q: %w", e.ID, e.Status, model.ErrInvalidArgument)
		}
		status = s
	}

	minRank := model.RankE
	if e.Requirements.MinRank != "" {
		r, ok := model.ParseRank(e.Requirements.MinRank)
		if !ok {
			return nil, fmt.Errorf("quest %d: unknown rank %q: %w", e.ID, e.Requirements.MinRank, model.ErrInvalidArgument)
		}
		minRank = r
	}

	q := model.NewQuest(e.ID, e.Name, e.Description, typ, season)
	q.Status = status
	q.DayDeadline = e.DayDeadline
	q.Reward = model.Reward{XP: e.Reward.XP, StatBonus: e.Reward.Stats}
	q.Requirement = model.Requirement{
		MinDay:         e.Requirements.MinDay,
		MinRank:        minRank,
		PrerequisiteID: e.Requirements.PrerequisiteID,
	}
	return q, nil
}

// Seed adds quests to list in order and stops at the first failure. It
// returns how many were added.
func Seed(list *model.QuestList, quests []*model.Quest) (int, error) {
	for i, q := range quests {
		if err := list.Add(q); err != nil {
			return i, fmt.Errorf("seed quest %d: %w", q.ID, err)
		}
	}
	return len(quests), nil
}
