package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxQuestName        = 128
	MaxQuestDescription = 512

	// MaxQuests is the capacity of a QuestList. Decoding enforces the same bound.
	MaxQuests = 256
)

var (
	ErrQuestListFull  = errors.New("quest list full")
	ErrDuplicateQuest = errors.New("duplicate quest id")
)

// QuestType is informational only; no behavior branches on it.
type QuestType int32

const (
	QuestDaily QuestType = iota
	QuestWeekly
	QuestShadow
	QuestBoss
	QuestSide
)

var questTypeNames = [...]string{"Daily", "Weekly", "Shadow", "Boss", "Side"}

func (t QuestType) String() string {
	if t < QuestDaily || t > QuestSide {
		return "Unknown"
	}
	return questTypeNames[t]
}

// ParseQuestType maps a type name, case-insensitively. "special" is accepted
// for Shadow.
func ParseQuestType(s string) (QuestType, bool) {
	if strings.EqualFold(s, "special") {
		return QuestShadow, true
	}
	for i, name := range questTypeNames {
		if strings.EqualFold(s, name) {
			return QuestType(i), true
		}
	}
	return 0, false
}

// QuestStatus is the lifecycle state of a quest.
type QuestStatus int32

const (
	StatusLocked QuestStatus = iota
	StatusAvailable
	StatusActive
	StatusCompleted
	StatusFailed
)

var questStatusNames = [...]string{"Locked", "Available", "Active", "Completed", "Failed"}

func (s QuestStatus) String() string {
	if s < StatusLocked || s > StatusFailed {
		return "Unknown"
	}
	return questStatusNames[s]
}

// ParseQuestStatus maps a status name, case-insensitively.
func ParseQuestStatus(s string) (QuestStatus, bool) {
	for i, name := range questStatusNames {
		if strings.EqualFold(s, name) {
			return QuestStatus(i), true
		}
	}
	return 0, false
}

// Season groups quests by protocol phase.
type Season int32

const (
	SeasonFoundation Season = iota + 1
	SeasonArchitecture
	SeasonSystems
	SeasonSpecialization
)

var seasonNames = map[Season]string{
	SeasonFoundation:     "Foundation",
	SeasonArchitecture:   "Architecture",
	SeasonSystems:        "Systems",
	SeasonSpecialization: "Specialization",
}

func (s Season) String() string {
	if name, ok := seasonNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseSeason maps a season name, case-insensitively.
func ParseSeason(s string) (Season, bool) {
	for season, name := range seasonNames {
		if strings.EqualFold(s, name) {
			return season, true
		}
	}
	return 0, false
}

// SeasonForDay returns the season a protocol day falls in.
func SeasonForDay(day uint32) Season {
	switch {
	case day <= 60:
		return SeasonFoundation
	case day <= 105:
		return SeasonArchitecture
	case day <= 165:
		return SeasonSystems
	default:
		return SeasonSpecialization
	}
}

// Requirement gates the Locked -> Available transition. PrerequisiteID is
// stored (0 = none) but the unlock check does not consult it.
type Requirement struct {
	MinDay         uint32 `json:"min_day"`
	MinRank        Rank   `json:"min_rank"`
	PrerequisiteID uint32 `json:"prerequisite_id,omitempty"`
}

// Reward is granted once, when a quest completes.
type Reward struct {
	XP        uint32 `json:"xp"`
	StatBonus Stats  `json:"stat_bonus"`
}

// Quest is a task with a lifecycle state, unlock requirements and a reward.
type Quest struct {
	ID          uint32      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Type        QuestType   `json:"type"`
	Status      QuestStatus `json:"status"`
	Season      Season      `json:"season"`
	Requirement Requirement `json:"requirement"`
	Reward      Reward      `json:"reward"`
	DayDeadline uint32      `json:"day_deadline,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Attempts    uint32      `json:"attempts"`
}

// NewQuest returns a Locked quest with name and description truncated to fit
// the save format.
func NewQuest(id uint32, name, desc string, typ QuestType, season Season) *Quest {
	return &Quest{
		ID:          id,
		Name:        Truncate(name, MaxQuestName-1),
		Description: Truncate(desc, MaxQuestDescription-1),
		Type:        typ,
		Status:      StatusLocked,
		Season:      season,
	}
}

// QuestList is an insertion-ordered, bounded sequence of quests. The zero
// value is an empty list.
type QuestList struct {
	quests []*Quest
}

// NewQuestList returns an empty list.
func NewQuestList() *QuestList {
	return &QuestList{}
}

// Add appends q. It fails at capacity or when q's id is already present.
func (l *QuestList) Add(q *Quest) error {
	if l == nil || q == nil {
		return ErrInvalidArgument
	}
	if len(l.quests) >= MaxQuests {
		return fmt.Errorf("add quest %d: %w", q.ID, ErrQuestListFull)
	}
	for _, existing := range l.quests {
		if existing.ID == q.ID {
			return fmt.Errorf("add quest %d: %w", q.ID, ErrDuplicateQuest)
		}
	}
	l.quests = append(l.quests, q)
	return nil
}

// Len returns the number of quests.
func (l *QuestList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.quests)
}

// All returns the quests in insertion order. The slice is a copy; the quests
// are shared.
func (l *QuestList) All() []*Quest {
	if l == nil {
		return nil
	}
	out := make([]*Quest, len(l.quests))
	copy(out, l.quests)
	return out
}

// Find returns the quest with the given id.
func (l *QuestList) Find(id uint32) (*Quest, error) {
	if l != nil {
		for _, q := range l.quests {
			if q.ID == id {
				return q, nil
			}
		}
	}
	return nil, fmt.Errorf("quest %d: %w", id, ErrNotFound)
}

// Active returns the quests currently in progress.
func (l *QuestList) Active() []*Quest {
	return l.filter(func(q *Quest) bool { return q.Status == StatusActive })
}

// WithStatus returns the quests in the given state.
func (l *QuestList) WithStatus(s QuestStatus) []*Quest {
	return l.filter(func(q *Quest) bool { return q.Status == s })
}

// Available returns quests the hunter can take: already Available ones plus
// Locked ones whose requirements are met. Prerequisite quests are not checked.
func (l *QuestList) Available(h *Hunter) []*Quest {
	return l.filter(func(q *Quest) bool {
		return q.Status == StatusAvailable || (q.Status == StatusLocked && q.RequirementsMet(h))
	})
}

// RequirementsMet reports whether h satisfies q's day and rank requirements.
// PrerequisiteID is deliberately not consulted.
func (q *Quest) RequirementsMet(h *Hunter) bool {
	if q == nil || h == nil {
		return false
	}
	if h.CurrentDay < q.Requirement.MinDay {
		return false
	}
	return h.Rank >= q.Requirement.MinRank
}

func (l *QuestList) filter(keep func(*Quest) bool) []*Quest {
	if l == nil {
		return nil
	}
	var out []*Quest
	for _, q := range l.quests {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// State is everything a save file holds. Callers own it and pass it
// explicitly to the tracker and the store.
type State struct {
	Hunter *Hunter
	Quests *QuestList
}

// NewState pairs a hunter with an empty quest list.
func NewState(h *Hunter) *State {
	return &State{Hunter: h, Quests: NewQuestList()}
}
