package codec

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rcliao/hunter-protocol/internal/model"
)

// header is the fixed 16-byte file prefix.
type header struct {
	Magic    uint32
	Version  uint32
	Flags    uint32
	Checksum uint32
}

type statsRecord struct {
	Strength     int32
	Intelligence int32
	Systems      int32
	GPU          int32
	Security     int32
	Endurance    int32
}

// hunterRecord is the on-disk hunter layout. Text fields are NUL-padded.
// Blank fields mirror the alignment padding of the C-compatible layout.
type hunterRecord struct {
	Name              [model.MaxNameLength]byte
	Title             [model.MaxTitleLength]byte
	Rank              int32
	Stats             statsRecord
	CurrentDay        uint32
	TotalXP           uint32
	XPToNextRank      uint32
	ProtocolStart     int64
	LastActivity      int64
	CurrentStreak     uint32
	LongestStreak     uint32
	QuestsCompleted   uint32
	ShadowQuestsFound uint32
	Deaths            uint32
	_                 [4]byte // tail padding to 8-byte alignment
}

// questRecord is the on-disk quest layout.
type questRecord struct {
	ID             uint32
	Name           [model.MaxQuestName]byte
	Description    [model.MaxQuestDescription]byte
	Type           int32
	Status         int32
	Season         int32
	MinDay         uint32
	MinRank        int32
	PrerequisiteID uint32
	RewardXP       uint32
	StatBonus      statsRecord
	DayDeadline    uint32
	_              [4]byte // aligns StartedAt to 8 bytes
	StartedAt      int64
	CompletedAt    int64
	Attempts       uint32
	_              [4]byte
}

func toStatsRecord(s model.Stats) statsRecord {
	return statsRecord(s)
}

func fromStatsRecord(s statsRecord) model.Stats {
	return model.Stats(s)
}

func toHunterRecord(h *model.Hunter) (hunterRecord, error) {
	r := hunterRecord{
		Rank:              int32(h.Rank),
		Stats:             toStatsRecord(h.Stats),
		CurrentDay:        h.CurrentDay,
		TotalXP:           h.TotalXP,
		XPToNextRank:      h.XPToNextRank,
		ProtocolStart:     unixSeconds(h.ProtocolStart),
		LastActivity:      unixSeconds(h.LastActivity),
		CurrentStreak:     h.CurrentStreak,
		LongestStreak:     h.LongestStreak,
		QuestsCompleted:   h.QuestsCompleted,
		ShadowQuestsFound: h.ShadowQuestsFound,
		Deaths:            h.Deaths,
	}
	if err := putText(r.Name[:], h.Name, "hunter name"); err != nil {
		return r, err
	}
	if err := putText(r.Title[:], h.Title, "hunter title"); err != nil {
		return r, err
	}
	return r, nil
}

func fromHunterRecord(r *hunterRecord) *model.Hunter {
	return &model.Hunter{
		Name:              getText(r.Name[:]),
		Title:             getText(r.Title[:]),
		Rank:              model.Rank(r.Rank),
		Stats:             fromStatsRecord(r.Stats),
		CurrentDay:        r.CurrentDay,
		TotalXP:           r.TotalXP,
		XPToNextRank:      r.XPToNextRank,
		ProtocolStart:     fromUnixSeconds(r.ProtocolStart),
		LastActivity:      fromUnixSeconds(r.LastActivity),
		CurrentStreak:     r.CurrentStreak,
		LongestStreak:     r.LongestStreak,
		QuestsCompleted:   r.QuestsCompleted,
		ShadowQuestsFound: r.ShadowQuestsFound,
		Deaths:            r.Deaths,
	}
}

func toQuestRecord(q *model.Quest) (questRecord, error) {
	r := questRecord{
		ID:             q.ID,
		Type:           int32(q.Type),
		Status:         int32(q.Status),
		Season:         int32(q.Season),
		MinDay:         q.Requirement.MinDay,
		MinRank:        int32(q.Requirement.MinRank),
		PrerequisiteID: q.Requirement.PrerequisiteID,
		RewardXP:       q.Reward.XP,
		StatBonus:      toStatsRecord(q.Reward.StatBonus),
		DayDeadline:    q.DayDeadline,
		StartedAt:      unixSeconds(q.StartedAt),
		CompletedAt:    unixSeconds(q.CompletedAt),
		Attempts:       q.Attempts,
	}
	if err := putText(r.Name[:], q.Name, fmt.Sprintf("quest %d name", q.ID)); err != nil {
		return r, err
	}
	if err := putText(r.Description[:], q.Description, fmt.Sprintf("quest %d description", q.ID)); err != nil {
		return r, err
	}
	return r, nil
}

func fromQuestRecord(r *questRecord) *model.Quest {
	return &model.Quest{
		ID:          r.ID,
		Name:        getText(r.Name[:]),
		Description: getText(r.Description[:]),
		Type:        model.QuestType(r.Type),
		Status:      model.QuestStatus(r.Status),
		Season:      model.Season(r.Season),
		Requirement: model.Requirement{
			MinDay:         r.MinDay,
			MinRank:        model.Rank(r.MinRank),
			PrerequisiteID: r.PrerequisiteID,
		},
		Reward: model.Reward{
			XP:        r.RewardXP,
			StatBonus: fromStatsRecord(r.StatBonus),
		},
		DayDeadline: r.DayDeadline,
		StartedAt:   fromUnixSeconds(r.StartedAt),
		CompletedAt: fromUnixSeconds(r.CompletedAt),
		Attempts:    r.Attempts,
	}
}

// putText copies s into a NUL-terminated fixed field. s must leave room for
// the terminator and must not contain NUL itself.
func putText(dst []byte, s, field string) error {
	if len(s) > len(dst)-1 {
		return fmt.Errorf("%s: %d bytes exceeds %d: %w", field, len(s), len(dst)-1, model.ErrInvalidArgument)
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return fmt.Errorf("%s: contains NUL: %w", field, model.ErrInvalidArgument)
	}
	copy(dst, s)
	return nil
}

func getText(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// Timestamps are stored as Unix seconds; 0 means unset.
func unixSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnixSeconds(s int64) time.Time {
	if s == 0 {
		return time.Time{}
	}
	return time.Unix(s, 0).UTC()
}
