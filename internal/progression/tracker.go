// Package progression applies XP, stat and streak updates to a hunter and
// drives the quest lifecycle.
//
// Quest lifecycle:
//
//	Locked --Unlock--> Available --Accept--> Active --Complete--> Completed
//	                                           |  ^
//	                                        Fail  Retry
//	                                           v  |
//	                                          Failed
//
// Every transition is legal from exactly one state. An illegal call returns
// ErrIllegalTransition and leaves the quest and hunter untouched.
package progression

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rcliao/hunter-protocol/internal/model"
)

var (
	ErrIllegalTransition  = errors.New("illegal quest transition")
	ErrRequirementsNotMet = errors.New("quest requirements not met")
)

const (
	streakKeepWindow  = 24 * time.Hour
	streakBreakWindow = 48 * time.Hour
)

// Tracker applies progression rules using its clock for every timestamp.
type Tracker struct {
	now func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a Tracker using the wall clock unless overridden.
func New(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) clock() time.Time {
	return model.Timestamp(t.now())
}

// Now returns the tracker's current time at save-file resolution.
func (t *Tracker) Now() time.Time {
	return t.clock()
}

// AddXP adds amount to the hunter's total and advances rank through every
// threshold the new total crosses. It reports whether any rank-up happened.
// A zero amount is rejected without touching the hunter.
func (t *Tracker) AddXP(h *model.Hunter, amount uint32) (bool, error) {
	if h == nil || amount == 0 {
		return false, model.ErrInvalidArgument
	}
	if !h.Rank.Valid() {
		return false, fmt.Errorf("rank %d: %w", h.Rank, model.ErrInvalidArgument)
	}

	if amount > math.MaxUint32-h.TotalXP {
		h.TotalXP = math.MaxUint32
	} else {
		h.TotalXP += amount
	}

	rankedUp := false
	for h.Rank < model.MaxRank && h.TotalXP >= model.XPThresholds[h.Rank+1] {
		h.Rank++
		rankedUp = true
	}

	if h.Rank < model.MaxRank {
		h.XPToNextRank = model.XPThresholds[h.Rank+1]
	} else {
		h.XPToNextRank = h.TotalXP
	}
	return rankedUp, nil
}

// AddStats adds bonus to the hunter's stats element-wise. No caps apply.
func (t *Tracker) AddStats(h *model.Hunter, bonus model.Stats) error {
	if h == nil {
		return model.ErrInvalidArgument
	}
	h.Stats = h.Stats.Add(bonus)
	return nil
}

// UpdateStreak compares the time since the last activity against a sliding
// window: more than 48h resets the streak to 1, more than 24h extends it,
// anything shorter leaves it alone. Last activity is refreshed in every case.
func (t *Tracker) UpdateStreak(h *model.Hunter) uint32 {
	if h == nil {
		return 0
	}
	now := t.clock()
	elapsed := now.Sub(h.LastActivity)

	switch {
	case elapsed > streakBreakWindow:
		h.CurrentStreak = 1
	case elapsed > streakKeepWindow:
		h.CurrentStreak++
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
	}

	h.LastActivity = now
	return h.CurrentStreak
}

// SyncDay sets the protocol day from the time elapsed since the protocol
// started. The day never moves backwards.
func (t *Tracker) SyncDay(h *model.Hunter) uint32 {
	if h == nil {
		return 0
	}
	elapsed := t.clock().Sub(h.ProtocolStart)
	if elapsed < 0 {
		return h.CurrentDay
	}
	day := uint32(elapsed/(24*time.Hour)) + 1
	if day > h.CurrentDay {
		h.CurrentDay = day
	}
	return h.CurrentDay
}

// CanUnlock reports whether a quest's day and rank requirements are met.
// The prerequisite quest id is not checked.
func (t *Tracker) CanUnlock(q *model.Quest, h *model.Hunter) bool {
	return q.RequirementsMet(h)
}

// Unlock moves a Locked quest to Available when its requirements are met.
func (t *Tracker) Unlock(q *model.Quest, h *model.Hunter) error {
	if q == nil || h == nil {
		return model.ErrInvalidArgument
	}
	if q.Status != model.StatusLocked {
		return illegal(q, "unlock")
	}
	if !t.CanUnlock(q, h) {
		return fmt.Errorf("unlock quest %d: %w", q.ID, ErrRequirementsNotMet)
	}
	q.Status = model.StatusAvailable
	return nil
}

// Accept starts an Available quest.
func (t *Tracker) Accept(q *model.Quest) error {
	if q == nil {
		return model.ErrInvalidArgument
	}
	if q.Status != model.StatusAvailable {
		return illegal(q, "accept")
	}
	q.Status = model.StatusActive
	q.StartedAt = t.clock()
	q.Attempts++
	return nil
}

// Completion describes what completing a quest granted.
type Completion struct {
	XP       uint32     `json:"xp"`
	RankedUp bool       `json:"ranked_up"`
	OldRank  model.Rank `json:"old_rank"`
	NewRank  model.Rank `json:"new_rank"`
	Streak   uint32     `json:"streak"`
}

// Complete finishes an Active quest and grants its reward: XP, stat bonus,
// the completed-quest counter and a streak update. An illegal call grants
// nothing.
func (t *Tracker) Complete(q *model.Quest, h *model.Hunter) (Completion, error) {
	if q == nil || h == nil {
		return Completion{}, model.ErrInvalidArgument
	}
	if q.Status != model.StatusActive {
		return Completion{}, illegal(q, "complete")
	}
	if !h.Rank.Valid() {
		return Completion{}, fmt.Errorf("complete quest %d: rank %d: %w", q.ID, h.Rank, model.ErrInvalidArgument)
	}

	c := Completion{OldRank: h.Rank}
	if q.Reward.XP > 0 {
		rankedUp, err := t.AddXP(h, q.Reward.XP)
		if err != nil {
			return Completion{}, fmt.Errorf("complete quest %d: %w", q.ID, err)
		}
		c.RankedUp = rankedUp
	}
	if err := t.AddStats(h, q.Reward.StatBonus); err != nil {
		return Completion{}, fmt.Errorf("complete quest %d: %w", q.ID, err)
	}
	q.Status = model.StatusCompleted
	q.CompletedAt = t.clock()
	h.QuestsCompleted++
	c.Streak = t.UpdateStreak(h)

	c.XP = q.Reward.XP
	c.NewRank = h.Rank
	return c, nil
}

// Fail marks an Active quest as Failed.
func (t *Tracker) Fail(q *model.Quest) error {
	if q == nil {
		return model.ErrInvalidArgument
	}
	if q.Status != model.StatusActive {
		return illegal(q, "fail")
	}
	q.Status = model.StatusFailed
	return nil
}

// Retry restarts a Failed quest.
func (t *Tracker) Retry(q *model.Quest) error {
	if q == nil {
		return model.ErrInvalidArgument
	}
	if q.Status != model.StatusFailed {
		return illegal(q, "retry")
	}
	q.Status = model.StatusActive
	q.StartedAt = t.clock()
	q.Attempts++
	return nil
}

func illegal(q *model.Quest, op string) error {
	return fmt.Errorf("%s quest %d from %s: %w", op, q.ID, q.Status, ErrIllegalTransition)
}
