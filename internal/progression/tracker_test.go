package progression

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/hunter-protocol/internal/model"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(t *testing.T) (*Tracker, *fakeClock, *model.Hunter) {
	t.Helper()
	clock := &fakeClock{t: epoch}
	return New(WithClock(clock.Now)), clock, model.NewHunter("Jin", epoch)
}

func TestAddXPCrossesOneRank(t *testing.T) {
	tr, _, h := newTestTracker(t)
	h.TotalXP = 950

	rankedUp, err := tr.AddXP(h, 100)
	require.NoError(t, err)
	assert.True(t, rankedUp)
	assert.Equal(t, uint32(1050), h.TotalXP)
	assert.Equal(t, model.RankD, h.Rank)
	assert.Equal(t, uint32(3000), h.XPToNextRank)
}

func TestAddXPWithoutRankUp(t *testing.T) {
	tr, _, h := newTestTracker(t)

	rankedUp, err := tr.AddXP(h, 50)
	require.NoError(t, err)
	assert.False(t, rankedUp)
	assert.Equal(t, model.RankE, h.Rank)
	assert.Equal(t, uint32(1000), h.XPToNextRank)
}

func TestAddXPZeroRejected(t *testing.T) {
	tr, _, h := newTestTracker(t)
	before := *h

	rankedUp, err := tr.AddXP(h, 0)
	require.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.False(t, rankedUp)
	assert.Equal(t, before, *h)
}

func TestAddXPRankOutOfRange(t *testing.T) {
	tr, _, h := newTestTracker(t)

	for _, rank := range []model.Rank{-5, -1, model.MaxRank + 1} {
		h.Rank = rank
		before := *h
		var rankedUp bool
		var err error
		require.NotPanics(t, func() { rankedUp, err = tr.AddXP(h, 10) })
		assert.ErrorIs(t, err, model.ErrInvalidArgument, "rank %d", rank)
		assert.False(t, rankedUp)
		assert.Equal(t, before, *h)
	}
}

func TestAddXPNilHunter(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, err := tr.AddXP(nil, 10)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestAddXPCrossesSeveralRanks(t *testing.T) {
	tr, _, h := newTestTracker(t)

	rankedUp, err := tr.AddXP(h, 16000)
	require.NoError(t, err)
	assert.True(t, rankedUp)
	assert.Equal(t, model.RankA, h.Rank)
	assert.Equal(t, uint32(30000), h.XPToNextRank)
}

func TestAddXPTerminalRank(t *testing.T) {
	tr, _, h := newTestTracker(t)

	_, err := tr.AddXP(h, 120000)
	require.NoError(t, err)
	assert.Equal(t, model.RankShadowMonarch, h.Rank)
	assert.Equal(t, uint32(120000), h.XPToNextRank)

	rankedUp, err := tr.AddXP(h, 5)
	require.NoError(t, err)
	assert.False(t, rankedUp)
	assert.Equal(t, model.RankShadowMonarch, h.Rank)
	assert.Equal(t, uint32(120005), h.XPToNextRank)
}

func TestAddXPSaturates(t *testing.T) {
	tr, _, h := newTestTracker(t)
	h.TotalXP = math.MaxUint32 - 10

	_, err := tr.AddXP(h, 100)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), h.TotalXP)
}

func TestAddXPMonotonic(t *testing.T) {
	tr, _, h := newTestTracker(t)
	awards := []uint32{1, 999, 0, 5000, 3, 0, 24000, 71000, 7, 1 << 30}

	prev := h.TotalXP
	for _, a := range awards {
		tr.AddXP(h, a)
		require.GreaterOrEqual(t, h.TotalXP, prev)
		assert.Equal(t, model.RankForXP(h.TotalXP), h.Rank, "total=%d", h.TotalXP)
		prev = h.TotalXP
	}
}

func TestAddStats(t *testing.T) {
	tr, _, h := newTestTracker(t)

	require.NoError(t, tr.AddStats(h, model.Stats{Strength: 2, GPU: 5, Endurance: -1}))
	assert.Equal(t, model.Stats{Strength: 3, Intelligence: 1, Systems: 1, GPU: 6, Security: 1, Endurance: 0}, h.Stats)
	assert.ErrorIs(t, tr.AddStats(nil, model.Stats{}), model.ErrInvalidArgument)
}

func TestUpdateStreak(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		streak      uint32
		longest     uint32
		wantStreak  uint32
		wantLongest uint32
	}{
		{"same day", 3 * time.Hour, 4, 6, 4, 6},
		{"exactly 24h", 24 * time.Hour, 4, 6, 4, 6},
		{"next day", 25 * time.Hour, 4, 6, 5, 6},
		{"new record", 30 * time.Hour, 6, 6, 7, 7},
		{"exactly 48h", 48 * time.Hour, 2, 6, 3, 6},
		{"broken", 48*time.Hour + time.Second, 9, 9, 1, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, clock, h := newTestTracker(t)
			h.CurrentStreak = tt.streak
			h.LongestStreak = tt.longest
			clock.Advance(tt.elapsed)

			got := tr.UpdateStreak(h)
			assert.Equal(t, tt.wantStreak, got)
			assert.Equal(t, tt.wantStreak, h.CurrentStreak)
			assert.Equal(t, tt.wantLongest, h.LongestStreak)
			assert.Equal(t, clock.Now(), h.LastActivity)
		})
	}
}

func TestSyncDay(t *testing.T) {
	tr, clock, h := newTestTracker(t)

	assert.Equal(t, uint32(1), tr.SyncDay(h))
	clock.Advance(23 * time.Hour)
	assert.Equal(t, uint32(1), tr.SyncDay(h))
	clock.Advance(2 * time.Hour)
	assert.Equal(t, uint32(2), tr.SyncDay(h))

	h.CurrentDay = 40
	assert.Equal(t, uint32(40), tr.SyncDay(h), "day never moves backwards")
}

func newQuest(status model.QuestStatus) *model.Quest {
	q := model.NewQuest(7, "Array Awakening", "pointers", model.QuestDaily, model.SeasonFoundation)
	q.Reward = model.Reward{XP: 100, StatBonus: model.Stats{Strength: 2}}
	q.Status = status
	return q
}

var allStatuses = []model.QuestStatus{
	model.StatusLocked,
	model.StatusAvailable,
	model.StatusActive,
	model.StatusCompleted,
	model.StatusFailed,
}

func TestTransitionLegality(t *testing.T) {
	type op struct {
		name  string
		from  model.QuestStatus
		to    model.QuestStatus
		apply func(*Tracker, *model.Quest, *model.Hunter) error
	}
	ops := []op{
		{"unlock", model.StatusLocked, model.StatusAvailable, func(tr *Tracker, q *model.Quest, h *model.Hunter) error { return tr.Unlock(q, h) }},
		{"accept", model.StatusAvailable, model.StatusActive, func(tr *Tracker, q *model.Quest, _ *model.Hunter) error { return tr.Accept(q) }},
		{"complete", model.StatusActive, model.StatusCompleted, func(tr *Tracker, q *model.Quest, h *model.Hunter) error {
			_, err := tr.Complete(q, h)
			return err
		}},
		{"fail", model.StatusActive, model.StatusFailed, func(tr *Tracker, q *model.Quest, _ *model.Hunter) error { return tr.Fail(q) }},
		{"retry", model.StatusFailed, model.StatusActive, func(tr *Tracker, q *model.Quest, _ *model.Hunter) error { return tr.Retry(q) }},
	}

	for _, o := range ops {
		for _, from := range allStatuses {
			t.Run(o.name+"/from "+from.String(), func(t *testing.T) {
				tr, _, h := newTestTracker(t)
				q := newQuest(from)
				qBefore, hBefore := *q, *h

				err := o.apply(tr, q, h)
				if from == o.from {
					require.NoError(t, err)
					assert.Equal(t, o.to, q.Status)
					return
				}
				require.ErrorIs(t, err, ErrIllegalTransition)
				assert.Equal(t, qBefore, *q)
				assert.Equal(t, hBefore, *h)
			})
		}
	}
}

func TestAcceptStampsStart(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	q := newQuest(model.StatusAvailable)
	clock.Advance(time.Hour)

	require.NoError(t, tr.Accept(q))
	assert.Equal(t, model.StatusActive, q.Status)
	assert.Equal(t, clock.Now(), q.StartedAt)
	assert.Equal(t, uint32(1), q.Attempts)
}

func TestCompleteGrantsReward(t *testing.T) {
	tr, clock, h := newTestTracker(t)
	h.TotalXP = 950
	q := newQuest(model.StatusActive)
	clock.Advance(26 * time.Hour)

	c, err := tr.Complete(q, h)
	require.NoError(t, err)

	assert.Equal(t, Completion{XP: 100, RankedUp: true, OldRank: model.RankE, NewRank: model.RankD, Streak: 2}, c)
	assert.Equal(t, model.StatusCompleted, q.Status)
	assert.Equal(t, clock.Now(), q.CompletedAt)
	assert.Equal(t, uint32(1050), h.TotalXP)
	assert.Equal(t, int32(3), h.Stats.Strength)
	assert.Equal(t, uint32(1), h.QuestsCompleted)
	assert.Equal(t, clock.Now(), h.LastActivity)
}

func TestCompleteZeroXPReward(t *testing.T) {
	tr, _, h := newTestTracker(t)
	q := newQuest(model.StatusActive)
	q.Reward.XP = 0

	c, err := tr.Complete(q, h)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), c.XP)
	assert.Equal(t, uint32(0), h.TotalXP)
	assert.Equal(t, uint32(1), h.QuestsCompleted)
}

func TestCompleteRankOutOfRangeGrantsNothing(t *testing.T) {
	tr, clock, h := newTestTracker(t)
	h.Rank = -5
	before := *h
	q := newQuest(model.StatusActive)
	clock.Advance(26 * time.Hour)

	c, err := tr.Complete(q, h)
	require.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Equal(t, Completion{}, c)
	assert.Equal(t, model.StatusActive, q.Status)
	assert.True(t, q.CompletedAt.IsZero())
	assert.Equal(t, before, *h)
}

func TestIllegalCompleteGrantsNothing(t *testing.T) {
	tr, _, h := newTestTracker(t)
	q := newQuest(model.StatusAvailable)

	c, err := tr.Complete(q, h)
	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, Completion{}, c)
	assert.Equal(t, uint32(0), h.TotalXP)
	assert.Equal(t, uint32(0), h.QuestsCompleted)
}

func TestFailThenRetry(t *testing.T) {
	tr, clock, _ := newTestTracker(t)
	q := newQuest(model.StatusAvailable)

	require.NoError(t, tr.Accept(q))
	require.NoError(t, tr.Fail(q))
	assert.Equal(t, model.StatusFailed, q.Status)

	clock.Advance(time.Hour)
	require.NoError(t, tr.Retry(q))
	assert.Equal(t, model.StatusActive, q.Status)
	assert.Equal(t, clock.Now(), q.StartedAt)
	assert.Equal(t, uint32(2), q.Attempts)
}

func TestUnlockRequirements(t *testing.T) {
	tr, _, h := newTestTracker(t)
	q := newQuest(model.StatusLocked)
	q.Requirement = model.Requirement{MinDay: 3, MinRank: model.RankE}

	require.ErrorIs(t, tr.Unlock(q, h), ErrRequirementsNotMet)
	assert.Equal(t, model.StatusLocked, q.Status)

	h.CurrentDay = 3
	require.NoError(t, tr.Unlock(q, h))
	assert.Equal(t, model.StatusAvailable, q.Status)
}

func TestUnlockIgnoresPrerequisite(t *testing.T) {
	tr, _, h := newTestTracker(t)
	q := newQuest(model.StatusLocked)
	q.Requirement = model.Requirement{MinDay: 1, PrerequisiteID: 42}

	// Known gap: quest 42 does not exist and was never completed, yet the
	// unlock succeeds because prerequisites are not checked.
	assert.True(t, tr.CanUnlock(q, h))
	require.NoError(t, tr.Unlock(q, h))
}

func TestNilArguments(t *testing.T) {
	tr, _, h := newTestTracker(t)
	assert.ErrorIs(t, tr.Accept(nil), model.ErrInvalidArgument)
	assert.ErrorIs(t, tr.Fail(nil), model.ErrInvalidArgument)
	assert.ErrorIs(t, tr.Retry(nil), model.ErrInvalidArgument)
	assert.ErrorIs(t, tr.Unlock(nil, h), model.ErrInvalidArgument)
	_, err := tr.Complete(newQuest(model.StatusActive), nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Equal(t, uint32(0), tr.UpdateStreak(nil))
	assert.False(t, tr.CanUnlock(nil, h))
}
