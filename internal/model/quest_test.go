package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankNames(t *testing.T) {
	assert.Equal(t, "E-Rank", RankE.String())
	assert.Equal(t, "National Level", RankNational.String())
	assert.Equal(t, "Shadow Monarch", RankShadowMonarch.String())
	assert.Equal(t, "Unknown", Rank(-1).String())
	assert.Equal(t, "Unknown", Rank(8).String())
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		in   string
		want Rank
		ok   bool
	}{
		{"C-Rank", RankC, true},
		{"c", RankC, true},
		{"S", RankS, true},
		{"shadow monarch", RankShadowMonarch, true},
		{"National Level", RankNational, true},
		{"Z", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRank(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRankForXP(t *testing.T) {
	tests := []struct {
		xp   uint32
		want Rank
	}{
		{0, RankE},
		{999, RankE},
		{1000, RankD},
		{2999, RankD},
		{3000, RankC},
		{15000, RankA},
		{99999, RankNational},
		{100000, RankShadowMonarch},
		{^uint32(0), RankShadowMonarch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestNewHunter(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 678, time.UTC)
	h := NewHunter("Jin", now)

	assert.Equal(t, "Jin", h.Name)
	assert.Equal(t, DefaultTitle, h.Title)
	assert.Equal(t, RankE, h.Rank)
	assert.Equal(t, Stats{1, 1, 1, 1, 1, 1}, h.Stats)
	assert.Equal(t, uint32(1), h.CurrentDay)
	assert.Equal(t, uint32(1000), h.XPToNextRank)
	assert.Equal(t, uint32(1), h.CurrentStreak)
	assert.Equal(t, uint32(1), h.LongestStreak)
	assert.True(t, h.ProtocolStart.Equal(now.Truncate(time.Second)))
	assert.Equal(t, h.ProtocolStart, h.LastActivity)
}

func TestNewHunterTruncatesName(t *testing.T) {
	h := NewHunter(strings.Repeat("é", 40), time.Now())
	assert.LessOrEqual(t, len(h.Name), MaxNameLength-1)
	assert.Equal(t, strings.Repeat("é", 31), h.Name)
}

func TestQuestListAddAndFind(t *testing.T) {
	l := NewQuestList()
	require.NoError(t, l.Add(NewQuest(1, "First Blood", "", QuestDaily, SeasonFoundation)))
	require.NoError(t, l.Add(NewQuest(2, "Memory Palace", "", QuestDaily, SeasonFoundation)))

	err := l.Add(NewQuest(1, "again", "", QuestSide, SeasonFoundation))
	require.ErrorIs(t, err, ErrDuplicateQuest)
	assert.Equal(t, 2, l.Len())

	q, err := l.Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Memory Palace", q.Name)

	_, err = l.Find(99)
	assert.ErrorIs(t, err, ErrNotFound)

	ids := []uint32{}
	for _, q := range l.All() {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []uint32{1, 2}, ids)
}

func TestQuestListCapacity(t *testing.T) {
	l := NewQuestList()
	for i := 1; i <= MaxQuests; i++ {
		require.NoError(t, l.Add(NewQuest(uint32(i), "q", "", QuestDaily, SeasonFoundation)))
	}
	err := l.Add(NewQuest(MaxQuests+1, "overflow", "", QuestDaily, SeasonFoundation))
	require.ErrorIs(t, err, ErrQuestListFull)
	assert.Equal(t, MaxQuests, l.Len())
}

func TestQuestListAvailable(t *testing.T) {
	h := NewHunter("Jin", time.Now())
	l := NewQuestList()

	open := NewQuest(1, "open", "", QuestDaily, SeasonFoundation)
	open.Status = StatusAvailable
	ready := NewQuest(2, "ready", "", QuestDaily, SeasonFoundation)
	ready.Requirement = Requirement{MinDay: 1, MinRank: RankE}
	later := NewQuest(3, "later", "", QuestDaily, SeasonFoundation)
	later.Requirement = Requirement{MinDay: 3}
	ranked := NewQuest(4, "ranked", "", QuestBoss, SeasonFoundation)
	ranked.Requirement = Requirement{MinDay: 1, MinRank: RankC}
	active := NewQuest(5, "active", "", QuestDaily, SeasonFoundation)
	active.Status = StatusActive

	for _, q := range []*Quest{open, ready, later, ranked, active} {
		require.NoError(t, l.Add(q))
	}

	var got []uint32
	for _, q := range l.Available(h) {
		got = append(got, q.ID)
	}
	assert.Equal(t, []uint32{1, 2}, got)

	require.Len(t, l.Active(), 1)
	assert.Equal(t, uint32(5), l.Active()[0].ID)
	assert.Len(t, l.WithStatus(StatusLocked), 3)
}

func TestRequirementsIgnorePrerequisite(t *testing.T) {
	h := NewHunter("Jin", time.Now())
	q := NewQuest(2, "Memory Palace", "", QuestDaily, SeasonFoundation)
	q.Requirement = Requirement{MinDay: 1, MinRank: RankE, PrerequisiteID: 1}

	// Quest 1 was never completed (it is not even in a list); the check
	// still passes because prerequisites are stored but not enforced.
	assert.True(t, q.RequirementsMet(h))
}

func TestNameLookups(t *testing.T) {
	assert.Equal(t, "Shadow", QuestShadow.String())
	assert.Equal(t, "Unknown", QuestType(9).String())
	assert.Equal(t, "Failed", StatusFailed.String())
	assert.Equal(t, "Unknown", QuestStatus(-1).String())
	assert.Equal(t, "Systems", SeasonSystems.String())
	assert.Equal(t, "Unknown", Season(0).String())

	typ, ok := ParseQuestType("special")
	assert.True(t, ok)
	assert.Equal(t, QuestShadow, typ)
	st, ok := ParseQuestStatus("available")
	assert.True(t, ok)
	assert.Equal(t, StatusAvailable, st)
	season, ok := ParseSeason("architecture")
	assert.True(t, ok)
	assert.Equal(t, SeasonArchitecture, season)
}

func TestSeasonForDay(t *testing.T) {
	assert.Equal(t, SeasonFoundation, SeasonForDay(1))
	assert.Equal(t, SeasonFoundation, SeasonForDay(60))
	assert.Equal(t, SeasonArchitecture, SeasonForDay(61))
	assert.Equal(t, SeasonSystems, SeasonForDay(165))
	assert.Equal(t, SeasonSpecialization, SeasonForDay(210))
}

func TestEnumsMarshalAsNames(t *testing.T) {
	q := NewQuest(5, "Shadow Gate", "", QuestShadow, SeasonSystems)
	q.Requirement.MinRank = RankA

	b, err := json.Marshal(q)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"type":"Shadow"`)
	assert.Contains(t, s, `"status":"Locked"`)
	assert.Contains(t, s, `"season":"Systems"`)
	assert.Contains(t, s, `"min_rank":"A-Rank"`)
}
