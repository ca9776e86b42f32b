// Package model defines the hunter, quest and save-state data types.
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength  = 64
	MaxTitleLength = 128

	// ProtocolDays is the planned length of the protocol.
	ProtocolDays = 210

	DefaultTitle = "Shadow Initiate"
)

var (
	// ErrInvalidArgument is returned for nil inputs and rejected values.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when a quest id is not in the list.
	ErrNotFound = errors.New("not found")
)

// Rank is the hunter's progression tier.
type Rank int32

const (
	RankE Rank = iota
	RankD
	RankC
	RankB
	RankA
	RankS
	RankNational
	RankShadowMonarch
)

// MaxRank is the terminal rank.
const MaxRank = RankShadowMonarch

var rankNames = [...]string{
	"E-Rank",
	"D-Rank",
	"C-Rank",
	"B-Rank",
	"A-Rank",
	"S-Rank",
	"National Level",
	"Shadow Monarch",
}

// XPThresholds holds the total XP needed to reach each rank, indexed by rank.
var XPThresholds = [...]uint32{
	0,
	1000,
	3000,
	7000,
	15000,
	30000,
	50000,
	100000,
}

func (r Rank) String() string {
	if r < RankE || r > MaxRank {
		return "Unknown"
	}
	return rankNames[r]
}

// Valid reports whether r is one of the defined ranks.
func (r Rank) Valid() bool {
	return r >= RankE && r <= MaxRank
}

// ParseRank maps a display name ("C-Rank") or a single letter ("c") to a Rank.
func ParseRank(s string) (Rank, bool) {
	for i, name := range rankNames {
		if strings.EqualFold(s, name) {
			return Rank(i), true
		}
	}
	if len(s) == 1 {
		if i := strings.Index("EDCBAS", strings.ToUpper(s)); i >= 0 {
			return Rank(i), true
		}
	}
	return 0, false
}

// RankForXP returns the highest rank whose threshold does not exceed xp.
func RankForXP(xp uint32) Rank {
	r := RankE
	for r < MaxRank && xp >= XPThresholds[r+1] {
		r++
	}
	return r
}

// Stats is the hunter's six-field stat vector. It doubles as a quest's stat bonus.
type Stats struct {
	Strength     int32 `json:"strength" yaml:"strength"`
	Intelligence int32 `json:"intelligence" yaml:"intelligence"`
	Systems      int32 `json:"systems" yaml:"systems"`
	GPU          int32 `json:"gpu" yaml:"gpu"`
	Security     int32 `json:"security" yaml:"security"`
	Endurance    int32 `json:"endurance" yaml:"endurance"`
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Strength:     s.Strength + o.Strength,
		Intelligence: s.Intelligence + o.Intelligence,
		Systems:      s.Systems + o.Systems,
		GPU:          s.GPU + o.GPU,
		Security:     s.Security + o.Security,
		Endurance:    s.Endurance + o.Endurance,
	}
}

// Hunter is the single tracked character.
type Hunter struct {
	Name              string    `json:"name"`
	Title             string    `json:"title"`
	Rank              Rank      `json:"rank"`
	Stats             Stats     `json:"stats"`
	CurrentDay        uint32    `json:"current_day"`
	TotalXP           uint32    `json:"total_xp"`
	XPToNextRank      uint32    `json:"xp_to_next_rank"`
	ProtocolStart     time.Time `json:"protocol_start"`
	LastActivity      time.Time `json:"last_activity"`
	CurrentStreak     uint32    `json:"current_streak"`
	LongestStreak     uint32    `json:"longest_streak"`
	QuestsCompleted   uint32    `json:"quests_completed"`
	ShadowQuestsFound uint32    `json:"shadow_quests_found"`
	Deaths            uint32    `json:"deaths"`
}

// NewHunter returns a day-one, E-Rank hunter. The name is truncated to fit
// the save format.
func NewHunter(name string, now time.Time) *Hunter {
	now = Timestamp(now)
	return &Hunter{
		Name:          Truncate(name, MaxNameLength-1),
		Title:         DefaultTitle,
		Rank:          RankE,
		Stats:         Stats{1, 1, 1, 1, 1, 1},
		CurrentDay:    1,
		XPToNextRank:  XPThresholds[RankD],
		ProtocolStart: now,
		LastActivity:  now,
		CurrentStreak: 1,
		LongestStreak: 1,
	}
}

// Timestamp normalizes t to the resolution stored in save files: whole
// seconds, UTC, no monotonic reading.
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Unix(t.Unix(), 0).UTC()
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
