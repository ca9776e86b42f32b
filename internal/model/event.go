package model

import "time"

// EventKind names a journaled progression event.
type EventKind string

const (
	EventXP            EventKind = "xp"
	EventRankUp        EventKind = "rank_up"
	EventStreak        EventKind = "streak"
	EventQuestUnlock   EventKind = "quest_unlock"
	EventQuestAccept   EventKind = "quest_accept"
	EventQuestComplete EventKind = "quest_complete"
	EventQuestFail     EventKind = "quest_fail"
	EventQuestRetry    EventKind = "quest_retry"
)

// ValidEventKinds are the kinds the journal accepts.
var ValidEventKinds = map[EventKind]bool{
	EventXP:            true,
	EventRankUp:        true,
	EventStreak:        true,
	EventQuestUnlock:   true,
	EventQuestAccept:   true,
	EventQuestComplete: true,
	EventQuestFail:     true,
	EventQuestRetry:    true,
}

// Event is a journal entry.
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	QuestID   uint32    `json:"quest_id,omitempty"`
	Amount    uint32    `json:"amount,omitempty"`
	Rank      string    `json:"rank,omitempty"`
	Day       uint32    `json:"day"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
