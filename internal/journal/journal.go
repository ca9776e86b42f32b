// Package journal records progression events in a SQLite database next to
// the save file. The save file stays the source of truth; the journal is a
// history of how the hunter got there.
package journal

import (
	"context"

	"github.com/rcliao/hunter-protocol/internal/model"
)

// FileName is the journal database name inside the save directory.
const FileName = "journal.db"

// RecordParams holds parameters for recording an event.
type RecordParams struct {
	Kind    model.EventKind
	QuestID uint32
	Amount  uint32
	Rank    string
	Day     uint32
	Detail  string
}

// ListParams holds parameters for listing events.
type ListParams struct {
	Kind    model.EventKind
	QuestID uint32
	Limit   int
}

// Journal defines the event log interface.
type Journal interface {
	// Record appends an event and returns it with its id and timestamp.
	Record(ctx context.Context, p RecordParams) (*model.Event, error)

	// List returns events newest first.
	List(ctx context.Context, p ListParams) ([]model.Event, error)

	// Stats summarizes the journal.
	Stats(ctx context.Context) (*Stats, error)

	// Close closes the journal.
	Close() error
}
