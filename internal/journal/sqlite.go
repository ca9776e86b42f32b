package journal

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/hunter-protocol/internal/model"
)

// SQLiteStore implements Journal using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy io.Reader
	now     func() time.Time
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides time.Now for event timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// Open opens or creates a journal database at the given path.
func Open(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		path:    dbPath,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		quest_id   INTEGER NOT NULL DEFAULT 0,
		amount     INTEGER NOT NULL DEFAULT 0,
		rank       TEXT,
		day        INTEGER NOT NULL DEFAULT 0,
		detail     TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	CREATE INDEX IF NOT EXISTS idx_events_quest ON events(quest_id);
	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at DESC);
	`)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, p RecordParams) (*model.Event, error) {
	if !model.ValidEventKinds[p.Kind] {
		return nil, fmt.Errorf("event kind %q: %w", p.Kind, model.ErrInvalidArgument)
	}

	now := model.Timestamp(s.now())
	ev := &model.Event{
		ID:        s.newID(now),
		Kind:      p.Kind,
		QuestID:   p.QuestID,
		Amount:    p.Amount,
		Rank:      p.Rank,
		Day:       p.Day,
		Detail:    p.Detail,
		CreatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, kind, quest_id, amount, rank, day, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, string(ev.Kind), ev.QuestID, ev.Amount, nullable(ev.Rank), ev.Day,
		nullable(ev.Detail), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return ev, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Event, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1 = 1"}
	var args []interface{}
	if p.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(p.Kind))
	}
	if p.QuestID != 0 {
		where = append(where, "quest_id = ?")
		args = append(args, p.QuestID)
	}

	// ulids sort by creation time, so id breaks ties within a second.
	query := fmt.Sprintf(`
		SELECT id, kind, quest_id, amount, rank, day, detail, created_at
		FROM events
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row scanner) (model.Event, error) {
	var ev model.Event
	var kind, createdAt string
	var rank, detail sql.NullString

	err := row.Scan(&ev.ID, &kind, &ev.QuestID, &ev.Amount, &rank, &ev.Day, &detail, &createdAt)
	if err != nil {
		return ev, err
	}

	ev.Kind = model.EventKind(kind)
	ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	ev.CreatedAt = ev.CreatedAt.UTC()
	if rank.Valid {
		ev.Rank = rank.String
	}
	if detail.Valid {
		ev.Detail = detail.String
	}
	return ev, nil
}
