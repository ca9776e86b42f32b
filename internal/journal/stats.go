package journal

import (
	"context"
	"os"
)

// Stats holds journal statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	TotalEvents int         `json:"total_events"`
	TotalXP     uint64      `json:"total_xp"`
	Kinds       []KindStats `json:"kinds"`
}

// KindStats holds per-kind counts.
type KindStats struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Stats returns journal statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&st.TotalEvents); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM events WHERE kind = ?`, "xp").Scan(&st.TotalXP); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) AS cnt
		FROM events
		GROUP BY kind ORDER BY cnt DESC, kind`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KindStats
		if err := rows.Scan(&k.Kind, &k.Count); err != nil {
			return st, err
		}
		st.Kinds = append(st.Kinds, k)
	}
	return st, rows.Err()
}
