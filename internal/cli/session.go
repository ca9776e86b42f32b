package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/hunter-protocol/internal/catalog"
	"github.com/rcliao/hunter-protocol/internal/journal"
	"github.com/rcliao/hunter-protocol/internal/model"
	"github.com/rcliao/hunter-protocol/internal/progression"
	"github.com/rcliao/hunter-protocol/internal/store"
)

const defaultHunterName = "Hunter"

// newTracker is swapped in tests to pin the clock.
var newTracker = func() *progression.Tracker { return progression.New() }

// session is one command's view of the save: the loaded (or fresh) state,
// the store it came from and the journal events go to. Storage failures are
// logged and the session carries on in memory.
type session struct {
	store   *store.FileStore
	journal journal.Journal
	tracker *progression.Tracker
	state   *model.State

	fresh bool
	dirty bool
}

func openSession() (*session, error) {
	s := &session{tracker: newTracker()}

	fs, err := store.New(cfg.Home, logger)
	if err != nil {
		logger.Warn("save disabled", zap.String("reason", store.Describe(err)))
	} else {
		s.store = fs
		if err := fs.Init(); err != nil {
			logger.Warn("could not initialize save system",
				zap.String("reason", store.Describe(err)), zap.Error(err))
		}
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	if before := s.state.Hunter.CurrentDay; s.tracker.SyncDay(s.state.Hunter) != before {
		s.dirty = true
	}

	s.openJournal()
	return s, nil
}

func (s *session) load() error {
	if s.store != nil && s.store.Exists() {
		st, err := s.store.Read()
		if err == nil {
			s.state = st
			return nil
		}
		logger.Warn("could not load save, starting fresh",
			zap.String("reason", store.Describe(err)), zap.Error(err))
	}

	st, err := freshState(defaultHunterName)
	if err != nil {
		return err
	}
	s.state = st
	s.fresh = true
	s.dirty = true
	return nil
}

// freshState returns a new hunter with the configured quest catalog.
func freshState(name string) (*model.State, error) {
	quests, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	st := model.NewState(model.NewHunter(name, newTracker().Now()))
	if _, err := catalog.Seed(st.Quests, quests); err != nil {
		return nil, err
	}
	return st, nil
}

func loadCatalog() ([]*model.Quest, error) {
	if cfg.Catalog != "" {
		return catalog.LoadFile(cfg.Catalog)
	}
	return catalog.Default()
}

func (s *session) openJournal() {
	if !cfg.Journal {
		return
	}
	path, err := cfg.JournalPath()
	if err != nil {
		return
	}
	j, err := journal.Open(path, journal.WithClock(s.tracker.Now))
	if err != nil {
		logger.Warn("journal unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	s.journal = j
}

// save writes the state. A failure is logged, not returned.
func (s *session) save() {
	if s.store == nil {
		logger.Warn("not saved: no save location")
		return
	}
	if err := s.store.Write(s.state); err != nil {
		logger.Warn("could not save", zap.String("reason", store.Describe(err)), zap.Error(err))
		return
	}
	s.dirty = false
}

// flush saves only if something changed since load.
func (s *session) flush() {
	if s.dirty {
		s.save()
	}
}

// record journals an event stamped with the hunter's current day.
func (s *session) record(ctx context.Context, p journal.RecordParams) {
	if s.journal == nil {
		return
	}
	if p.Day == 0 {
		p.Day = s.state.Hunter.CurrentDay
	}
	if _, err := s.journal.Record(ctx, p); err != nil {
		logger.Warn("journal record", zap.String("kind", string(p.Kind)), zap.Error(err))
	}
}

// recordXP journals an XP grant and any rank-up it caused.
func (s *session) recordXP(ctx context.Context, questID, amount uint32, from model.Rank, detail string) {
	if amount == 0 {
		return
	}
	s.record(ctx, journal.RecordParams{Kind: model.EventXP, QuestID: questID, Amount: amount, Detail: detail})
	if to := s.state.Hunter.Rank; to != from {
		s.record(ctx, journal.RecordParams{
			Kind:   model.EventRankUp,
			Rank:   to.String(),
			Detail: from.String() + " -> " + to.String(),
		})
	}
}

func (s *session) close() {
	if s.journal != nil {
		s.journal.Close()
	}
}

func (s *session) quest(id uint32) *model.Quest {
	q, err := s.state.Quests.Find(id)
	if err != nil {
		s.close()
		exitErr("quest", err)
	}
	return q
}
