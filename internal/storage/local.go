package storage

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/models"
)

const (
	GoalsKey        = "ny2025_goals"
	CorruptGoalsKey = GoalsKey + ".corrupt"
	RemoteURLKey    = "supabase_url"
	RemoteKeyKey    = "supabase_key"
)

// LocalStore persists the whole goal collection as one JSON blob under
// GoalsKey. Every write is a full replace. The Add/Update/Delete helpers are
// plain read-modify-write sequences and are not atomic across callers.
type LocalStore struct {
	kv  KeyValue
	log *zap.Logger
}

// NewLocalStore wraps kv. A nil kv yields a store that reports
// ErrUnavailable on every call.
func NewLocalStore(kv KeyValue, log *zap.Logger) *LocalStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalStore{kv: kv, log: log}
}

func (s *LocalStore) Available() bool {
	return s.kv != nil
}

// Load returns the stored collection. The returned slice is never nil, even
// when err is set, so callers that degrade to empty can ignore err.
func (s *LocalStore) Load() ([]models.Goal, error) {
	if !s.Available() {
		return []models.Goal{}, newError(KindUnavailable, "load", nil)
	}

	raw, ok, err := s.kv.GetItem(GoalsKey)
	if err != nil {
		return []models.Goal{}, s.backendErr("load", err)
	}
	if !ok || raw == "" {
		return []models.Goal{}, nil
	}

	var goals []models.Goal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		s.log.Warn("stored goals could not be decoded", zap.Int("bytes", len(raw)), zap.Error(err))
		return []models.Goal{}, newError(KindCorrupt, "load", err)
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, nil
}

// Save overwrites the stored blob with goals.
func (s *LocalStore) Save(goals []models.Goal) error {
	if !s.Available() {
		return newError(KindUnavailable, "save", nil)
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	b, err := json.Marshal(goals)
	if err != nil {
		return newError(KindBackend, "save", err)
	}
	if err := s.kv.SetItem(GoalsKey, string(b)); err != nil {
		return s.backendErr("save", err)
	}
	s.log.Debug("goals saved", zap.Int("count", len(goals)))
	return nil
}

func (s *LocalStore) Add(goal models.Goal) error {
	goals, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(goals, goal))
}

// Update replaces the stored goal with the same ID; unknown IDs are ignored.
func (s *LocalStore) Update(goal models.Goal) error {
	goals, err := s.Load()
	if err != nil {
		return err
	}
	for i := range goals {
		if goals[i].ID == goal.ID {
			goals[i] = goal
		}
	}
	return s.Save(goals)
}

func (s *LocalStore) Delete(id uuid.UUID) error {
	goals, err := s.Load()
	if err != nil {
		return err
	}
	kept := goals[:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	return s.Save(kept)
}

// QuarantineCorrupt moves an undecodable blob aside under CorruptGoalsKey so
// the next Save does not destroy it. It is a no-op when the blob decodes.
func (s *LocalStore) QuarantineCorrupt() error {
	if !s.Available() {
		return newError(KindUnavailable, "quarantine", nil)
	}

	raw, ok, err := s.kv.GetItem(GoalsKey)
	if err != nil {
		return s.backendErr("quarantine", err)
	}
	if !ok || raw == "" || s.decodes(raw) {
		return nil
	}

	if err := s.kv.SetItem(CorruptGoalsKey, raw); err != nil {
		return s.backendErr("quarantine", err)
	}
	if err := s.kv.RemoveItem(GoalsKey); err != nil {
		return s.backendErr("quarantine", err)
	}
	s.log.Warn("corrupt goals blob quarantined", zap.String("key", CorruptGoalsKey))
	return nil
}

func (s *LocalStore) decodes(raw string) bool {
	var goals []models.Goal
	return json.Unmarshal([]byte(raw), &goals) == nil
}

func (s *LocalStore) backendErr(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return newError(e.Kind, op, e.Err)
	}
	return newError(KindBackend, op, err)
}
