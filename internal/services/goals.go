package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/storage"
)

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrBlankTitle      = errors.New("title must not be empty")
	ErrInvalidCategory = errors.New("unknown category")
	ErrInvalidProgress = errors.New("progress must be 0-100 in steps of 5")
	ErrNotLoaded       = errors.New("goals have not been loaded from storage")
)

// GoalService owns the in-memory goal collection for the running process and
// writes the full list back to the LocalStore after every mutation. A single
// mutex serialises mutations, so concurrent requests cannot clobber each
// other's writes. A mutation only reaches memory once its save succeeded, and
// nothing is saved until Init has read the stored collection.
type GoalService struct {
	mu     sync.Mutex
	store  *storage.LocalStore
	goals  []models.Goal
	loaded bool
	now    func() time.Time
	log    *zap.Logger
}

func NewGoalService(store *storage.LocalStore, log *zap.Logger) *GoalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalService{
		store: store,
		goals: []models.Goal{},
		now:   models.Now,
		log:   log,
	}
}

// Init loads the stored collection. An unavailable store is tolerated, and a
// corrupt blob is moved aside first so it survives the next write; both start
// empty. A backend read failure is returned and leaves the service unloaded,
// so the stored blob is never overwritten with a collection it did not come
// from. With seed set, an empty collection is filled with the sample goals.
func (s *GoalService) Init(seed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals, err := s.store.Load()
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrUnavailable):
		s.log.Warn("no durable storage, goals will not persist")
	case errors.Is(err, storage.ErrCorrupt):
		s.log.Warn("stored goals are corrupt, starting empty", zap.Error(err))
		if qerr := s.store.QuarantineCorrupt(); qerr != nil {
			return qerr
		}
	default:
		s.log.Error("loading goals failed", zap.Error(err))
		return err
	}

	s.goals = goals
	s.loaded = true
	if len(s.goals) == 0 && seed {
		if err := s.commit(SampleGoals(s.now())); err != nil {
			return err
		}
		s.log.Info("seeded sample goals", zap.Int("count", len(s.goals)))
		return nil
	}

	s.log.Info("goals loaded", zap.Int("count", len(s.goals)))
	return nil
}

type ListFilter struct {
	Category string
	Query    string
}

// List returns goals in collection order, filtered by category ("" or "all"
// match everything) and a case-insensitive title/description query.
func (s *GoalService) List(filter ListFilter) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if filter.Category != "" && filter.Category != models.CategoryAll && string(g.Category) != filter.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(g.Title), q) && !strings.Contains(strings.ToLower(g.Description), q) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// Snapshot returns a copy of the full collection in order.
func (s *GoalService) Snapshot() []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Goal(nil), s.goals...)
}

func (s *GoalService) Get(id uuid.UUID) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Goal{}, ErrGoalNotFound
	}
	return s.goals[i], nil
}

func (s *GoalService) Create(req models.CreateGoalRequest) (models.Goal, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Goal{}, ErrBlankTitle
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		return models.Goal{}, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goal := models.NewGoal(req.Title, req.Description, category, s.now())
	if err := s.commit(append(s.copyGoals(), goal)); err != nil {
		return models.Goal{}, err
	}
	s.log.Info("goal added", zap.String("id", goal.ID.String()), zap.String("category", string(goal.Category)))
	return goal, nil
}

func (s *GoalService) Update(id uuid.UUID, req models.UpdateGoalRequest) (models.Goal, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return models.Goal{}, ErrBlankTitle
	}
	if req.Category != nil && !models.Category(*req.Category).Valid() {
		return models.Goal{}, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Goal{}, ErrGoalNotFound
	}
	next := s.copyGoals()
	next[i].Edit(req, s.now())
	if err := s.commit(next); err != nil {
		return models.Goal{}, err
	}
	return next[i], nil
}

// ProgressResult reports the updated goal and whether this change completed it.
type ProgressResult struct {
	Goal          models.Goal `json:"goal"`
	JustCompleted bool        `json:"justCompleted"`
}

func (s *GoalService) SetProgress(id uuid.UUID, progress int) (ProgressResult, error) {
	if !models.ValidProgress(progress) {
		return ProgressResult{}, ErrInvalidProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ProgressResult{}, ErrGoalNotFound
	}
	wasCompleted := s.goals[i].IsCompleted
	next := s.copyGoals()
	next[i].SetProgress(progress, s.now())
	if err := s.commit(next); err != nil {
		return ProgressResult{}, err
	}

	res := ProgressResult{Goal: next[i], JustCompleted: !wasCompleted && next[i].IsCompleted}
	if res.JustCompleted {
		s.log.Info("goal completed", zap.String("id", id.String()))
	}
	return res, nil
}

func (s *GoalService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrGoalNotFound
	}
	next := append(s.goals[:i:i], s.goals[i+1:]...)
	if err := s.commit(next); err != nil {
		return err
	}
	s.log.Info("goal deleted", zap.String("id", id.String()))
	return nil
}

// Replace swaps the whole collection, as a cloud pull does.
func (s *GoalService) Replace(goals []models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(append([]models.Goal{}, goals...))
}

func (s *GoalService) indexOf(id uuid.UUID) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// copyGoals returns a copy of the collection that a mutation can change
// without touching s.goals. Goal values hold only a CompletedAt pointer, which
// mutations replace rather than write through.
func (s *GoalService) copyGoals() []models.Goal {
	return append(make([]models.Goal, 0, len(s.goals)+1), s.goals...)
}

// commit writes next as the full collection and adopts it only once the write
// succeeded. Without durable storage the write is skipped, matching a browser
// without localStorage.
func (s *GoalService) commit(next []models.Goal) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	err := s.store.Save(next)
	if err != nil && !errors.Is(err, storage.ErrUnavailable) {
		s.log.Error("saving goals failed", zap.Error(err))
		return err
	}
	s.goals = next
	return nil
}
