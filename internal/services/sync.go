package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/remote"
)

var ErrRemoteNotConfigured = remote.ErrNotConfigured

// Remote is the mirror a SyncService pushes to and pulls from.
type Remote interface {
	IsConfigured() bool
	FetchAll(ctx context.Context) ([]models.Goal, error)
	Upsert(ctx context.Context, goal models.Goal) error
	Remove(ctx context.Context, id uuid.UUID) error
}

// SyncService runs the manual bulk transfers between the local collection and
// the remote mirror. There is no merge: push copies goals up one at a time,
// pull overwrites the local collection.
type SyncService struct {
	goals  *GoalService
	remote Remote
	log    *zap.Logger
}

func NewSyncService(goals *GoalService, remote Remote, log *zap.Logger) *SyncService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncService{goals: goals, remote: remote, log: log}
}

type PushOutcome struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Pushed bool      `json:"pushed"`
	Error  string    `json:"error,omitempty"`
}

// PushReport lists every goal the push attempted, in order. Goals after the
// first failure are not attempted and only counted in Skipped.
type PushReport struct {
	OK      bool          `json:"ok"`
	Total   int           `json:"total"`
	Pushed  int           `json:"pushed"`
	Skipped int           `json:"skipped"`
	Items   []PushOutcome `json:"items"`
}

// Push upserts each local goal sequentially and stops at the first failure.
// Goals already pushed stay pushed. The only error returned is a
// configuration error; per-goal failures are reported in the PushReport.
func (s *SyncService) Push(ctx context.Context) (PushReport, error) {
	if !s.remote.IsConfigured() {
		return PushReport{}, ErrRemoteNotConfigured
	}

	goals := s.goals.Snapshot()
	report := PushReport{OK: true, Total: len(goals), Items: make([]PushOutcome, 0, len(goals))}

	for i, g := range goals {
		outcome := PushOutcome{ID: g.ID, Title: g.Title}
		if err := s.remote.Upsert(ctx, g); err != nil {
			outcome.Error = err.Error()
			report.Items = append(report.Items, outcome)
			report.OK = false
			report.Skipped = len(goals) - i - 1
			s.log.Warn("push stopped at first failure",
				zap.String("id", g.ID.String()),
				zap.Int("pushed", report.Pushed),
				zap.Int("skipped", report.Skipped),
				zap.Error(err))
			return report, nil
		}
		outcome.Pushed = true
		report.Pushed++
		report.Items = append(report.Items, outcome)
	}

	s.log.Info("push complete", zap.Int("pushed", report.Pushed))
	return report, nil
}

type PullResult struct {
	Replaced bool `json:"replaced"`
	Count    int  `json:"count"`
}

// Pull replaces the local collection with the remote one. An empty remote
// table leaves local state untouched. Remote rows arrive newest first; they
// are stored oldest first so the local order stays creation order.
func (s *SyncService) Pull(ctx context.Context) (PullResult, error) {
	if !s.remote.IsConfigured() {
		return PullResult{}, ErrRemoteNotConfigured
	}

	goals, err := s.remote.FetchAll(ctx)
	if err != nil {
		return PullResult{}, err
	}
	if len(goals) == 0 {
		s.log.Info("pull found no remote goals")
		return PullResult{}, nil
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	if err := s.goals.Replace(goals); err != nil {
		return PullResult{}, err
	}

	s.log.Info("pull replaced local goals", zap.Int("count", len(goals)))
	return PullResult{Replaced: true, Count: len(goals)}, nil
}

// RemoveRemote deletes one goal from the mirror only.
func (s *SyncService) RemoveRemote(ctx context.Context, id uuid.UUID) error {
	if !s.remote.IsConfigured() {
		return ErrRemoteNotConfigured
	}
	return s.remote.Remove(ctx, id)
}
