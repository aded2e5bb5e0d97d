package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/storage"
)

var t0 = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// fixedClock returns a clock that advances one minute per call.
func fixedClock() func() time.Time {
	var mu sync.Mutex
	next := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func newService(t *testing.T) (*GoalService, *storage.LocalStore) {
	t.Helper()
	store := storage.NewLocalStore(storage.NewMemoryKV(), nil)
	s := NewGoalService(store, nil)
	s.now = fixedClock()
	require.NoError(t, s.Init(false))
	return s, store
}

func stored(t *testing.T, store *storage.LocalStore) []models.Goal {
	t.Helper()
	goals, err := store.Load()
	require.NoError(t, err)
	return goals
}

func TestGoalService_Create(t *testing.T) {
	s, store := newService(t)
	before := len(stored(t, store))

	g, err := s.Create(models.CreateGoalRequest{Title: "Read 12 books", Category: "personal"})
	require.NoError(t, err)

	goals := stored(t, store)
	require.Len(t, goals, before+1)
	assert.Equal(t, g, goals[len(goals)-1])
	assert.Equal(t, 0, g.Progress)
	assert.False(t, g.IsCompleted)
	assert.Nil(t, g.CompletedAt)
	assert.Equal(t, g.CreatedAt, g.UpdatedAt)
}

func TestGoalService_CreateRejects(t *testing.T) {
	s, store := newService(t)

	_, err := s.Create(models.CreateGoalRequest{Title: "   ", Category: "personal"})
	assert.ErrorIs(t, err, ErrBlankTitle)

	_, err = s.Create(models.CreateGoalRequest{Title: "x", Category: "hobbies"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	assert.Empty(t, stored(t, store))
}

func TestGoalService_ProgressLifecycle(t *testing.T) {
	s, store := newService(t)
	g, err := s.Create(models.CreateGoalRequest{Title: "Run 5k", Category: "health"})
	require.NoError(t, err)

	res, err := s.SetProgress(g.ID, 100)
	require.NoError(t, err)
	assert.True(t, res.JustCompleted)
	assert.True(t, res.Goal.IsCompleted)
	require.NotNil(t, res.Goal.CompletedAt)
	assert.Equal(t, res.Goal.UpdatedAt, *res.Goal.CompletedAt)
	assert.True(t, res.Goal.UpdatedAt.After(g.UpdatedAt))
	assert.Equal(t, res.Goal, stored(t, store)[0])

	res, err = s.SetProgress(g.ID, 100)
	require.NoError(t, err)
	assert.False(t, res.JustCompleted)

	res, err = s.SetProgress(g.ID, 80)
	require.NoError(t, err)
	assert.False(t, res.Goal.IsCompleted)
	assert.Nil(t, res.Goal.CompletedAt)
	assert.Nil(t, stored(t, store)[0].CompletedAt)

	_, err = s.SetProgress(g.ID, 42)
	assert.ErrorIs(t, err, ErrInvalidProgress)
	_, err = s.SetProgress(uuid.New(), 50)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalService_Update(t *testing.T) {
	s, _ := newService(t)
	g, err := s.Create(models.CreateGoalRequest{Title: "Old", Description: "d", Category: "career"})
	require.NoError(t, err)

	title := "New"
	updated, err := s.Update(g.ID, models.UpdateGoalRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "d", updated.Description)
	assert.True(t, updated.UpdatedAt.After(g.UpdatedAt))

	blank := " "
	_, err = s.Update(g.ID, models.UpdateGoalRequest{Title: &blank})
	assert.ErrorIs(t, err, ErrBlankTitle)
}

func TestGoalService_Delete(t *testing.T) {
	s, store := newService(t)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		g, err := s.Create(models.CreateGoalRequest{Title: fmt.Sprintf("goal %d", i), Category: "other"})
		require.NoError(t, err)
		ids = append(ids, g.ID)
	}
	before := stored(t, store)

	require.NoError(t, s.Delete(ids[1]))

	after := stored(t, store)
	assert.Equal(t, []models.Goal{before[0], before[2]}, after)
	assert.ErrorIs(t, s.Delete(ids[1]), ErrGoalNotFound)
}

func TestGoalService_List(t *testing.T) {
	s, _ := newService(t)
	_, _ = s.Create(models.CreateGoalRequest{Title: "Read books", Description: "fiction", Category: "personal"})
	_, _ = s.Create(models.CreateGoalRequest{Title: "Run", Description: "5k race", Category: "health"})
	_, _ = s.Create(models.CreateGoalRequest{Title: "Journal", Description: "Read back monthly", Category: "personal"})

	assert.Len(t, s.List(ListFilter{}), 3)
	assert.Len(t, s.List(ListFilter{Category: models.CategoryAll}), 3)
	assert.Len(t, s.List(ListFilter{Category: "personal"}), 2)
	assert.Len(t, s.List(ListFilter{Query: "READ"}), 2)
	assert.Len(t, s.List(ListFilter{Category: "health", Query: "read"}), 0)

	titles := []string{}
	for _, g := range s.List(ListFilter{}) {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Read books", "Run", "Journal"}, titles, "insertion order")
}

func TestGoalService_InitSeedsWhenEmpty(t *testing.T) {
	store := storage.NewLocalStore(storage.NewMemoryKV(), nil)
	s := NewGoalService(store, nil)

	require.NoError(t, s.Init(true))
	assert.Len(t, s.Snapshot(), len(sampleGoals))
	assert.Len(t, stored(t, store), len(sampleGoals))

	// A second start does not seed again.
	s2 := NewGoalService(store, nil)
	require.NoError(t, s2.Init(true))
	assert.Equal(t, s.Snapshot(), s2.Snapshot())
}

func TestGoalService_InitCorruptDegradesToEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.SetItem(storage.GoalsKey, "{oops"))
	store := storage.NewLocalStore(kv, nil)
	s := NewGoalService(store, nil)

	require.NoError(t, s.Init(false))
	assert.Empty(t, s.Snapshot())

	_, err := s.Create(models.CreateGoalRequest{Title: "fresh", Category: "other"})
	require.NoError(t, err)

	kept, ok, _ := kv.GetItem(storage.CorruptGoalsKey)
	assert.True(t, ok)
	assert.Equal(t, "{oops", kept)
}

func TestGoalService_WithoutStorage(t *testing.T) {
	s := NewGoalService(storage.NewLocalStore(nil, nil), nil)
	require.NoError(t, s.Init(true))

	g, err := s.Create(models.CreateGoalRequest{Title: "in memory", Category: "other"})
	require.NoError(t, err)
	got, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestGoalService_ConcurrentCreatesAllPersist(t *testing.T) {
	s, store := newService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(models.CreateGoalRequest{Title: fmt.Sprintf("goal %d", i), Category: "other"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, stored(t, store), 20)
}

var errDisk = errors.New("disk I/O error")

// faultyKV is a MemoryKV whose reads or writes can be made to fail.
type faultyKV struct {
	*storage.MemoryKV
	mu      sync.Mutex
	failGet bool
	failSet bool
}

func (f *faultyKV) GetItem(key string) (string, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", false, errDisk
	}
	return f.MemoryKV.GetItem(key)
}

func (f *faultyKV) SetItem(key, value string) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errDisk
	}
	return f.MemoryKV.SetItem(key, value)
}

func (f *faultyKV) set(get, set bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet, f.failSet = get, set
}

func TestGoalService_InitReadFailureKeepsStoredGoals(t *testing.T) {
	for _, seed := range []bool{true, false} {
		t.Run(fmt.Sprintf("seed=%v", seed), func(t *testing.T) {
			kv := &faultyKV{MemoryKV: storage.NewMemoryKV()}
			store := storage.NewLocalStore(kv, nil)
			mine := models.NewGoal("mine", "", models.CategoryPersonal, t0)
			require.NoError(t, store.Save([]models.Goal{mine}))

			kv.set(true, false)
			s := NewGoalService(store, nil)
			err := s.Init(seed)
			assert.ErrorIs(t, err, storage.ErrBackend)
			assert.ErrorIs(t, err, errDisk)
			assert.Empty(t, s.Snapshot())

			_, err = s.Create(models.CreateGoalRequest{Title: "new", Category: "other"})
			assert.ErrorIs(t, err, ErrNotLoaded)
			assert.ErrorIs(t, s.Replace(nil), ErrNotLoaded)

			kv.set(false, false)
			assert.Equal(t, []models.Goal{mine}, stored(t, store))

			require.NoError(t, s.Init(seed))
			assert.Equal(t, []models.Goal{mine}, s.Snapshot())
		})
	}
}

func TestGoalService_FailedSaveLeavesMemoryUnchanged(t *testing.T) {
	kv := &faultyKV{MemoryKV: storage.NewMemoryKV()}
	store := storage.NewLocalStore(kv, nil)
	s := NewGoalService(store, nil)
	s.now = fixedClock()
	require.NoError(t, s.Init(false))

	g, err := s.Create(models.CreateGoalRequest{Title: "kept", Category: "health"})
	require.NoError(t, err)
	before := s.Snapshot()

	kv.set(false, true)

	_, err = s.Create(models.CreateGoalRequest{Title: "lost", Category: "other"})
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, before, s.Snapshot())

	title := "renamed"
	_, err = s.Update(g.ID, models.UpdateGoalRequest{Title: &title})
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, before, s.Snapshot())

	_, err = s.SetProgress(g.ID, 100)
	assert.ErrorIs(t, err, errDisk)
	assert.Equal(t, before, s.Snapshot())

	assert.ErrorIs(t, s.Delete(g.ID), errDisk)
	assert.Equal(t, before, s.Snapshot())

	assert.ErrorIs(t, s.Replace(nil), errDisk)
	assert.Equal(t, before, s.Snapshot())

	kv.set(false, false)
	_, err = s.Create(models.CreateGoalRequest{Title: "next", Category: "other"})
	require.NoError(t, err)

	titles := []string{}
	for _, g := range stored(t, store) {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"kept", "next"}, titles)
	assert.False(t, s.Snapshot()[0].IsCompleted)
}
