package projects

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

type stubSource struct {
	projects  []models.Project
	calls     int
	usernames []string
}

func (s *stubSource) FetchProjects(ctx context.Context, username string) []models.Project {
	s.calls++
	s.usernames = append(s.usernames, username)
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

type stubStore struct {
	mu       sync.Mutex
	last     *time.Time
	lastErr  error
	batches  [][]models.Project
	upserted chan int
}

func (s *stubStore) BulkUpsert(ctx context.Context, projects []models.Project) (int, error) {
	s.mu.Lock()
	s.batches = append(s.batches, projects)
	s.mu.Unlock()
	if s.upserted != nil {
		s.upserted <- len(projects)
	}
	return len(projects), nil
}

func (s *stubStore) LatestCachedAt(ctx context.Context) (*time.Time, error) {
	return s.last, s.lastErr
}

type stubHub struct {
	mu     sync.Mutex
	events []any
}

func (h *stubHub) BroadcastJSON(v any) {
	h.mu.Lock()
	h.events = append(h.events, v)
	h.mu.Unlock()
}

func hoursAgo(h int) *time.Time {
	t := time.Now().UTC().Add(-time.Duration(h) * time.Hour)
	return &t
}

func TestIsStale(t *testing.T) {
	tests := []struct {
		name        string
		last        *time.Time
		maxAgeHours int
		want        bool
	}{
		{"never cached", nil, 6, true},
		{"well past threshold", hoursAgo(10), 6, true},
		{"within threshold", hoursAgo(1), 6, false},
		{"just inside", hoursAgo(5), 6, false},
		{"just outside", hoursAgo(7), 6, true},
		{"never cached, any threshold", nil, 1000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStale(tt.last, tt.maxAgeHours))
		})
	}
}

func TestSyncNowEndToEnd(t *testing.T) {
	repo := NewRepo(testDB(t))
	ctx := context.Background()

	// pre-existing stale cache entry
	stale := sampleProject(99, "old")
	stale.CachedAt = time.Now().UTC().Add(-10 * time.Hour)
	_, err := repo.BulkUpsert(ctx, []models.Project{stale})
	require.NoError(t, err)

	fresh := sampleProject(1, "shiny")
	fresh.StargazersCount = 20
	fresh.IsFeatured = true
	fresh.CachedAt = time.Time{} // the syncer stamps this

	source := &stubSource{projects: []models.Project{fresh}}
	s := NewSyncer(source, repo, "octocat", 6)

	assert.False(t, s.IsFresh(ctx, 0), "cache should start stale")

	res := s.SyncNow(ctx)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ProjectsSynced)
	assert.Empty(t, res.Errors)

	// the merge completion time now drives freshness
	assert.True(t, s.IsFresh(ctx, 0))

	items, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSyncNowStampsBatchUniformly(t *testing.T) {
	store := &stubStore{}
	source := &stubSource{projects: []models.Project{
		sampleProject(1, "a"),
		sampleProject(2, "b"),
	}}
	s := NewSyncer(source, store, "octocat", 6)

	res := s.SyncNow(context.Background())
	require.True(t, res.Success)

	require.Len(t, store.batches, 1)
	batch := store.batches[0]
	require.Len(t, batch, 2)
	assert.False(t, batch[0].CachedAt.IsZero())
	assert.True(t, batch[0].CachedAt.Equal(batch[1].CachedAt))
}

func TestSyncNowUnconfigured(t *testing.T) {
	source := &stubSource{projects: []models.Project{sampleProject(1, "a")}}
	s := NewSyncer(source, &stubStore{}, "", 6)

	res := s.SyncNow(context.Background())

	assert.False(t, res.Success)
	assert.Zero(t, res.ProjectsSynced)
	assert.Contains(t, res.Errors, "github username not configured")
	assert.Zero(t, source.calls, "fetcher must not be called without an account")
}

func TestSyncNowResolvesUsernamePerRun(t *testing.T) {
	source := &stubSource{projects: []models.Project{sampleProject(1, "a")}}
	s := NewSyncer(source, &stubStore{}, "", 6)

	// stands in for the profile lookup: the handle can change between runs
	current := "octocat"
	s.UsernameFn = func(ctx context.Context) string { return current }

	require.True(t, s.SyncNow(context.Background()).Success)

	current = "monalisa"
	require.True(t, s.SyncNow(context.Background()).Success)

	assert.Equal(t, []string{"octocat", "monalisa"}, source.usernames)
}

func TestSyncNowConfiguredUsernameWins(t *testing.T) {
	source := &stubSource{projects: []models.Project{sampleProject(1, "a")}}
	s := NewSyncer(source, &stubStore{}, "octocat", 6)
	s.UsernameFn = func(ctx context.Context) string { return "ignored" }

	require.True(t, s.SyncNow(context.Background()).Success)
	assert.Equal(t, []string{"octocat"}, source.usernames)
}

func TestSyncNowEmptyFetch(t *testing.T) {
	store := &stubStore{}
	s := NewSyncer(&stubSource{}, store, "octocat", 6)

	res := s.SyncNow(context.Background())

	assert.False(t, res.Success)
	assert.Zero(t, res.ProjectsSynced)
	assert.NotEmpty(t, res.Errors)
	assert.Empty(t, store.batches, "empty fetch must not touch storage")
}

func TestSyncNowBroadcastsEvent(t *testing.T) {
	hub := &stubHub{}
	s := NewSyncer(&stubSource{projects: []models.Project{sampleProject(1, "a")}}, &stubStore{}, "octocat", 6)
	s.Hub = hub

	res := s.SyncNow(context.Background())
	require.True(t, res.Success)

	require.Len(t, hub.events, 1)
	ev, ok := hub.events[0].(SyncEvent)
	require.True(t, ok)
	assert.Equal(t, "projects.synced", ev.Type)
	assert.Equal(t, 1, ev.Count)
}

func TestSyncIfStaleTriggersBackgroundSync(t *testing.T) {
	store := &stubStore{last: hoursAgo(10), upserted: make(chan int, 1)}
	s := NewSyncer(&stubSource{projects: []models.Project{sampleProject(1, "a")}}, store, "octocat", 6)

	s.SyncIfStale(context.Background(), 0)

	select {
	case n := <-store.upserted:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background sync to run")
	}
}

func TestSyncIfStaleFreshCacheNoop(t *testing.T) {
	store := &stubStore{last: hoursAgo(1), upserted: make(chan int, 1)}
	s := NewSyncer(&stubSource{projects: []models.Project{sampleProject(1, "a")}}, store, "octocat", 6)

	s.SyncIfStale(context.Background(), 0)

	select {
	case <-store.upserted:
		t.Fatal("fresh cache must not trigger a sync")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSyncIfStaleStorageErrorFailsOpen(t *testing.T) {
	store := &stubStore{lastErr: assert.AnError, upserted: make(chan int, 1)}
	s := NewSyncer(&stubSource{projects: []models.Project{sampleProject(1, "a")}}, store, "octocat", 6)

	s.SyncIfStale(context.Background(), 0)

	select {
	case <-store.upserted:
	case <-time.After(2 * time.Second):
		t.Fatal("freshness read failure must be treated as stale")
	}
}

func TestBackgroundSyncSkipsWhenLockHeld(t *testing.T) {
	store := &stubStore{last: nil, upserted: make(chan int, 1)}
	s := NewSyncer(&stubSource{projects: []models.Project{sampleProject(1, "a")}}, store, "octocat", 6)

	l := s.accountLock("octocat")
	l.Lock()
	defer l.Unlock()

	s.SyncIfStale(context.Background(), 0)

	select {
	case <-store.upserted:
		t.Fatal("background sync must bail out while another run holds the lock")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIsFreshStorageError(t *testing.T) {
	s := NewSyncer(&stubSource{}, &stubStore{lastErr: assert.AnError}, "octocat", 6)
	assert.False(t, s.IsFresh(context.Background(), 0))
}
