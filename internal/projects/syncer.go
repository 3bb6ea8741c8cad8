package projects

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"portfoliohub/pkg/models"
)

// DefaultMaxAgeHours is the staleness threshold used when the caller
// does not specify one.
const DefaultMaxAgeHours = 6

const backgroundSyncTimeout = 60 * time.Second

// Source fetches and normalizes external project data for an account.
// Implementations never fail: every failure mode degrades to an empty
// slice with a log line behind the interface.
type Source interface {
	FetchProjects(ctx context.Context, username string) []models.Project
}

// Store is the slice of project storage the syncer writes through.
type Store interface {
	BulkUpsert(ctx context.Context, projects []models.Project) (int, error)
	LatestCachedAt(ctx context.Context) (*time.Time, error)
}

// Broadcaster receives a notification after a successful sync.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// IsStale reports whether cached data is older than maxAgeHours.
// A nil timestamp (nothing ever cached) is always stale.
func IsStale(lastCachedAt *time.Time, maxAgeHours int) bool {
	if lastCachedAt == nil {
		return true
	}
	cutoff := time.Now().UTC().Add(-time.Duration(maxAgeHours) * time.Hour)
	return lastCachedAt.Before(cutoff)
}

// Syncer drives the fetch → normalize → stamp → merge pipeline.
// At most one sync runs per account at a time: the foreground path
// waits on the account lock, a background trigger that finds it held
// bails out and leaves the in-flight run to finish.
type Syncer struct {
	Source      Source
	Store       Store
	Username    string
	MaxAgeHours int
	Hub         Broadcaster // optional

	// UsernameFn is consulted on every run when Username is empty, so
	// a profile edit changing the github handle takes effect without a
	// restart.
	UsernameFn func(ctx context.Context) string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSyncer(source Source, store Store, username string, maxAgeHours int) *Syncer {
	if maxAgeHours <= 0 {
		maxAgeHours = DefaultMaxAgeHours
	}
	return &Syncer{
		Source:      source,
		Store:       store,
		Username:    username,
		MaxAgeHours: maxAgeHours,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *Syncer) username(ctx context.Context) string {
	if s.Username != "" {
		return s.Username
	}
	if s.UsernameFn != nil {
		return s.UsernameFn(ctx)
	}
	return ""
}

func (s *Syncer) accountLock(username string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	if !ok {
		l = &sync.Mutex{}
		s.locks[username] = l
	}
	return l
}

// SyncNow runs an unconditional foreground sync and returns its
// structured outcome. It never panics or propagates an error; worst
// case is a zero-count result with diagnostics in Errors.
func (s *Syncer) SyncNow(ctx context.Context) models.SyncResult {
	user := s.username(ctx)
	if user == "" {
		return models.SyncResult{
			Success: false,
			Message: "sync not configured",
			Errors:  []string{"github username not configured"},
		}
	}

	l := s.accountLock(user)
	l.Lock()
	defer l.Unlock()

	return s.run(ctx, user)
}

// SyncIfStale checks freshness and, when the cache is older than
// maxAgeHours (0 means the configured default), kicks off a detached
// background sync. The caller never waits on it; failures are only
// logged.
func (s *Syncer) SyncIfStale(ctx context.Context, maxAgeHours int) {
	if maxAgeHours <= 0 {
		maxAgeHours = s.MaxAgeHours
	}

	last, err := s.Store.LatestCachedAt(ctx)
	if err != nil {
		// fail open: a broken freshness read must not let us serve
		// indefinitely stale data
		log.Printf("[sync] cache age read failed, treating as stale: %v", err)
		last = nil
	}
	if !IsStale(last, maxAgeHours) {
		return
	}

	if s.username(ctx) == "" {
		log.Printf("[sync] github username not configured, skipping background sync")
		return
	}

	log.Printf("[sync] project cache is stale, triggering background sync")
	go s.backgroundRun()
}

func (s *Syncer) backgroundRun() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[sync] background sync panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), backgroundSyncTimeout)
	defer cancel()

	user := s.username(ctx)
	if user == "" {
		log.Printf("[sync] github username not configured, skipping background sync")
		return
	}

	l := s.accountLock(user)
	if !l.TryLock() {
		log.Printf("[sync] sync already in flight for %s, skipping", user)
		return
	}
	defer l.Unlock()

	res := s.run(ctx, user)
	if res.Success {
		log.Printf("[sync] background sync completed: %d projects updated", res.ProjectsSynced)
	} else {
		log.Printf("[sync] background sync failed: %v", res.Errors)
	}
}

// IsFresh reports whether the cache is within maxAgeHours (0 means
// the configured default). A storage read failure counts as stale.
func (s *Syncer) IsFresh(ctx context.Context, maxAgeHours int) bool {
	if maxAgeHours <= 0 {
		maxAgeHours = s.MaxAgeHours
	}
	last, err := s.Store.LatestCachedAt(ctx)
	if err != nil {
		log.Printf("[sync] cache age read failed: %v", err)
		return false
	}
	return !IsStale(last, maxAgeHours)
}

// LastSyncedAt exposes the newest cache timestamp for stats reporting.
func (s *Syncer) LastSyncedAt(ctx context.Context) *time.Time {
	last, err := s.Store.LatestCachedAt(ctx)
	if err != nil {
		log.Printf("[sync] cache age read failed: %v", err)
		return nil
	}
	return last
}

func (s *Syncer) run(ctx context.Context, username string) models.SyncResult {
	projects := s.Source.FetchProjects(ctx, username)
	if len(projects) == 0 {
		return models.SyncResult{
			Success: false,
			Message: "failed to fetch repositories from GitHub",
			Errors:  []string{"GitHub API returned no data or failed"},
		}
	}

	// stamp the whole batch uniformly so the next freshness check
	// reflects this run's completion time
	now := time.Now().UTC()
	for i := range projects {
		projects[i].CachedAt = now
	}

	count, err := s.Store.BulkUpsert(ctx, projects)
	if err != nil {
		log.Printf("[sync] upsert failed: %v", err)
		return models.SyncResult{
			Success: false,
			Message: "failed to store synced projects",
			Errors:  []string{err.Error()},
		}
	}

	if s.Hub != nil {
		s.Hub.BroadcastJSON(SyncEvent{
			Type:  "projects.synced",
			Count: count,
			At:    now,
		})
	}

	return models.SyncResult{
		Success:        true,
		Message:        fmt.Sprintf("successfully synced %d projects", count),
		ProjectsSynced: count,
		Errors:         []string{},
	}
}

// SyncEvent is broadcast to websocket clients after a successful run.
type SyncEvent struct {
	Type  string    `json:"type"`
	Count int       `json:"count"`
	At    time.Time `json:"at"`
}
