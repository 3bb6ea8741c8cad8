package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfoliohub/pkg/models"
)

// FetchProjects fetches the user's repositories and normalizes them
// into storage-ready projects.
func (c *Client) FetchProjects(ctx context.Context, username string) []models.Project {
	return Normalize(c.FetchUserRepos(ctx, username))
}

// Topics that mark a project as featured regardless of popularity.
var featuredTopics = map[string]struct{}{
	"ai":               {},
	"machine-learning": {},
	"neural-network":   {},
	"quantum":          {},
	"blockchain":       {},
	"cyberpunk":        {},
}

// Name substrings that mark a project as featured (matched lowercase).
var featuredPatterns = []string{"ai", "quantum", "neural", "cyber", "bot", "ml"}

// Normalize maps raw API payloads into storage-ready projects.
// Pure function: no I/O, never fails. Per-record rules, in order:
// forks with fewer than 5 stars are dropped, archived repos are
// dropped, everything else gets safe defaults for missing fields.
func Normalize(repos []Repo) []models.Project {
	out := make([]models.Project, 0, len(repos))
	for _, r := range repos {
		if r.Fork && r.StargazersCount < 5 {
			continue
		}
		if r.Archived {
			continue
		}
		out = append(out, toProject(r))
	}
	return out
}

func toProject(r Repo) models.Project {
	desc := r.Description
	if desc == "" {
		lang := r.Language
		if lang == "" {
			lang = "code"
		}
		desc = fmt.Sprintf("A %s project", lang)
	}

	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}

	return models.Project{
		ID:              uuid.NewString(),
		GithubID:        r.ID,
		Name:            r.Name,
		Description:     desc,
		Language:        r.Language,
		HTMLURL:         r.HTMLURL,
		CreatedAt:       parseTime(r.CreatedAt),
		UpdatedAt:       parseTime(r.UpdatedAt),
		StargazersCount: r.StargazersCount,
		ForksCount:      r.ForksCount,
		Topics:          topics,
		IsFeatured:      isFeatured(r),
	}
}

// parseTime parses a GitHub RFC3339 timestamp; a malformed date falls
// back to the current time rather than failing the batch.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}

// isFeatured applies the three-tier heuristic: popularity counters
// first, then the curated topic set, then name patterns.
func isFeatured(r Repo) bool {
	if r.StargazersCount >= 10 || r.ForksCount >= 5 {
		return true
	}
	for _, t := range r.Topics {
		if _, ok := featuredTopics[t]; ok {
			return true
		}
	}
	name := strings.ToLower(r.Name)
	for _, p := range featuredPatterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}
