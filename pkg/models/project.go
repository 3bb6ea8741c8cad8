package models

import "time"

// Project is the normalized, internal form of a GitHub repository
// used by the sync pipeline and database layer.
//
// The github package maps raw API payloads into this structure first,
// then we write to the DB from this representation. GithubID is the
// natural key used for upserts; ID is ours and stays stable across
// updates of the same project.
type Project struct {
	ID              string    `json:"id"`
	GithubID        int64     `json:"github_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Language        string    `json:"language,omitempty"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	Topics          []string  `json:"topics"`
	IsFeatured      bool      `json:"is_featured"`
	CachedAt        time.Time `json:"cached_at"`
}
