package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/utils"
)

func newTestClient(baseURL, token string) *Client {
	return NewClient(utils.GitHubConfig{
		BaseURL: baseURL,
		Token:   token,
		Timeout: 2 * time.Second,
	})
}

func TestFetchUserReposOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("direction"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "owner", r.URL.Query().Get("type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 11, "name": "alpha", "html_url": "https://example.com/alpha", "stargazers_count": 3},
			{"id": 12, "name": "beta", "html_url": "https://example.com/beta", "fork": true}
		]`))
	}))
	defer srv.Close()

	repos := newTestClient(srv.URL, "").FetchUserRepos(context.Background(), "octocat")

	require.Len(t, repos, 2)
	assert.Equal(t, int64(11), repos[0].ID)
	assert.Equal(t, "alpha", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.True(t, repos[1].Fork)
}

func TestFetchUserReposSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token s3cret", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repos := newTestClient(srv.URL, "s3cret").FetchUserRepos(context.Background(), "octocat")
	assert.Empty(t, repos)
}

func TestFetchUserReposDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"rate limited", http.StatusForbidden},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			repos := newTestClient(srv.URL, "").FetchUserRepos(context.Background(), "nobody")
			assert.Empty(t, repos)
		})
	}
}

func TestFetchUserReposTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	repos := newTestClient(srv.URL, "").FetchUserRepos(context.Background(), "octocat")
	assert.Empty(t, repos)
}

func TestFetchUserReposBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	repos := newTestClient(srv.URL, "").FetchUserRepos(context.Background(), "octocat")
	assert.Empty(t, repos)
}
