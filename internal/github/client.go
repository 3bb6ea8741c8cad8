package github

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"portfoliohub/pkg/utils"
)

// Repo is the raw GitHub API payload for a repository, trimmed to the
// fields we care about. Timestamps stay strings here; parsing happens
// during normalization so one bad date never fails a whole batch.
type Repo struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	HTMLURL         string   `json:"html_url"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
	Archived        bool     `json:"archived"`
}

// Client talks to the GitHub REST API. Token is optional: without it
// calls still work, just under stricter rate limits.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Token   string
}

func NewClient(cfg utils.GitHubConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
	}
}

// FetchUserRepos returns up to 100 most-recently-updated, owner-authored
// repositories for the given user. It never returns an error: 404, 403,
// other non-2xx statuses and transport failures all degrade to an empty
// slice with a log line. The next staleness check is the retry mechanism.
func (c *Client) FetchUserRepos(ctx context.Context, username string) []Repo {
	u, err := url.Parse(c.BaseURL + "/users/" + url.PathEscape(username) + "/repos")
	if err != nil {
		log.Printf("[github] bad base url %q: %v", c.BaseURL, err)
		return nil
	}
	q := u.Query()
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("per_page", "100")
	q.Set("type", "owner")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Printf("[github] build request: %v", err)
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "portfoliohub")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("[github] request failed: %v", err)
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var repos []Repo
		if err := json.Unmarshal(body, &repos); err != nil {
			log.Printf("[github] decode response: %v", err)
			return nil
		}
		return repos
	case http.StatusNotFound:
		log.Printf("[github] user %s not found", username)
		return nil
	case http.StatusForbidden:
		log.Printf("[github] rate limit exceeded")
		return nil
	default:
		log.Printf("[github] status %d: %s", resp.StatusCode, string(body))
		return nil
	}
}
