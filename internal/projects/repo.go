package projects

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"portfoliohub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// List returns projects ordered by most recently updated.
func (r *Repo) List(ctx context.Context, featuredOnly bool) ([]models.Project, error) {
	q := `
		SELECT id, github_id, name, description, language, html_url,
		       created_at, updated_at, stargazers_count, forks_count,
		       topics, is_featured, cached_at
		FROM projects
	`
	if featuredOnly {
		q += ` WHERE is_featured = 1`
	}
	q += ` ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0, 32)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// BulkUpsert reconciles a batch against storage by github_id: new ids
// are inserted, existing ones get a full-field overwrite that keeps
// the row's original id. Returns inserted+modified count. An empty
// batch is a no-op returning 0.
func (r *Repo) BulkUpsert(ctx context.Context, projects []models.Project) (int, error) {
	if len(projects) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	insertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (id, github_id, name, description, language, html_url,
		                      created_at, updated_at, stargazers_count, forks_count,
		                      topics, is_featured, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer insertStmt.Close()

	updateStmt, err := tx.PrepareContext(ctx, `
		UPDATE projects SET
		  name = ?, description = ?, language = ?, html_url = ?,
		  created_at = ?, updated_at = ?, stargazers_count = ?, forks_count = ?,
		  topics = ?, is_featured = ?, cached_at = ?
		WHERE github_id = ?
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare update: %w", err)
	}
	defer updateStmt.Close()

	count := 0
	for _, p := range projects {
		topicsJSON, err := json.Marshal(p.Topics)
		if err != nil {
			return 0, fmt.Errorf("marshal topics for %s: %w", p.Name, err)
		}

		var existing string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM projects WHERE github_id = ?`, p.GithubID,
		).Scan(&existing)

		switch {
		case err == sql.ErrNoRows:
			if _, err := insertStmt.ExecContext(ctx,
				p.ID, p.GithubID, p.Name, p.Description, p.Language, p.HTMLURL,
				fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt),
				p.StargazersCount, p.ForksCount,
				string(topicsJSON), p.IsFeatured, fmtTime(p.CachedAt),
			); err != nil {
				return 0, fmt.Errorf("insert %s: %w", p.Name, err)
			}
			count++
		case err != nil:
			return 0, fmt.Errorf("lookup github_id %d: %w", p.GithubID, err)
		default:
			res, err := updateStmt.ExecContext(ctx,
				p.Name, p.Description, p.Language, p.HTMLURL,
				fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt),
				p.StargazersCount, p.ForksCount,
				string(topicsJSON), p.IsFeatured, fmtTime(p.CachedAt),
				p.GithubID,
			)
			if err != nil {
				return 0, fmt.Errorf("update %s: %w", p.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				count++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return count, nil
}

// LatestCachedAt returns the newest cached_at across all projects,
// or nil when nothing has ever been cached.
func (r *Repo) LatestCachedAt(ctx context.Context) (*time.Time, error) {
	var s string
	err := r.DB.QueryRowContext(ctx,
		`SELECT cached_at FROM projects ORDER BY cached_at DESC LIMIT 1`,
	).Scan(&s)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest cached_at: %w", err)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parse cached_at %q: %w", s, err)
	}
	return &t, nil
}

// Counts returns total and featured project counts.
func (r *Repo) Counts(ctx context.Context) (total, featured int, err error) {
	if err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count projects: %w", err)
	}
	if err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE is_featured = 1`).Scan(&featured); err != nil {
		return 0, 0, fmt.Errorf("count featured: %w", err)
	}
	return total, featured, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p          models.Project
		desc       sql.NullString
		lang       sql.NullString
		createdAt  string
		updatedAt  string
		topicsJSON string
		cachedAt   string
	)

	if err := row.Scan(
		&p.ID, &p.GithubID, &p.Name, &desc, &lang, &p.HTMLURL,
		&createdAt, &updatedAt, &p.StargazersCount, &p.ForksCount,
		&topicsJSON, &p.IsFeatured, &cachedAt,
	); err != nil {
		return models.Project{}, err
	}

	p.Description = desc.String
	p.Language = lang.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	p.CachedAt, _ = time.Parse(time.RFC3339, cachedAt)
	_ = json.Unmarshal([]byte(topicsJSON), &p.Topics)
	if p.Topics == nil {
		p.Topics = []string{}
	}
	return p, nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
