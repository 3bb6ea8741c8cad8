package videos

import (
	"context"
	"database/sql"
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

// List returns videos ordered by most recently published.
func (r *Repo) List(ctx context.Context, featuredOnly bool) ([]models.Video, error) {
	q := `
		SELECT id, youtube_id, title, description, thumbnail,
		       published_at, view_count, duration, is_featured, cached_at
		FROM videos
	`
	if featuredOnly {
		q += ` WHERE is_featured = 1`
	}
	q += ` ORDER BY published_at DESC`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.Video, 0, 8)
	for rows.Next() {
		var (
			v           models.Video
			publishedAt string
			cachedAt    string
		)
		if err := rows.Scan(
			&v.ID, &v.YoutubeID, &v.Title, &v.Description, &v.Thumbnail,
			&publishedAt, &v.ViewCount, &v.Duration, &v.IsFeatured, &cachedAt,
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		v.PublishedAt, _ = time.Parse(time.RFC3339, publishedAt)
		v.CachedAt, _ = time.Parse(time.RFC3339, cachedAt)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// BulkUpsert reconciles a batch against storage by youtube_id, same
// contract as the projects merger: insert new, full-overwrite existing
// (keeping the row's id), return inserted+modified.
func (r *Repo) BulkUpsert(ctx context.Context, vids []models.Video) (int, error) {
	if len(vids) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, v := range vids {
		var existing string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM videos WHERE youtube_id = ?`, v.YoutubeID,
		).Scan(&existing)

		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO videos (id, youtube_id, title, description, thumbnail,
				                    published_at, view_count, duration, is_featured, cached_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				v.ID, v.YoutubeID, v.Title, v.Description, v.Thumbnail,
				v.PublishedAt.UTC().Format(time.RFC3339), v.ViewCount,
				v.Duration, v.IsFeatured, v.CachedAt.UTC().Format(time.RFC3339),
			); err != nil {
				return 0, fmt.Errorf("insert %s: %w", v.YoutubeID, err)
			}
			count++
		case err != nil:
			return 0, fmt.Errorf("lookup youtube_id %s: %w", v.YoutubeID, err)
		default:
			res, err := tx.ExecContext(ctx, `
				UPDATE videos SET
				  title = ?, description = ?, thumbnail = ?, published_at = ?,
				  view_count = ?, duration = ?, is_featured = ?, cached_at = ?
				WHERE youtube_id = ?
			`,
				v.Title, v.Description, v.Thumbnail,
				v.PublishedAt.UTC().Format(time.RFC3339), v.ViewCount,
				v.Duration, v.IsFeatured, v.CachedAt.UTC().Format(time.RFC3339),
				v.YoutubeID,
			)
			if err != nil {
				return 0, fmt.Errorf("update %s: %w", v.YoutubeID, err)
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

// Counts returns total and featured video counts.
func (r *Repo) Counts(ctx context.Context) (total, featured int, err error) {
	if err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count videos: %w", err)
	}
	if err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos WHERE is_featured = 1`).Scan(&featured); err != nil {
		return 0, 0, fmt.Errorf("count featured: %w", err)
	}
	return total, featured, nil
}
