package social

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

// ListActive returns active links ordered by position.
func (r *Repo) ListActive(ctx context.Context) ([]models.SocialLink, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, platform, name, url, icon, position, is_active, created_at
		FROM social_links
		WHERE is_active = 1
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.SocialLink, 0, 8)
	for rows.Next() {
		var (
			l         models.SocialLink
			createdAt string
		)
		if err := rows.Scan(
			&l.ID, &l.Platform, &l.Name, &l.URL, &l.Icon,
			&l.Position, &l.IsActive, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.SocialLink, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, platform, name, url, icon, position, is_active, created_at
		FROM social_links
		WHERE id = ?
	`, id)

	var (
		l         models.SocialLink
		createdAt string
	)
	if err := row.Scan(
		&l.ID, &l.Platform, &l.Name, &l.URL, &l.Icon,
		&l.Position, &l.IsActive, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &l, nil
}

func (r *Repo) Create(ctx context.Context, l models.SocialLink) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO social_links (id, platform, name, url, icon, position, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.ID, l.Platform, l.Name, l.URL, l.Icon,
		l.Position, l.IsActive, l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert social link: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, l models.SocialLink) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE social_links SET
		  platform = ?, name = ?, url = ?, icon = ?, position = ?, is_active = ?
		WHERE id = ?
	`,
		l.Platform, l.Name, l.URL, l.Icon, l.Position, l.IsActive, l.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update social link: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Repo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM social_links WHERE is_active = 1`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count social links: %w", err)
	}
	return n, nil
}
