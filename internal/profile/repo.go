package profile

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

// Get returns the owner profile, or nil when none has been seeded yet.
func (r *Repo) Get(ctx context.Context) (*models.Profile, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, title, bio, location, specialties, tools,
		       github_username, youtube_channel_id, created_at, updated_at
		FROM profiles
		LIMIT 1
	`)

	var (
		p               models.Profile
		specialtiesJSON string
		toolsJSON       string
		youtube         sql.NullString
		createdAt       string
		updatedAt       string
	)

	if err := row.Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.Location,
		&specialtiesJSON, &toolsJSON, &p.GithubUsername, &youtube,
		&createdAt, &updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.YoutubeChannelID = youtube.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	_ = json.Unmarshal([]byte(specialtiesJSON), &p.Specialties)
	_ = json.Unmarshal([]byte(toolsJSON), &p.Tools)
	if p.Specialties == nil {
		p.Specialties = []string{}
	}
	if p.Tools == nil {
		p.Tools = []string{}
	}
	return &p, nil
}

// Update overwrites the profile row, bumping updated_at.
func (r *Repo) Update(ctx context.Context, p models.Profile) error {
	specialtiesJSON, err := json.Marshal(p.Specialties)
	if err != nil {
		return fmt.Errorf("marshal specialties: %w", err)
	}
	toolsJSON, err := json.Marshal(p.Tools)
	if err != nil {
		return fmt.Errorf("marshal tools: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE profiles SET
		  name = ?, title = ?, bio = ?, location = ?,
		  specialties = ?, tools = ?, github_username = ?,
		  youtube_channel_id = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Name, p.Title, p.Bio, p.Location,
		string(specialtiesJSON), string(toolsJSON), p.GithubUsername,
		p.YoutubeChannelID, time.Now().UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s not found", p.ID)
	}
	return nil
}
