package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Seed inserts the initial profile and social links on first boot.
// It is idempotent: rows already present are left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	if err := seedProfile(ctx, db); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	if err := seedSocialLinks(ctx, db); err != nil {
		return fmt.Errorf("seed social links: %w", err)
	}
	return nil
}

func seedProfile(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		log.Println("[seed] profile already exists")
		return nil
	}

	specialties, _ := json.Marshal([]string{
		"Full-stack Development",
		"AI Tools",
		"Creative Coding",
		"Quantum Computing",
	})
	tools, _ := json.Marshal([]string{
		"JavaScript", "Python", "Go", "React", "Node.js", "TensorFlow", "GitHub", "Docker",
	})

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, title, bio, location, specialties, tools, github_username, youtube_channel_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.NewString(),
		"Kenan Alnaser",
		"Software Engineer | Futurist | Creative Technologist",
		"I'm a developer with a passion for merging technology and creativity. My work spans across software engineering, AI integration, and experimental projects that explore the limits of digital interaction.",
		"Digital Frontier",
		string(specialties),
		string(tools),
		"Kenan-Alnaser",
		"@voransirt",
		now,
		now,
	)
	if err != nil {
		return err
	}

	log.Println("[seed] profile seeded")
	return nil
}

func seedSocialLinks(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM social_links`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		log.Println("[seed] social links already exist")
		return nil
	}

	links := []struct {
		platform, url, icon string
		position            int
	}{
		{"GitHub", "https://github.com/Kenan-Alnaser", "Github", 1},
		{"LinkedIn", "https://www.linkedin.com/in/kenan-alnaser", "Linkedin", 2},
		{"YouTube", "https://www.youtube.com/@voransirt", "Youtube", 3},
		{"Twitch", "https://www.twitch.tv/vor_ansirt", "Twitch", 4},
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range links {
		_, err := db.ExecContext(ctx, `
			INSERT INTO social_links (id, platform, name, url, icon, position, is_active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		`, uuid.NewString(), l.platform, l.platform, l.url, l.icon, l.position, now)
		if err != nil {
			return err
		}
	}

	log.Println("[seed] social links seeded")
	return nil
}
