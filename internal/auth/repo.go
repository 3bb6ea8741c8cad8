package auth

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Admin is the single management account. There is no open
// registration: the account is bootstrapped from config on first boot.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	TokenVersion int
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// EnsureAdmin creates the admin account when it does not exist yet.
// An empty bootstrap password with no existing account disables the
// admin surface entirely (writes stay locked).
func (r *Repo) EnsureAdmin(ctx context.Context, username, password string) error {
	existing, err := r.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if password == "" {
		log.Printf("[auth] no admin password configured, admin endpoints stay locked")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash)
		VALUES (?, ?, ?)
	`, uuid.NewString(), username, string(hash))
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Printf("[auth] admin account %q bootstrapped", username)
	return nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	username = strings.TrimSpace(username)
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, token_version
		FROM admins
		WHERE username = ?
	`, username)

	var a Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.TokenVersion); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get by username: %w", err)
	}
	return &a, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Admin, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, username, password_hash, token_version
		FROM admins
		WHERE id = ?
	`, id)

	var a Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.TokenVersion); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &a, nil
}

func (r *Repo) GetTokenVersion(ctx context.Context, id string) (int, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT token_version
		FROM admins
		WHERE id = ?
	`, id)

	// a missing row is an error: tokens for deleted accounts must not
	// slip past the version check
	var version int
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("get token version: %w", err)
	}
	return version, nil
}

func (r *Repo) UpdatePasswordAndBumpTokenVersion(ctx context.Context, id string, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE admins
		SET password_hash = ?, token_version = token_version + 1
		WHERE id = ?
	`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update password: admin not found")
	}
	return nil
}

func (r *Repo) BumpTokenVersion(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE admins
		SET token_version = token_version + 1
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump token version rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bump token version: admin not found")
	}
	return nil
}
