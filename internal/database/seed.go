package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin account plus two regular users if no users
// exist yet, so a fresh development environment is immediately usable.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	users := []struct {
		email, username, displayName, password, role string
		verified                                     bool
	}{
		{"admin@inkwell.local", "admin", "Admin User", "admin", "admin", true},
		{"alice@example.com", "alice", "Alice Johnson", "password", "viewer", false},
		{"bob@example.com", "bob", "Bob Smith", "password", "viewer", true},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}

		_, err = db.Exec(`
			INSERT INTO users (email, username, password_hash, display_name, role, is_verified)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, u.email, u.username, string(hash), u.displayName, u.role, u.verified)
		if err != nil {
			return fmt.Errorf("seed insert user %s: %w", u.username, err)
		}
	}

	slog.Info("database seeded with development users",
		"admin", "admin@inkwell.local",
		"password", "admin",
	)

	return nil
}
