// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by email. Cascades take articles, likes,
// comments, follows and notifications with them. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// testUser creates a viewer-role user for a test and registers cleanup.
func testUser(t *testing.T, db *sql.DB, tag string) *models.User {
	t.Helper()
	s := NewUserStore(db)
	email := "test-" + tag + "@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })
	u, err := s.Create(email, "test_"+tag, "pass1234", "Test "+tag, models.RoleViewer)
	if err != nil {
		t.Fatalf("create test user %s: %v", tag, err)
	}
	return u
}

// testArticle creates an article for a test. It is removed via the author's
// cascade, so no separate cleanup is registered.
func testArticle(t *testing.T, db *sql.DB, authorID uuid.UUID, status models.ArticleStatus) *models.Article {
	t.Helper()
	s := NewArticleStore(db)
	a := &models.Article{
		Title:    "Test Article " + uuid.NewString()[:8],
		Summary:  "summary",
		Content:  "content body",
		Status:   status,
		AuthorID: authorID,
	}
	created, err := s.Create(a)
	if err != nil {
		t.Fatalf("create test article: %v", err)
	}
	return created
}
