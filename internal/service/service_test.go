// service_test.go provides the shared database fixture for service-level
// integration tests. Tests are skipped if PostgreSQL is not available.
package service

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// fixture bundles the stores and services under test over one DB handle.
type fixture struct {
	db *sql.DB

	users         *store.UserStore
	articles      *store.ArticleStore
	comments      *store.CommentStore
	likes         *store.LikeStore
	bookmarks     *store.BookmarkStore
	follows       *store.FollowStore
	notifications *store.NotificationStore
	activity      *store.ActivityStore
	collabs       *store.CollaboratorStore
	reports       *store.ReportStore

	articleSvc    *ArticleService
	socialSvc     *SocialService
	searchSvc     *SearchService
	moderationSvc *ModerationService
	activitySvc   *ActivityService
}

func newFixture(t *testing.T) *fixture {
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

	f := &fixture{
		db:            db,
		users:         store.NewUserStore(db),
		articles:      store.NewArticleStore(db),
		comments:      store.NewCommentStore(db),
		likes:         store.NewLikeStore(db),
		bookmarks:     store.NewBookmarkStore(db),
		follows:       store.NewFollowStore(db),
		notifications: store.NewNotificationStore(db),
		activity:      store.NewActivityStore(db),
		collabs:       store.NewCollaboratorStore(db),
		reports:       store.NewReportStore(db),
	}
	f.articleSvc = NewArticleService(f.articles, f.users, f.collabs, f.activity, nil)
	f.socialSvc = NewSocialService(f.articles, f.users, f.likes, f.bookmarks, f.comments, f.follows, f.notifications, f.activity)
	f.searchSvc = NewSearchService(f.articles, f.users)
	f.moderationSvc = NewModerationService(f.reports, f.articles, f.comments)
	f.activitySvc = NewActivityService(f.activity, f.notifications)
	return f
}

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

// newUser creates a user with the given role and registers cleanup.
// Cascades remove the user's articles, comments and social rows.
func (f *fixture) newUser(t *testing.T, tag string, role models.Role) *models.User {
	t.Helper()
	email := "svc-" + tag + "@service-test.local"
	t.Cleanup(func() { f.db.Exec("DELETE FROM users WHERE email = $1", email) })
	u, err := f.users.Create(email, "svc_"+tag, "pass1234", "Svc "+tag, role)
	if err != nil {
		t.Fatalf("create user %s: %v", tag, err)
	}
	return u
}

// publishedArticle creates a published article via the lifecycle service.
func (f *fixture) publishedArticle(t *testing.T, author *models.User, title string) *models.Article {
	t.Helper()
	a, err := f.articleSvc.Create(ArticleInput{
		Title:   title,
		Summary: "summary",
		Content: "body text",
		Status:  models.ArticleStatusPublished,
	}, author.ID, models.RoleEditor)
	if err != nil {
		t.Fatalf("create published article: %v", err)
	}
	return a
}

// notificationsOf returns the user's notifications of one type.
func (f *fixture) notificationsOf(t *testing.T, userID uuid.UUID, kind models.NotificationType) []models.Notification {
	t.Helper()
	rows, err := f.db.Query(`SELECT id FROM notifications WHERE user_id = $1 AND type = $2`, userID, string(kind))
	if err != nil {
		t.Fatalf("query notifications: %v", err)
	}
	defer rows.Close()
	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID); err != nil {
			t.Fatalf("scan notification: %v", err)
		}
		out = append(out, n)
	}
	return out
}
