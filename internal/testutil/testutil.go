package testutil

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"feedbackManagement/internal/db"
	"feedbackManagement/models"
	"feedbackManagement/repository"
)

// TestSecret is the signing secret shared by test codecs and hand-built tokens.
const TestSecret = "test-secret"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]`)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache lets every pooled connection see the same database.
	d, err := db.Open("file:" + unsafeName.ReplaceAllString(name, "_") + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// CreateUser inserts a user with a throwaway password hash.
func CreateUser(t *testing.T, d *sql.DB, name string, role models.Role, managerID *int64) *models.User {
	t.Helper()
	u, err := repository.NewUserRepository(d).Create(context.Background(), &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		ManagerID:    managerID,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

// GenerateJWTHS256 returns a signed token with the given claims, expiring after ttl.
// A negative ttl yields an already expired token.
func GenerateJWTHS256(t *testing.T, secret string, userID int64, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// CtxWithBearer returns a context carrying gRPC metadata with an Authorization header.
func CtxWithBearer(ctx context.Context, token string) context.Context {
	return metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", "Bearer "+token))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
