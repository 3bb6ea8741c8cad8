package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db := database.MustOpen(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	t.Cleanup(func() { db.Close() })
	if err := database.MigrateFile(db, "../../docs/schema.sql"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func protectedRouter(t *testing.T) (*gin.Engine, *Repo, TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewRepo(testDB(t))
	ctx := context.Background()
	require.NoError(t, repo.EnsureAdmin(ctx, "admin", "hunter2secret"))

	tokens := TokenService{Secret: []byte("test-secret"), Issuer: "portfoliohub", Duration: time.Hour}

	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens, repo), func(c *gin.Context) {
		claims := MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{"username": claims.Username})
	})
	return r, repo, tokens
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r, _, _ := protectedRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r, _, tokens := protectedRouter(t)

	tok, _, err := tokens.Sign(&Admin{ID: "x", Username: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"no bearer prefix", tok},
		{"wrong scheme", "Basic " + tok},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, get(r, tt.header).Code)
		})
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r, repo, tokens := protectedRouter(t)

	admin, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)

	tok, _, err := tokens.Sign(admin)
	require.NoError(t, err)

	w := get(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestAuthMiddlewareRejectsStaleTokenVersion(t *testing.T) {
	r, repo, tokens := protectedRouter(t)
	ctx := context.Background()

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)

	tok, _, err := tokens.Sign(admin)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, get(r, "Bearer "+tok).Code)

	// logout-everywhere: bumping the version kills every issued token
	require.NoError(t, repo.BumpTokenVersion(ctx, admin.ID))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+tok).Code)
}

func TestAuthMiddlewareRejectsUnknownAdmin(t *testing.T) {
	r, _, tokens := protectedRouter(t)

	tok, _, err := tokens.Sign(&Admin{ID: "no-such-id", Username: "ghost"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+tok).Code)
}
