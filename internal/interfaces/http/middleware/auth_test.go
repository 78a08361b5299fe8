package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/auth"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
)

func newAuthRouter(t *testing.T, jwtService *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.RequireAuth(jwtService, testutil.NewMockLogger()), func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"user_id":        userID,
			"is_super_admin": middleware.IsSuperAdmin(c),
		})
	})
	return r
}

func TestRequireAuth_MissingToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15)
	r := newAuthRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15)
	r := newAuthRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongSigningKey(t *testing.T) {
	issuer := auth.NewJWTService("other-secret", 15)
	token, _, err := issuer.Issue(7, "user@example.com", false)
	require.NoError(t, err)

	jwtService := auth.NewJWTService("test-secret", 15)
	r := newAuthRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BearerToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15)
	token, _, err := jwtService.Issue(7, "user@example.com", true)
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"is_super_admin":true`)
}

func TestRequireAuth_CookieToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15)
	token, _, err := jwtService.Issue(3, "user@example.com", false)
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":3`)
}
