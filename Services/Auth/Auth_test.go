package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "vidhive/Models"
)

func testUser() *models.User {
	return &models.User{
		ID:          "user-1",
		Email:       "a@x.com",
		ChannelName: "channel-a",
		Phone:       "12345",
		LogoID:      "logos/abc.png",
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", hash)

	assert.True(t, CheckPasswordHash("p1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "channel-a", claims.ChannelName)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "12345", claims.Phone)
	assert.Equal(t, "logos/abc.png", claims.LogoID)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour)
	verifier := NewService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestCheckAuth(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "user-1", claims.ID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(testUser())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		svc.CheckAuth(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		svc.CheckAuth(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abcdef")
		rr := httptest.NewRecorder()

		svc.CheckAuth(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	// An invalid token is an auth failure, not a server error.
	t.Run("garbage token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()

		svc.CheckAuth(next).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
