package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/gfermin360/user-verification-api/internal/auth"
	"github.com/gfermin360/user-verification-api/internal/model"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := SessionClaimsFromContext(r.Context())
		require.True(t, ok)

		w.Write([]byte(claims.User.Email))
	})
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("test-audience", "test-issuer")

	token, err := jwtAuth.IssueSessionToken(&model.User{
		ID:    bson.NewObjectID(),
		Email: "a@x.com",
	}, testSecret, time.Hour)
	require.NoError(t, err)

	handler := JWTAuth(jwtAuth, testSecret)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", rec.Body.String())
}

func TestJWTAuthMissingHeader(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("test-audience", "test-issuer")
	handler := JWTAuth(jwtAuth, testSecret)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("test-audience", "test-issuer")
	handler := JWTAuth(jwtAuth, testSecret)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestJWTAuthInvalidToken(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("test-audience", "test-issuer")
	handler := JWTAuth(jwtAuth, testSecret)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("test-audience", "test-issuer")

	token, err := jwtAuth.IssueSessionToken(&model.User{
		ID:    bson.NewObjectID(),
		Email: "a@x.com",
	}, "other-secret", time.Hour)
	require.NoError(t, err)

	handler := JWTAuth(jwtAuth, testSecret)(protectedHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
