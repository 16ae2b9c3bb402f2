package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellandwilde/landing-be/internal/models"
)

func TestManager_GenerateAndValidate(t *testing.T) {
	m := NewManager("s3cret", time.Hour)

	token, err := m.Generate(models.User{ID: 7, Username: "admin"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestManager_UniqueTokenIDs(t *testing.T) {
	m := NewManager("s3cret", time.Hour)
	user := models.User{ID: 1, Username: "admin"}

	a, err := m.Generate(user)
	require.NoError(t, err)
	b, err := m.Generate(user)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).Generate(models.User{ID: 1})
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("s3cret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.Generate(models.User{ID: 1})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_RejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("s3cret", time.Hour).Validate(signed)
	assert.Error(t, err)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewManager("x", 0).TTL())
}

func TestMiddleware(t *testing.T) {
	m := NewManager("s3cret", time.Hour)
	token, err := m.Generate(models.User{ID: 3, Username: "ops"})
	require.NoError(t, err)

	var seen *Claims
	protected := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"garbage bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"basic scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusNoContent},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) }, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/subscribers", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "ops", seen.Username)
			} else {
				assert.Nil(t, seen)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), "message")
			}
		})
	}
}
