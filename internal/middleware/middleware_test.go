package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "test-secret"

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, uint) {
	t.Helper()
	e := echo.New()
	var seen uint
	e.GET("/", func(c echo.Context) error {
		seen = UserIDFromContext(c)
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

type userTable map[uint]*models.User

func (u userTable) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type brokenLookup struct{}

func (brokenLookup) GetUserByID(context.Context, uint) (*models.User, error) {
	return nil, errors.New("connection reset")
}

var users = userTable{7: {ID: 7, Username: "leo"}}

func TestJWTAuthMiddleware(t *testing.T) {
	token, err := SignToken(users[7], secret, time.Hour)
	require.NoError(t, err)

	rec, id := serve(t, JWTAuthMiddleware(secret, users), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), id)

	rec, _ = serve(t, JWTAuthMiddleware(secret, users), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, JWTAuthMiddleware("other-secret", users), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := SignToken(users[7], secret, -time.Minute)
	require.NoError(t, err)
	rec, _ = serve(t, JWTAuthMiddleware(secret, users), "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, JWTAuthMiddleware(secret, brokenLookup{}), "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestJWTAuthMiddlewareRejectsDeletedUser(t *testing.T) {
	token, err := SignToken(&models.User{ID: 8, Username: "gone"}, secret, time.Hour)
	require.NoError(t, err)

	rec, id := serve(t, JWTAuthMiddleware(secret, users), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, id)

	rec, _ = serve(t, OptionalJWTAuthMiddleware(secret, users), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	rec, id := serve(t, OptionalJWTAuthMiddleware(secret, users), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, id)

	rec, _ = serve(t, OptionalJWTAuthMiddleware(secret, users), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := SignToken(users[7], secret, time.Hour)
	require.NoError(t, err)
	rec, id = serve(t, OptionalJWTAuthMiddleware(secret, users), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), id)
}

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := f[idToken]
	if !ok {
		return nil, errors.New("token revoked")
	}
	return &auth.Token{UID: uid}, nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		token, ok := FirebaseTokenFromContext(c)
		require.True(t, ok)
		return c.String(http.StatusOK, token.UID)
	}, FirebaseAuthMiddleware(fakeVerifier{"good": "fb-1"}))

	for _, tc := range []struct {
		header string
		code   int
	}{
		{"Bearer good", http.StatusOK},
		{"Bearer bad", http.StatusUnauthorized},
		{"good", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tc.code, rec.Code, tc.header)
		if tc.code == http.StatusOK {
			assert.Equal(t, "fb-1", rec.Body.String())
		}
	}
}
