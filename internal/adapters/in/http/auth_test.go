package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, claims AuthClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	orgID := kernel.NewUUID()
	userID := kernel.NewUUID()

	e := echo.New()
	next := func(c echo.Context) error {
		assert.True(t, callerOrgID(c).IsEqual(orgID))
		assert.True(t, callerUserID(c).IsEqual(userID))
		assert.Equal(t, "warehouse", callerRole(c))
		return c.NoContent(http.StatusOK)
	}
	handler := AuthMiddleware(secret)(next)

	t.Run("valid token passes claims through", func(t *testing.T) {
		token := signToken(t, secret, AuthClaims{
			OrgID:  orgID.String(),
			UserID: userID.String(),
			Role:   "warehouse",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		token := signToken(t, []byte("other-secret"), AuthClaims{
			OrgID:  orgID.String(),
			UserID: userID.String(),
			Role:   "warehouse",
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		token := signToken(t, secret, AuthClaims{
			OrgID:  orgID.String(),
			UserID: userID.String(),
			Role:   "warehouse",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without org_id is unauthorized", func(t *testing.T) {
		token := signToken(t, secret, AuthClaims{
			UserID: userID.String(),
			Role:   "warehouse",
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
