package http

import (
	"fmt"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyOrgID  = "auth.org_id"
	contextKeyUserID = "auth.user_id"
	contextKeyRole   = "auth.role"
)

// AuthClaims are the token claims the service relies on. Every request is
// scoped to org_id; role is only consulted by the manifest gate.
type AuthClaims struct {
	OrgID  string `json:"org_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the caller's tenant,
// user and role on the request context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code: codeUnauthorized, Message: err.Error(),
				})
			}

			claims := &AuthClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code: codeUnauthorized, Message: "invalid token",
				})
			}

			orgID, err := kernel.UUIDFromString(claims.OrgID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code: codeUnauthorized, Message: "token carries no valid org_id",
				})
			}
			userID, err := kernel.UUIDFromString(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code: codeUnauthorized, Message: "token carries no valid user_id",
				})
			}

			c.Set(contextKeyOrgID, orgID)
			c.Set(contextKeyUserID, userID)
			c.Set(contextKeyRole, claims.Role)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" {
		return "", fmt.Errorf("authorization header is required")
	}
	if !strings.HasPrefix(header, prefix) {
		return "", fmt.Errorf("authorization header must use the Bearer scheme")
	}
	return strings.TrimPrefix(header, prefix), nil
}

func callerOrgID(c echo.Context) kernel.UUID {
	orgID, _ := c.Get(contextKeyOrgID).(kernel.UUID)
	return orgID
}

func callerUserID(c echo.Context) kernel.UUID {
	userID, _ := c.Get(contextKeyUserID).(kernel.UUID)
	return userID
}

func callerRole(c echo.Context) string {
	role, _ := c.Get(contextKeyRole).(string)
	return role
}
