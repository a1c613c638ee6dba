package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/service"
	"moverconnect/pkg/errors"
)

// Context keys set by Authenticate and RequireRole.
const (
	ContextUID   = "uid"
	ContextEmail = "email"
	ContextRole  = "role"
)

// RoleResolver maps an authenticated account to its role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, uid, email string) (entity.Role, error)
}

type AuthMiddleware struct {
	identity service.IdentityProvider
	roles    RoleResolver
}

func NewAuthMiddleware(identity service.IdentityProvider, roles RoleResolver) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		roles:    roles,
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c echo.Context) (string, bool) {
	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") == "" {
			return errors.Unauthorized("Authorization header is required", nil)
		}
		idToken, ok := BearerToken(c)
		if !ok {
			return errors.Unauthorized("Invalid authorization format", nil)
		}

		user, err := m.VerifyToken(c.Request().Context(), idToken)
		if err != nil {
			return err
		}

		c.Set(ContextUID, user.UID)
		c.Set(ContextEmail, user.Email)
		return next(c)
	}
}

// VerifyToken checks an ID token outside the middleware chain.
func (m *AuthMiddleware) VerifyToken(ctx context.Context, idToken string) (*service.AuthUser, error) {
	user, err := m.identity.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	return user, nil
}

// RequireRole resolves the caller's role and rejects roles not listed.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get(ContextUID).(string)
			email, _ := c.Get(ContextEmail).(string)
			if uid == "" {
				return errors.Unauthorized("Authentication required", nil)
			}

			role, err := m.roles.ResolveRole(c.Request().Context(), uid, email)
			if err != nil {
				return err
			}
			for _, r := range allowed {
				if r == role {
					c.Set(ContextRole, role)
					return next(c)
				}
			}
			return errors.Forbidden("This action is not available to your account", nil)
		}
	}
}
