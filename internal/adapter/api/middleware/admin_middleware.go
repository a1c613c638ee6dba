package middleware

import (
	"github.com/labstack/echo/v4"

	"moverconnect/internal/domain/entity"
	"moverconnect/internal/domain/policy"
	"moverconnect/pkg/errors"
)

// AdminMiddleware gates the admin surface on the configured allow-list.
type AdminMiddleware struct {
	policy *policy.AccessPolicy
}

func NewAdminMiddleware(accessPolicy *policy.AccessPolicy) *AdminMiddleware {
	return &AdminMiddleware{
		policy: accessPolicy,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, ok := c.Get(ContextEmail).(string)
		if !ok {
			return errors.Unauthorized("Authentication required", nil)
		}

		if !m.policy.IsAdmin(email) {
			return errors.Forbidden("Admin privileges required", nil)
		}

		c.Set(ContextRole, entity.RoleAdmin)
		return next(c)
	}
}
