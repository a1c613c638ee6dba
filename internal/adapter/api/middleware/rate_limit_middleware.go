package middleware

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"moverconnect/internal/infrastructure/ratelimit"
	"moverconnect/pkg/errors"
	"moverconnect/pkg/logger"
)

// RateLimit throttles action per client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			ok, wait := limiter.Allow(ip, action)
			if !ok {
				seconds := int(math.Ceil(wait.Seconds()))
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %ds)", ip, action, seconds)
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return errors.TooManyRequests(fmt.Sprintf("Too many attempts. Try again in %d seconds.", seconds))
			}

			return next(c)
		}
	}
}
