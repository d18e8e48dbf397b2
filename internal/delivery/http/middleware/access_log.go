package middleware

import (
	"time"

	"staff-directory/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccessLogMiddleware struct {
	log logger.Logger
}

func NewAccessLogMiddleware(log logger.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{log: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		if m != nil && m.log != nil {
			m.log.Info("http access",
				zap.String("rid", rid),
				zap.String("ip", c.IP()),
				zap.String("method", c.Method()),
				zap.String("path", c.OriginalURL()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			)
		}

		return err
	}
}
