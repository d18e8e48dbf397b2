package middleware

import (
	"strings"

	"staff-directory/internal/tenant"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "identity.user_id"
	CtxTenantKey = "identity.tenant"

	headerUserID = "X-User-ID"
	headerTenant = "X-Tenant"
)

// IdentityMiddleware lifts the caller identity and origin tenant from
// headers set by the upstream routing/permission layer. There is no
// auth policy here: requests arrive already authenticated.
type IdentityMiddleware struct {
	defaultTenant tenant.ID
}

func NewIdentityMiddleware(defaultTenant tenant.ID) *IdentityMiddleware {
	return &IdentityMiddleware{defaultTenant: defaultTenant}
}

func (m *IdentityMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if raw := strings.TrimSpace(c.Get(headerUserID)); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Locals(CtxUserIDKey, id)
			}
		}

		t := m.defaultTenant
		if raw := strings.TrimSpace(c.Get(headerTenant)); raw != "" {
			t = tenant.ID(raw)
		}
		c.Locals(CtxTenantKey, t)

		return c.Next()
	}
}

// UserID extracts the caller identity placed by the middleware.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}

// Tenant extracts the request's origin tenant.
func Tenant(c fiber.Ctx, fallback tenant.ID) tenant.ID {
	if t, ok := c.Locals(CtxTenantKey).(tenant.ID); ok && t != "" {
		return t
	}
	return fallback
}
