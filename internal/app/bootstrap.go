package app

import (
	"fmt"
	"strings"

	"staff-directory/internal/config"
	"staff-directory/internal/delivery/http/middleware"
	"staff-directory/internal/delivery/http/routes"
	"staff-directory/internal/logger"
	"staff-directory/internal/tenant"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	routes.Register(f, c.Config, c.DB, c.Mirror, c.Log)

	return &App{Fiber: f}
}

// Bootstrap wires the container and the HTTP app. The returned cleanup
// releases the pool and the mirror connection.
func Bootstrap(cfg config.Config, log logger.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Log)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Log)
	app.Use(accessMw.Middleware())

	idMw := middleware.NewIdentityMiddleware(tenant.ID(c.Config.Directory.DefaultTenant))
	app.Use(idMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
