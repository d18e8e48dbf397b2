package routes

import (
	"staff-directory/internal/config"
	"staff-directory/internal/database"
	"staff-directory/internal/delivery/http/handler"
	v1 "staff-directory/internal/delivery/http/routes/v1"
	"staff-directory/internal/infrastructure/legacy"
	"staff-directory/internal/logger"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, mirror *legacy.Mirror, log logger.Logger) {
	if app == nil {
		return
	}

	handler.NewHealthHandler(db).RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, mirror, log)
}
