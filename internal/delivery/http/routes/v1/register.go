package v1

import (
	"staff-directory/internal/config"
	"staff-directory/internal/database"
	"staff-directory/internal/delivery/http/handler"
	"staff-directory/internal/infrastructure/cache"
	"staff-directory/internal/infrastructure/legacy"
	"staff-directory/internal/logger"
	"staff-directory/internal/repository"
	"staff-directory/internal/tenant"
	"staff-directory/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, mirror *legacy.Mirror, log logger.Logger) {
	if r == nil {
		return
	}

	attrs := repository.NewPostgresAttributeRepository(db)
	profiles := repository.NewPostgresProfileQueryRepository(db)
	content := repository.NewPostgresContentRepository(db)

	listCache := cache.NewRedis(cfg.Redis, log)

	hydrator := usecase.NewHydrator(profiles, attrs)
	directoryUC := usecase.NewDirectoryUsecase(profiles, attrs, hydrator, listCache, log)
	orgChartUC := usecase.NewOrgChartUsecase(profiles, hydrator, log)
	bookmarkUC := usecase.NewBookmarkUsecase(attrs, content, mirror, tenant.ID(cfg.Directory.CanonicalTenant), log)
	colleagueUC := usecase.NewColleagueUsecase(directoryUC, cfg.Directory.MatchPoolSize, log)

	directoryHandler := handler.NewDirectoryHandler(directoryUC)
	orgChartHandler := handler.NewOrgChartHandler(orgChartUC)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkUC)
	colleagueHandler := handler.NewColleagueHandler(colleagueUC)

	directoryHandler.RegisterRoutes(r.Group("/directory"))
	orgChartHandler.RegisterRoutes(r.Group("/orgchart"))
	bookmarkHandler.RegisterRoutes(r.Group("/bookmarks"))
	bookmarkHandler.RegisterCollectionRoutes(r.Group("/collections"))
	colleagueHandler.RegisterRoutes(r.Group("/colleagues"))
}
