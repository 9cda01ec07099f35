package catalog

import (
	"database/sql"

	"brewline/internal/catalog/controller"
	"brewline/internal/catalog/repository"
	"brewline/internal/catalog/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLMenuItemRepository(db)
	svc := service.NewMenuService(repo)
	return controller.NewController(svc, logger)
}
