package order

import (
	"database/sql"

	catalogrepo "brewline/internal/catalog/repository"
	"brewline/internal/config"
	"brewline/internal/order/controller"
	"brewline/internal/order/repository"
	"brewline/internal/order/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.Controller {
	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLOrderItemRepository(db)
	historyRepo := repository.NewMySQLStatusHistoryRepository(db)
	menuRepo := catalogrepo.NewMySQLMenuItemRepository(db)

	placementSvc := service.NewPlacementService(
		db,
		menuRepo,
		orderRepo,
		itemRepo,
		historyRepo,
		logger,
		cfg.Order.PlacementTxTimeout,
	)

	statusSvc := service.NewStatusService(db, orderRepo, historyRepo, logger)
	querySvc := service.NewQueryService(orderRepo, itemRepo, historyRepo)

	return controller.NewController(placementSvc, statusSvc, querySvc, logger)
}
