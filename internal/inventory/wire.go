package inventory

import (
	"database/sql"

	"go.uber.org/zap"

	"brewline/internal/inventory/controller"
	"brewline/internal/inventory/repository"
	"brewline/internal/inventory/service"
)

// NewModule wires the inventory stack and returns its controller.
func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	itemRepo := repository.NewMySQLItemRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db)

	itemService := service.NewItemService(itemRepo, logger)
	procurementService := service.NewProcurementService(db, orderRepo, logger)

	return controller.NewController(itemService, procurementService, logger)
}
