package feedback

import (
	"database/sql"

	"go.uber.org/zap"

	"brewline/internal/feedback/controller"
	"brewline/internal/feedback/repository"
	"brewline/internal/feedback/service"
)

// NewModule wires the feedback stack and returns its controller.
func NewModule(db *sql.DB, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLFeedbackRepository(db)
	svc := service.NewFeedbackService(repo, logger)
	return controller.NewController(svc, logger)
}
