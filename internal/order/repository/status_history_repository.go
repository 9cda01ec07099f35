package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"brewline/internal/domain"
)

type MySQLStatusHistoryRepository struct {
	db *sql.DB
}

func NewMySQLStatusHistoryRepository(db *sql.DB) *MySQLStatusHistoryRepository {
	return &MySQLStatusHistoryRepository{db: db}
}

func (r *MySQLStatusHistoryRepository) Insert(ctx context.Context, tx *sql.Tx, entry domain.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (order_id, old_status, new_status, changed_by, notes, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		entry.OrderID, entry.OldStatus, entry.NewStatus, entry.ChangedBy, entry.Notes, entry.ChangedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting status history: %w", err)
	}

	return nil
}

func (r *MySQLStatusHistoryRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderStatusHistory, error) {
	return r.findByOrderIDs(ctx, []uint{orderID})
}

func (r *MySQLStatusHistoryRepository) FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
	return r.findByOrderIDs(ctx, orderIDs)
}

func (r *MySQLStatusHistoryRepository) findByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderStatusHistory, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, 0, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, old_status, new_status, changed_by, notes, changed_at
		FROM order_status_history
		WHERE order_id IN (%s)
		ORDER BY changed_at DESC, id DESC`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying status history: %w", err)
	}
	defer rows.Close()

	var entries []domain.OrderStatusHistory
	for rows.Next() {
		var e domain.OrderStatusHistory
		err := rows.Scan(&e.ID, &e.OrderID, &e.OldStatus, &e.NewStatus, &e.ChangedBy, &e.Notes, &e.ChangedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning status history row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status history rows: %w", err)
	}

	return entries, nil
}
