package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"brewline/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) BulkInsert(ctx context.Context, tx *sql.Tx, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	valueRows := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*7)
	for i, item := range items {
		valueRows[i] = "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			item.OrderID, item.MenuItemID, item.ItemName, item.ItemPrice,
			item.Quantity, item.SpecialInstructions, item.Subtotal,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO order_items (order_id, menu_item_id, item_name, item_price,
		                         quantity, special_instructions, subtotal)
		VALUES %s`, strings.Join(valueRows, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}

	return nil
}

func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, orderID uint) ([]domain.OrderItem, error) {
	return r.findByOrderIDs(ctx, []uint{orderID})
}

func (r *MySQLOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
	return r.findByOrderIDs(ctx, orderIDs)
}

func (r *MySQLOrderItemRepository) findByOrderIDs(ctx context.Context, orderIDs []uint) ([]domain.OrderItem, error) {
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
		SELECT id, order_id, menu_item_id, item_name, item_price,
		       quantity, special_instructions, subtotal, created_at
		FROM order_items
		WHERE order_id IN (%s)
		ORDER BY id ASC`, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName, &item.ItemPrice,
			&item.Quantity, &item.SpecialInstructions, &item.Subtotal, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
