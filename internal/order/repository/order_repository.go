package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"brewline/internal/domain"
	"brewline/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, customer_name, customer_phone, customer_email, total_amount,
	       order_status, payment_status, payment_method, special_instructions,
	       cancelled_at, cancellation_reason, cancelled_by, created_at, updated_at`

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, order domain.Order) (uint, error) {
	query := `
		INSERT INTO orders (customer_name, customer_phone, customer_email, total_amount,
		                    order_status, payment_status, payment_method, special_instructions,
		                    created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		order.CustomerName, order.CustomerPhone, order.CustomerEmail, order.TotalAmount,
		order.OrderStatus, order.PaymentStatus, order.PaymentMethod, order.SpecialInstructions,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = ?`, orderColumns)

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
		&order.TotalAmount, &order.OrderStatus, &order.PaymentStatus, &order.PaymentMethod,
		&order.SpecialInstructions, &order.CancelledAt, &order.CancellationReason,
		&order.CancelledBy, &order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

type ListFilter struct {
	Status    string
	Phone     string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

func (r *MySQLOrderRepository) List(ctx context.Context, f ListFilter) ([]domain.Order, int, error) {
	var conds []string
	var args []interface{}

	if f.Status != "" {
		conds = append(conds, "order_status = ?")
		args = append(args, f.Status)
	}
	if f.Phone != "" {
		conds = append(conds, "customer_phone LIKE ?")
		args = append(args, "%"+f.Phone+"%")
	}
	if f.StartDate != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, *f.EndDate)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders %s`, where)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, orderColumns, where)

	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *MySQLOrderRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE customer_phone LIKE ?
		ORDER BY created_at DESC`, orderColumns)

	rows, err := r.db.QueryContext(ctx, query, "%"+phone+"%")
	if err != nil {
		return nil, fmt.Errorf("querying orders by phone: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	query := `UPDATE orders SET order_status = ?, updated_at = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateCancellation(ctx context.Context, tx *sql.Tx, id uint, reason, cancelledBy string, at time.Time) error {
	query := `
		UPDATE orders
		SET order_status = ?, cancelled_at = ?, cancellation_reason = ?, cancelled_by = ?, updated_at = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, query,
		domain.OrderStatusCancelled, at, reason, cancelledBy, at, id)
	if err != nil {
		return fmt.Errorf("cancelling order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) UpdatePayment(ctx context.Context, id uint, paymentStatus string, paymentMethod *string) error {
	query := `UPDATE orders SET payment_status = ?, updated_at = ? WHERE id = ?`
	args := []interface{}{paymentStatus, time.Now().UTC(), id}

	if paymentMethod != nil {
		query = `UPDATE orders SET payment_status = ?, payment_method = ?, updated_at = ? WHERE id = ?`
		args = []interface{}{paymentStatus, *paymentMethod, time.Now().UTC(), id}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerPhone, &order.CustomerEmail,
			&order.TotalAmount, &order.OrderStatus, &order.PaymentStatus, &order.PaymentMethod,
			&order.SpecialInstructions, &order.CancelledAt, &order.CancellationReason,
			&order.CancelledBy, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
