package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brewline/internal/domain"
)

const feedbackColumns = "id, customer_name, email, rating, feedback, submitted_at, created_at, updated_at"

type MySQLFeedbackRepository struct {
	db *sql.DB
}

func NewMySQLFeedbackRepository(db *sql.DB) *MySQLFeedbackRepository {
	return &MySQLFeedbackRepository{db: db}
}

func (r *MySQLFeedbackRepository) Insert(ctx context.Context, f *domain.Feedback) (uint, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (customer_name, email, rating, feedback, submitted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.CustomerName, f.Email, f.Rating, f.Feedback, f.SubmittedAt, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading feedback insert id: %w", err)
	}
	return uint(id), nil
}

// List returns a page of feedback entries newest-first, plus the total count.
func (r *MySQLFeedbackRepository) List(ctx context.Context, limit, offset int) ([]domain.Feedback, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting feedback: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM feedback
		ORDER BY submitted_at DESC, id DESC
		LIMIT ? OFFSET ?`, feedbackColumns),
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var entries []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(
			&f.ID, &f.CustomerName, &f.Email, &f.Rating, &f.Feedback,
			&f.SubmittedAt, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning feedback row: %w", err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating feedback rows: %w", err)
	}

	return entries, total, nil
}
