package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/pomodoro/pkg/domain"
)

// AdjustmentRepository handles adaptive adjustment log operations
type AdjustmentRepository struct {
	db *sqlx.DB
}

type adjustmentRow struct {
	ID        int64     `db:"id"`
	Average   float64   `db:"average"`
	OldWork   int       `db:"old_work"`
	NewWork   int       `db:"new_work"`
	OldBreak  int       `db:"old_break"`
	NewBreak  int       `db:"new_break"`
	CreatedAt time.Time `db:"created_at"`
}

// NewAdjustmentRepository creates a new adjustment repository
func NewAdjustmentRepository(db *sqlx.DB) *AdjustmentRepository {
	return &AdjustmentRepository{db: db}
}

// Record stores an adjustment and sets its ID, zero CreatedAt is set to now
func (r *AdjustmentRepository) Record(ctx context.Context, a *domain.Adjustment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	row := adjustmentRow{
		Average:   a.Average,
		OldWork:   a.OldWork,
		NewWork:   a.NewWork,
		OldBreak:  a.OldBreak,
		NewBreak:  a.NewBreak,
		CreatedAt: a.CreatedAt.UTC(),
	}
	query := `
		INSERT INTO adjustments (average, old_work, new_work, old_break, new_break, created_at)
		VALUES (:average, :old_work, :new_work, :old_break, :new_break, :created_at)
	`
	return withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("record adjustment: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		a.ID = id
		return nil
	})
}

// Recent returns up to limit most recent adjustments, newest first
func (r *AdjustmentRepository) Recent(ctx context.Context, limit int) ([]domain.Adjustment, error) {
	var rows []adjustmentRow
	query := `
		SELECT id, average, old_work, new_work, old_break, new_break, created_at
		FROM adjustments
		ORDER BY id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent adjustments: %w", err)
	}

	res := make([]domain.Adjustment, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.Adjustment(row))
	}
	return res, nil
}
