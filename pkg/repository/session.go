package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/pomodoro/pkg/domain"
)

// SessionRepository handles session journal operations
type SessionRepository struct {
	db *sqlx.DB
}

// sessionRow is the sessions table representation
type sessionRow struct {
	ID             int64     `db:"id"`
	Kind           string    `db:"kind"`
	PlannedMinutes int       `db:"planned_minutes"`
	Completed      bool      `db:"completed"`
	Rating         int       `db:"rating"`
	StartedAt      time.Time `db:"started_at"`
	EndedAt        time.Time `db:"ended_at"`
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Record inserts a finished or interrupted session and sets its ID
func (r *SessionRepository) Record(ctx context.Context, s *domain.Session) error {
	row := sessionRow{
		Kind:           string(s.Kind),
		PlannedMinutes: s.PlannedMinutes,
		Completed:      s.Completed,
		Rating:         s.Rating,
		StartedAt:      s.StartedAt.UTC(),
		EndedAt:        s.EndedAt.UTC(),
	}

	query := `
		INSERT INTO sessions (kind, planned_minutes, completed, rating, started_at, ended_at)
		VALUES (:kind, :planned_minutes, :completed, :rating, :started_at, :ended_at)
	`
	return withLockRetry(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return fmt.Errorf("record session: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		s.ID = id
		return nil
	})
}

// SetRating updates the rating of a recorded session
func (r *SessionRepository) SetRating(ctx context.Context, id int64, rating int) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE sessions SET rating = ? WHERE id = ?", rating, id)
		if err != nil {
			return fmt.Errorf("set session rating: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("get affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("set session rating: session %d not found", id)
		}
		return nil
	})
}

// Recent returns up to limit most recent sessions, newest first
func (r *SessionRepository) Recent(ctx context.Context, limit int) ([]domain.Session, error) {
	var rows []sessionRow
	query := `
		SELECT id, kind, planned_minutes, completed, rating, started_at, ended_at
		FROM sessions
		ORDER BY id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}

	res := make([]domain.Session, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.Session{
			ID:             row.ID,
			Kind:           domain.SessionKind(row.Kind),
			PlannedMinutes: row.PlannedMinutes,
			Completed:      row.Completed,
			Rating:         row.Rating,
			StartedAt:      row.StartedAt,
			EndedAt:        row.EndedAt,
		})
	}
	return res, nil
}

// Stats aggregates all recorded sessions
func (r *SessionRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var row struct {
		WorkCompleted   int             `db:"work_completed"`
		WorkInterrupted int             `db:"work_interrupted"`
		BreaksCompleted int             `db:"breaks_completed"`
		FocusMinutes    int             `db:"focus_minutes"`
		AverageRating   sql.NullFloat64 `db:"average_rating"`
	}
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'work' AND completed = 1 THEN 1 ELSE 0 END), 0) AS work_completed,
			COALESCE(SUM(CASE WHEN kind = 'work' AND completed = 0 THEN 1 ELSE 0 END), 0) AS work_interrupted,
			COALESCE(SUM(CASE WHEN kind = 'break' AND completed = 1 THEN 1 ELSE 0 END), 0) AS breaks_completed,
			COALESCE(SUM(CASE WHEN kind = 'work' AND completed = 1 THEN planned_minutes ELSE 0 END), 0) AS focus_minutes,
			AVG(CASE WHEN rating > 0 THEN rating END) AS average_rating
		FROM sessions
	`
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return domain.Stats{}, fmt.Errorf("get session stats: %w", err)
	}

	stats := domain.Stats{
		WorkCompleted:   row.WorkCompleted,
		WorkInterrupted: row.WorkInterrupted,
		BreaksCompleted: row.BreaksCompleted,
		FocusMinutes:    row.FocusMinutes,
	}
	if row.AverageRating.Valid {
		avg := row.AverageRating.Float64
		stats.AverageRating = &avg
	}
	return stats, nil
}
