package main

import (
	"context"

	"github.com/umputun/pomodoro/pkg/domain"
	"github.com/umputun/pomodoro/pkg/repository"
)

// JournalAdapter adapts the session and adjustment repositories to the app.Journal interface
type JournalAdapter struct {
	repos *repository.Repositories
}

// NewJournalAdapter creates a new journal adapter
func NewJournalAdapter(repos *repository.Repositories) *JournalAdapter {
	return &JournalAdapter{repos: repos}
}

// RecordSession stores a work or break session
func (a *JournalAdapter) RecordSession(ctx context.Context, s *domain.Session) error {
	return a.repos.Session.Record(ctx, s)
}

// SetSessionRating attaches a rating to a recorded session
func (a *JournalAdapter) SetSessionRating(ctx context.Context, id int64, rating int) error {
	return a.repos.Session.SetRating(ctx, id, rating)
}

// RecordAdjustment stores an adaptive duration change
func (a *JournalAdapter) RecordAdjustment(ctx context.Context, adj *domain.Adjustment) error {
	return a.repos.Adjustment.Record(ctx, adj)
}

// Stats returns aggregated session statistics
func (a *JournalAdapter) Stats(ctx context.Context) (domain.Stats, error) {
	return a.repos.Session.Stats(ctx)
}

// RecentSessions returns the latest sessions, newest first
func (a *JournalAdapter) RecentSessions(ctx context.Context, limit int) ([]domain.Session, error) {
	return a.repos.Session.Recent(ctx, limit)
}

// RecentAdjustments returns the latest adaptive changes, newest first
func (a *JournalAdapter) RecentAdjustments(ctx context.Context, limit int) ([]domain.Adjustment, error) {
	return a.repos.Adjustment.Recent(ctx, limit)
}
