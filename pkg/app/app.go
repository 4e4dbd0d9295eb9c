// Package app runs the interactive menu loop: work sessions with rating and adaptive
// adjustment, breaks, manual duration changes and statistics.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pomodoro/pkg/adapt"
	"github.com/umputun/pomodoro/pkg/domain"
)

//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal

// SettingsStore loads and persists settings
type SettingsStore interface {
	Load() domain.Settings
	Save(ctx context.Context, st domain.Settings) error
	MaxRatings() int
}

// Adapter adjusts durations from ratings
type Adapter interface {
	Adapt(st *domain.Settings) adapt.Result
}

// SessionRunner renders countdowns and reads user input
type SessionRunner interface {
	Countdown(ctx context.Context, label string, d time.Duration) bool
	PromptRating() (int, bool)
	PromptInt(prompt string, current, lo, hi int) (int, bool)
	ReadChoice() (string, error)
	Printf(format string, args ...any)
	Warnf(format string, args ...any)
	Headerf(format string, args ...any)
}

// Journal records sessions and adjustments, optional
type Journal interface {
	RecordSession(ctx context.Context, s *domain.Session) error
	SetSessionRating(ctx context.Context, id int64, rating int) error
	RecordAdjustment(ctx context.Context, a *domain.Adjustment) error
	Stats(ctx context.Context) (domain.Stats, error)
	RecentSessions(ctx context.Context, limit int) ([]domain.Session, error)
	RecentAdjustments(ctx context.Context, limit int) ([]domain.Adjustment, error)
}

// number of journal entries listed on the statistics screen
const recentLimit = 5

// menu choices
const (
	choiceWork   = 1
	choiceBreak  = 2
	choiceChange = 3
	choiceExit   = 4
	choiceStats  = 5
)

// App is the interactive pomodoro application
type App struct {
	store     SettingsStore
	engine    Adapter
	runner    SessionRunner
	journal   Journal
	limits    domain.Limits
	minute    time.Duration
	interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
	now       func() time.Time

	settings domain.Settings
}

// Config holds App dependencies and parameters
type Config struct {
	Store   SettingsStore
	Engine  Adapter
	Runner  SessionRunner
	Journal Journal // nil disables the journal
	Limits  domain.Limits

	// Minute is the length of one session minute, time.Minute unless overridden
	Minute time.Duration
	// Interrupt derives the context of a single countdown, canceled on Ctrl-C by default
	Interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
	Now       func() time.Time
}

// New creates the application
func New(cfg Config) *App {
	if cfg.Limits == (domain.Limits{}) {
		cfg.Limits = domain.DefaultLimits()
	}
	if cfg.Minute <= 0 {
		cfg.Minute = time.Minute
	}
	if cfg.Interrupt == nil {
		cfg.Interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &App{
		store:     cfg.Store,
		engine:    cfg.Engine,
		runner:    cfg.Runner,
		journal:   cfg.Journal,
		limits:    cfg.Limits,
		minute:    cfg.Minute,
		interrupt: cfg.Interrupt,
		now:       cfg.Now,
	}
}

// Run loads settings and serves the menu until exit, end of input or ctx cancellation
func (a *App) Run(ctx context.Context) error {
	a.settings = a.store.Load()
	lgr.Printf("[INFO] settings loaded, work %d min, break %d min, %d ratings",
		a.settings.WorkMinutes, a.settings.BreakMinutes, len(a.settings.Ratings))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.printMenu()

		line, err := a.runner.ReadChoice()
		if err != nil {
			a.runner.Printf("\n")
			lgr.Printf("[DEBUG] input closed: %v", err)
			a.runner.Printf("Bye!\n")
			return nil
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			a.runner.Warnf("Invalid choice %q, enter a number from %d to %d.", line, choiceWork, choiceStats)
			continue
		}

		switch choice {
		case choiceWork:
			a.startWork(ctx)
		case choiceBreak:
			a.startBreak(ctx)
		case choiceChange:
			a.changeDurations(ctx)
		case choiceExit:
			a.runner.Printf("Bye!\n")
			return nil
		case choiceStats:
			a.showStats(ctx)
		default:
			a.runner.Warnf("Unknown option %d, enter a number from %d to %d.", choice, choiceWork, choiceStats)
		}
	}
}

// Settings returns the current in-memory settings
func (a *App) Settings() domain.Settings {
	return a.settings
}

func (a *App) printMenu() {
	a.runner.Headerf("\n=== Pomodoro Timer ===")
	a.runner.Printf("Work: %d min | Break: %d min | %s\n", a.settings.WorkMinutes, a.settings.BreakMinutes, a.ratingSummary())
	a.runner.Printf("%d. Start work session\n", choiceWork)
	a.runner.Printf("%d. Start break\n", choiceBreak)
	a.runner.Printf("%d. Change durations\n", choiceChange)
	a.runner.Printf("%d. Exit\n", choiceExit)
	a.runner.Printf("%d. Show statistics\n", choiceStats)
	a.runner.Printf("Choose an option: ")
}

// startWork runs a work countdown, then asks for a rating and adapts durations
func (a *App) startWork(ctx context.Context) {
	sess, completed := a.countdown(ctx, domain.SessionWork, "Work", a.settings.WorkMinutes)
	if !completed {
		a.runner.Printf("Work session interrupted, no rating recorded.\n")
		return
	}

	rating, ok := a.runner.PromptRating()
	if !ok {
		return
	}

	a.settings.AddRating(rating, a.store.MaxRatings())
	if a.journal != nil && sess.ID != 0 {
		if err := a.journal.SetSessionRating(ctx, sess.ID, rating); err != nil {
			lgr.Printf("[WARN] can't record rating: %v", err)
		}
	}

	res := a.engine.Adapt(&a.settings)
	if res.Changed() {
		a.runner.Headerf("Average rating %.1f: next work %d min (was %d), break %d min (was %d).",
			res.Average, res.NewWork, res.OldWork, res.NewBreak, res.OldBreak)
		a.recordAdjustment(ctx, res)
	} else {
		a.runner.Printf("Average rating %.1f: durations unchanged.\n", res.Average)
	}
	a.save(ctx)
}

func (a *App) startBreak(ctx context.Context) {
	if _, completed := a.countdown(ctx, domain.SessionBreak, "Break", a.settings.BreakMinutes); !completed {
		a.runner.Printf("Break interrupted.\n")
	}
}

// countdown runs a single interruptible session and records it in the journal
func (a *App) countdown(ctx context.Context, kind domain.SessionKind, label string, minutes int) (*domain.Session, bool) {
	sessCtx, cancel := a.interrupt(ctx)
	defer cancel()

	a.runner.Printf("Starting %s for %d min, press Ctrl-C to stop.\n", strings.ToLower(label), minutes)
	lgr.Printf("[INFO] %s session started, %d min", kind, minutes)
	sess := &domain.Session{Kind: kind, PlannedMinutes: minutes, StartedAt: a.now()}
	sess.Completed = a.runner.Countdown(sessCtx, label, time.Duration(minutes)*a.minute)
	sess.EndedAt = a.now()
	lgr.Printf("[INFO] %s session ended, completed=%v", kind, sess.Completed)

	if a.journal != nil {
		if err := a.journal.RecordSession(ctx, sess); err != nil {
			lgr.Printf("[WARN] can't record %s session: %v", kind, err)
		}
	}
	return sess, sess.Completed
}

// changeDurations asks for new work and break minutes and saves them
func (a *App) changeDurations(ctx context.Context) {
	work, workChanged := a.runner.PromptInt("Work minutes", a.settings.WorkMinutes, a.limits.MinWork, a.limits.MaxWork)
	brk, breakChanged := a.runner.PromptInt("Break minutes", a.settings.BreakMinutes, a.limits.MinBreak, a.limits.MaxBreak)
	if !workChanged && !breakChanged {
		a.runner.Printf("Durations unchanged.\n")
		return
	}
	a.settings.WorkMinutes, a.settings.BreakMinutes = work, brk
	lgr.Printf("[INFO] durations changed manually, work %d min, break %d min", work, brk)
	a.runner.Printf("Durations set: work %d min, break %d min.\n", work, brk)
	a.save(ctx)
}

func (a *App) showStats(ctx context.Context) {
	a.runner.Headerf("\n--- Statistics ---")
	a.runner.Printf("Current durations: work %d min, break %d min\n", a.settings.WorkMinutes, a.settings.BreakMinutes)
	a.runner.Printf("Recent ratings: %s\n", formatRatings(a.settings.Ratings))
	a.runner.Printf("%s\n", a.ratingSummary())

	if a.journal == nil {
		a.runner.Printf("Session journal is disabled.\n")
		return
	}
	stats, err := a.journal.Stats(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't load journal stats: %v", err)
		a.runner.Warnf("Statistics are not available: %v", err)
		return
	}
	a.runner.Printf("Work sessions completed: %d, interrupted: %d\n", stats.WorkCompleted, stats.WorkInterrupted)
	a.runner.Printf("Breaks completed: %d\n", stats.BreaksCompleted)
	a.runner.Printf("Total focus time: %s\n", formatMinutes(stats.FocusMinutes))
	if stats.AverageRating != nil {
		a.runner.Printf("All-time average rating: %.2f\n", *stats.AverageRating)
	}
	a.showRecentSessions(ctx)
	a.showRecentAdjustments(ctx)
}

func (a *App) showRecentSessions(ctx context.Context) {
	sessions, err := a.journal.RecentSessions(ctx, recentLimit)
	if err != nil {
		lgr.Printf("[WARN] can't load recent sessions: %v", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	a.runner.Printf("Last sessions:\n")
	for _, s := range sessions {
		status := "interrupted"
		if s.Completed {
			status = "completed"
		}
		line := fmt.Sprintf("  %s  %-5s %3d min  %s", s.StartedAt.Local().Format("2006-01-02 15:04"), s.Kind, s.PlannedMinutes, status)
		if s.Rating > 0 {
			line += fmt.Sprintf(", rated %d", s.Rating)
		}
		a.runner.Printf("%s\n", line)
	}
}

func (a *App) showRecentAdjustments(ctx context.Context) {
	adjustments, err := a.journal.RecentAdjustments(ctx, recentLimit)
	if err != nil {
		lgr.Printf("[WARN] can't load recent adjustments: %v", err)
		return
	}
	if len(adjustments) == 0 {
		return
	}
	a.runner.Printf("Last adjustments:\n")
	for _, adj := range adjustments {
		a.runner.Printf("  %s  avg %.1f: work %d -> %d min, break %d -> %d min\n",
			adj.CreatedAt.Local().Format("2006-01-02 15:04"), adj.Average, adj.OldWork, adj.NewWork, adj.OldBreak, adj.NewBreak)
	}
}

func (a *App) recordAdjustment(ctx context.Context, res adapt.Result) {
	if a.journal == nil {
		return
	}
	adj := &domain.Adjustment{
		Average:   res.Average,
		OldWork:   res.OldWork,
		NewWork:   res.NewWork,
		OldBreak:  res.OldBreak,
		NewBreak:  res.NewBreak,
		CreatedAt: a.now(),
	}
	if err := a.journal.RecordAdjustment(ctx, adj); err != nil {
		lgr.Printf("[WARN] can't record adjustment: %v", err)
	}
}

// save persists settings, failures are reported but not fatal
func (a *App) save(ctx context.Context) {
	if err := a.store.Save(ctx, a.settings); err != nil {
		lgr.Printf("[WARN] failed to save settings: %v", err)
		a.runner.Warnf("Warning: settings were not saved: %v", err)
	}
}

func (a *App) ratingSummary() string {
	avg, ok := adapt.Average(a.settings.Ratings)
	if !ok {
		return "no ratings yet"
	}
	return fmt.Sprintf("avg rating %.1f of last %d", avg, len(a.settings.Ratings))
}

func formatRatings(ratings []int) string {
	if len(ratings) == 0 {
		return "none"
	}
	parts := make([]string, len(ratings))
	for i, r := range ratings {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, " ")
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}
