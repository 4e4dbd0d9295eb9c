package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pomodoro/pkg/adapt"
	"github.com/umputun/pomodoro/pkg/app/mocks"
	"github.com/umputun/pomodoro/pkg/domain"
	"github.com/umputun/pomodoro/pkg/settings"
	"github.com/umputun/pomodoro/pkg/timer"
)

type testEnv struct {
	app   *App
	store *settings.Store
	out   *bytes.Buffer
}

// newTestEnv makes an app with fast countdowns, seed is the initial settings file content
func newTestEnv(t *testing.T, input, seed string, journal Journal, interrupted bool) *testEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pomodoro_settings.json")
	if seed != "" {
		require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))
	}
	return newTestEnvWithStore(t, input, settings.NewStore(settings.Config{Path: path}), journal, interrupted)
}

func newTestEnvWithStore(t *testing.T, input string, store *settings.Store, journal Journal, interrupted bool) *testEnv {
	t.Helper()
	out := &bytes.Buffer{}
	runner := timer.NewRunner(timer.Config{In: strings.NewReader(input), Out: out, Tick: time.Millisecond})
	interrupt := func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		if interrupted {
			cancel()
		}
		return ctx, cancel
	}
	cfg := Config{
		Store:     store,
		Engine:    adapt.NewEngine(adapt.DefaultRules()),
		Runner:    runner,
		Limits:    domain.DefaultLimits(),
		Minute:    time.Second,
		Interrupt: interrupt,
	}
	if journal != nil {
		cfg.Journal = journal
	}
	return &testEnv{app: New(cfg), store: store, out: out}
}

func newJournalMock() *mocks.JournalMock {
	return &mocks.JournalMock{
		RecordSessionFunc: func(ctx context.Context, s *domain.Session) error {
			s.ID = 42
			return nil
		},
		SetSessionRatingFunc: func(ctx context.Context, id int64, rating int) error { return nil },
		RecordAdjustmentFunc: func(ctx context.Context, a *domain.Adjustment) error { return nil },
		StatsFunc: func(ctx context.Context) (domain.Stats, error) {
			return domain.Stats{}, nil
		},
		RecentSessionsFunc: func(ctx context.Context, limit int) ([]domain.Session, error) {
			return nil, nil
		},
		RecentAdjustmentsFunc: func(ctx context.Context, limit int) ([]domain.Adjustment, error) {
			return nil, nil
		},
	}
}

func TestApp_Run_MenuHandling(t *testing.T) {
	t.Run("exit", func(t *testing.T) {
		env := newTestEnv(t, "4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "=== Pomodoro Timer ===")
		assert.Contains(t, env.out.String(), "Work: 25 min | Break: 5 min | no ratings yet")
		assert.Contains(t, env.out.String(), "Bye!")

		// nothing changed, nothing written
		_, err := os.Stat(env.store.Path())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("end of input exits", func(t *testing.T) {
		env := newTestEnv(t, "", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Bye!")
	})

	t.Run("invalid choices are reported and re-prompted", func(t *testing.T) {
		env := newTestEnv(t, "abc\n9\n\n4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), `Invalid choice "abc"`)
		assert.Contains(t, env.out.String(), "Unknown option 9")
		assert.Contains(t, env.out.String(), `Invalid choice ""`)
		assert.Equal(t, 4, strings.Count(env.out.String(), "Choose an option"))
	})

	t.Run("canceled context", func(t *testing.T) {
		env := newTestEnv(t, "4\n", "", nil, false)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := env.app.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("shows loaded settings", func(t *testing.T) {
		env := newTestEnv(t, "4\n", `{"work_minutes": 40, "break_minutes": 10, "ratings": [4, 5]}`, nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Work: 40 min | Break: 10 min | avg rating 4.5 of last 2")
	})
}

func TestApp_WorkSession(t *testing.T) {
	t.Run("high rating lengthens work", func(t *testing.T) {
		journal := newJournalMock()
		env := newTestEnv(t, "1\n4\n4\n", `{"work_minutes": 25, "break_minutes": 5, "ratings": [4, 4, 4, 5]}`, journal, false)
		require.NoError(t, env.app.Run(context.Background()))

		assert.Contains(t, env.out.String(), "Work finished!")
		assert.Contains(t, env.out.String(), "Average rating 4.2: next work 30 min (was 25), break 4 min (was 5).")

		want := domain.Settings{WorkMinutes: 30, BreakMinutes: 4, Ratings: []int{4, 4, 4, 5, 4}}
		assert.Equal(t, want, env.app.Settings())
		assert.Equal(t, want, env.store.Load(), "settings persisted")

		require.Len(t, journal.RecordSessionCalls(), 1)
		sess := journal.RecordSessionCalls()[0].S
		assert.Equal(t, domain.SessionWork, sess.Kind)
		assert.Equal(t, 25, sess.PlannedMinutes)
		assert.True(t, sess.Completed)
		assert.False(t, sess.EndedAt.Before(sess.StartedAt))

		require.Len(t, journal.SetSessionRatingCalls(), 1)
		assert.Equal(t, int64(42), journal.SetSessionRatingCalls()[0].ID)
		assert.Equal(t, 4, journal.SetSessionRatingCalls()[0].Rating)

		require.Len(t, journal.RecordAdjustmentCalls(), 1)
		adj := journal.RecordAdjustmentCalls()[0].A
		assert.InDelta(t, 4.2, adj.Average, 0.0001)
		assert.Equal(t, 25, adj.OldWork)
		assert.Equal(t, 30, adj.NewWork)
		assert.Equal(t, 5, adj.OldBreak)
		assert.Equal(t, 4, adj.NewBreak)
	})

	t.Run("low rating shortens work", func(t *testing.T) {
		env := newTestEnv(t, "1\n2\n4\n", `{"work_minutes": 15, "break_minutes": 4, "ratings": []}`, nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Equal(t, domain.Settings{WorkMinutes: 10, BreakMinutes: 5, Ratings: []int{2}}, env.store.Load())
	})

	t.Run("middle rating keeps durations but saves rating", func(t *testing.T) {
		journal := newJournalMock()
		env := newTestEnv(t, "1\n3\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Average rating 3.0: durations unchanged.")
		assert.Equal(t, domain.Settings{WorkMinutes: 25, BreakMinutes: 5, Ratings: []int{3}}, env.store.Load())
		assert.Empty(t, journal.RecordAdjustmentCalls())
	})

	t.Run("skipped rating does not adapt", func(t *testing.T) {
		journal := newJournalMock()
		env := newTestEnv(t, "1\n\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Rating skipped.")
		assert.Equal(t, domain.Settings{WorkMinutes: 25, BreakMinutes: 5, Ratings: []int{}}, env.app.Settings())
		assert.Empty(t, journal.SetSessionRatingCalls())
		_, err := os.Stat(env.store.Path())
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("invalid rating does not adapt", func(t *testing.T) {
		env := newTestEnv(t, "1\n7\n4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), `Invalid rating "7"`)
		assert.Empty(t, env.app.Settings().Ratings)
	})

	t.Run("interrupted session skips rating", func(t *testing.T) {
		journal := newJournalMock()
		env := newTestEnv(t, "1\n4\n", "", journal, true)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Work interrupted")
		assert.Contains(t, env.out.String(), "no rating recorded")
		assert.NotContains(t, env.out.String(), "Rate 1-5")
		assert.Contains(t, env.out.String(), "Bye!")

		require.Len(t, journal.RecordSessionCalls(), 1)
		assert.False(t, journal.RecordSessionCalls()[0].S.Completed)
	})

	t.Run("rating history stays bounded", func(t *testing.T) {
		input := strings.Repeat("1\n3\n", 12) + "4\n"
		env := newTestEnv(t, input, "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Len(t, env.store.Load().Ratings, 10)
	})

	t.Run("journal failures are not fatal", func(t *testing.T) {
		journal := &mocks.JournalMock{
			RecordSessionFunc:    func(ctx context.Context, s *domain.Session) error { return errors.New("disk full") },
			RecordAdjustmentFunc: func(ctx context.Context, a *domain.Adjustment) error { return errors.New("disk full") },
		}
		env := newTestEnv(t, "1\n5\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Equal(t, 30, env.store.Load().WorkMinutes)
		assert.Len(t, journal.RecordAdjustmentCalls(), 1)
	})

	t.Run("save failure is a warning", func(t *testing.T) {
		store := settings.NewStore(settings.Config{Path: filepath.Join(t.TempDir(), "missing", "s.json")})
		env := newTestEnvWithStore(t, "1\n5\n4\n", store, nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Warning: settings were not saved")
		assert.Equal(t, 30, env.app.Settings().WorkMinutes, "in-memory settings still adapted")
	})
}

func TestApp_Break(t *testing.T) {
	t.Run("completed", func(t *testing.T) {
		journal := newJournalMock()
		env := newTestEnv(t, "2\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Starting break for 5 min")
		assert.Contains(t, env.out.String(), "Break finished!")
		assert.NotContains(t, env.out.String(), "Rate 1-5")

		require.Len(t, journal.RecordSessionCalls(), 1)
		assert.Equal(t, domain.SessionBreak, journal.RecordSessionCalls()[0].S.Kind)
		assert.True(t, journal.RecordSessionCalls()[0].S.Completed)
	})

	t.Run("interrupted", func(t *testing.T) {
		env := newTestEnv(t, "2\n4\n", "", nil, true)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Break interrupted.")
	})
}

func TestApp_ChangeDurations(t *testing.T) {
	t.Run("both values", func(t *testing.T) {
		env := newTestEnv(t, "3\n40\n8\n4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Durations set: work 40 min, break 8 min.")
		assert.Equal(t, domain.Settings{WorkMinutes: 40, BreakMinutes: 8, Ratings: []int{}}, env.store.Load())
	})

	t.Run("invalid value re-prompted, blank keeps", func(t *testing.T) {
		env := newTestEnv(t, "3\n99\n45\n\n4\n", `{"work_minutes": 25, "break_minutes": 6, "ratings": [2]}`, nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "99 is out of range 10-60")
		assert.Equal(t, domain.Settings{WorkMinutes: 45, BreakMinutes: 6, Ratings: []int{2}}, env.store.Load())
	})

	t.Run("nothing changed", func(t *testing.T) {
		env := newTestEnv(t, "3\n\n\n4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Durations unchanged.")
		_, err := os.Stat(env.store.Path())
		assert.True(t, os.IsNotExist(err))
	})
}

func TestApp_Stats(t *testing.T) {
	t.Run("with journal", func(t *testing.T) {
		avg := 4.25
		journal := newJournalMock()
		journal.StatsFunc = func(ctx context.Context) (domain.Stats, error) {
			return domain.Stats{WorkCompleted: 3, WorkInterrupted: 1, BreaksCompleted: 2, FocusMinutes: 85, AverageRating: &avg}, nil
		}
		env := newTestEnv(t, "5\n4\n", `{"ratings": [4, 5]}`, journal, false)
		require.NoError(t, env.app.Run(context.Background()))

		out := env.out.String()
		assert.Contains(t, out, "--- Statistics ---")
		assert.Contains(t, out, "Recent ratings: 4 5")
		assert.Contains(t, out, "Work sessions completed: 3, interrupted: 1")
		assert.Contains(t, out, "Breaks completed: 2")
		assert.Contains(t, out, "Total focus time: 1h 25m")
		assert.Contains(t, out, "All-time average rating: 4.25")
		assert.Len(t, journal.StatsCalls(), 1)
	})

	t.Run("recent sessions and adjustments", func(t *testing.T) {
		at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
		journal := newJournalMock()
		journal.RecentSessionsFunc = func(ctx context.Context, limit int) ([]domain.Session, error) {
			return []domain.Session{
				{ID: 2, Kind: domain.SessionBreak, PlannedMinutes: 4, Completed: false, StartedAt: at},
				{ID: 1, Kind: domain.SessionWork, PlannedMinutes: 25, Completed: true, Rating: 5, StartedAt: at},
			}, nil
		}
		journal.RecentAdjustmentsFunc = func(ctx context.Context, limit int) ([]domain.Adjustment, error) {
			return []domain.Adjustment{{ID: 1, Average: 4.5, OldWork: 25, NewWork: 30, OldBreak: 5, NewBreak: 4, CreatedAt: at}}, nil
		}
		env := newTestEnv(t, "5\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))

		out := env.out.String()
		assert.Contains(t, out, "Last sessions:")
		assert.Contains(t, out, "break   4 min  interrupted")
		assert.Contains(t, out, "work   25 min  completed, rated 5")
		assert.Contains(t, out, "Last adjustments:")
		assert.Contains(t, out, "avg 4.5: work 25 -> 30 min, break 5 -> 4 min")
		require.Len(t, journal.RecentSessionsCalls(), 1)
		assert.Equal(t, recentLimit, journal.RecentSessionsCalls()[0].Limit)
		require.Len(t, journal.RecentAdjustmentsCalls(), 1)
		assert.Equal(t, recentLimit, journal.RecentAdjustmentsCalls()[0].Limit)
	})

	t.Run("recent entries unavailable", func(t *testing.T) {
		journal := newJournalMock()
		journal.RecentSessionsFunc = func(ctx context.Context, limit int) ([]domain.Session, error) {
			return nil, errors.New("locked")
		}
		journal.RecentAdjustmentsFunc = func(ctx context.Context, limit int) ([]domain.Adjustment, error) {
			return nil, errors.New("locked")
		}
		env := newTestEnv(t, "5\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Work sessions completed: 0, interrupted: 0")
		assert.NotContains(t, env.out.String(), "Last sessions:")
		assert.NotContains(t, env.out.String(), "Last adjustments:")
	})

	t.Run("journal error", func(t *testing.T) {
		journal := newJournalMock()
		journal.StatsFunc = func(ctx context.Context) (domain.Stats, error) {
			return domain.Stats{}, errors.New("db closed")
		}
		env := newTestEnv(t, "5\n4\n", "", journal, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Statistics are not available: db closed")
	})

	t.Run("without journal", func(t *testing.T) {
		env := newTestEnv(t, "5\n4\n", "", nil, false)
		require.NoError(t, env.app.Run(context.Background()))
		assert.Contains(t, env.out.String(), "Recent ratings: none")
		assert.Contains(t, env.out.String(), "Session journal is disabled.")
	})
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0 min", formatMinutes(0))
	assert.Equal(t, "59 min", formatMinutes(59))
	assert.Equal(t, "1h 00m", formatMinutes(60))
	assert.Equal(t, "2h 05m", formatMinutes(125))
}
