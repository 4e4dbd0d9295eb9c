// Package settings persists timer settings and the rating history in a local JSON file.
// Loading never fails: a missing, unreadable or malformed file yields defaults, and
// individual invalid values are coerced, clamped or dropped.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/invopop/jsonschema"

	"github.com/umputun/pomodoro/pkg/domain"
)

// DefaultPath is the settings file location relative to the working directory
const DefaultPath = "pomodoro_settings.json"

// Store loads and saves settings from a JSON file
type Store struct {
	path         string
	limits       domain.Limits
	defaultWork  int
	defaultBreak int
	maxRatings   int
}

// Config holds store configuration, zero values fall back to built-in defaults
type Config struct {
	Path         string
	Limits       domain.Limits
	DefaultWork  int
	DefaultBreak int
	MaxRatings   int
}

// NewStore creates a settings store
func NewStore(cfg Config) *Store {
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.Limits == (domain.Limits{}) {
		cfg.Limits = domain.DefaultLimits()
	}
	if cfg.DefaultWork <= 0 {
		cfg.DefaultWork = domain.DefaultWorkMinutes
	}
	if cfg.DefaultBreak <= 0 {
		cfg.DefaultBreak = domain.DefaultBreakMinutes
	}
	if cfg.MaxRatings <= 0 {
		cfg.MaxRatings = domain.MaxRatingHistory
	}
	return &Store{
		path:         cfg.Path,
		limits:       cfg.Limits,
		defaultWork:  cfg.DefaultWork,
		defaultBreak: cfg.DefaultBreak,
		maxRatings:   cfg.MaxRatings,
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Defaults returns fresh default settings with an empty rating history
func (s *Store) Defaults() domain.Settings {
	return domain.Settings{WorkMinutes: s.defaultWork, BreakMinutes: s.defaultBreak, Ratings: []int{}}
}

// Load reads settings from the file. It never fails, any problem with the file
// results in defaults being returned.
func (s *Store) Load() domain.Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			lgr.Printf("[WARN] can't read settings from %s, using defaults: %v", s.path, err)
		}
		return s.Defaults()
	}

	st, err := s.parse(data)
	if err != nil {
		lgr.Printf("[WARN] invalid settings in %s, using defaults: %v", s.path, err)
		return s.Defaults()
	}
	lgr.Printf("[DEBUG] loaded settings from %s: work=%d, break=%d, ratings=%v", s.path, st.WorkMinutes, st.BreakMinutes, st.Ratings)
	return st
}

// Save normalizes and writes settings to the file. The file is replaced atomically,
// transient write failures are retried.
func (s *Store) Save(ctx context.Context, st domain.Settings) error {
	st = s.Normalize(st)
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	retrier := repeater.NewBackoff(3, 20*time.Millisecond, repeater.WithMaxDelay(200*time.Millisecond))
	if err := retrier.Do(ctx, func() error { return writeFileAtomic(s.path, data) }); err != nil {
		return fmt.Errorf("save settings to %s: %w", s.path, err)
	}
	lgr.Printf("[DEBUG] saved settings to %s", s.path)
	return nil
}

// Normalize enforces settings invariants: durations within limits (non-positive
// values replaced by defaults), valid ratings only, bounded history.
func (s *Store) Normalize(st domain.Settings) domain.Settings {
	res := domain.Settings{WorkMinutes: st.WorkMinutes, BreakMinutes: st.BreakMinutes}
	if res.WorkMinutes <= 0 {
		res.WorkMinutes = s.defaultWork
	}
	if res.BreakMinutes <= 0 {
		res.BreakMinutes = s.defaultBreak
	}
	res.WorkMinutes = s.limits.ClampWork(res.WorkMinutes)
	res.BreakMinutes = s.limits.ClampBreak(res.BreakMinutes)

	ratings := make([]int, 0, len(st.Ratings))
	for _, r := range st.Ratings {
		if domain.ValidRating(r) {
			ratings = append(ratings, r)
		}
	}
	res.Ratings = domain.LastRatings(ratings, s.maxRatings)
	return res
}

// MaxRatings returns the size of the kept rating history
func (s *Store) MaxRatings() int {
	return s.maxRatings
}

// parse decodes a loosely typed settings document
func (s *Store) parse(data []byte) (domain.Settings, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	work, err := coerceInt(raw, "work_minutes", s.defaultWork)
	if err != nil {
		return domain.Settings{}, err
	}
	brk, err := coerceInt(raw, "break_minutes", s.defaultBreak)
	if err != nil {
		return domain.Settings{}, err
	}

	st := domain.Settings{WorkMinutes: work, BreakMinutes: brk}
	if list, ok := raw["ratings"].([]any); ok {
		for _, v := range list {
			if r, ok := ratingValue(v); ok {
				st.Ratings = append(st.Ratings, r)
			}
		}
	}
	return s.Normalize(st), nil
}

// coerceInt converts a json value to int, missing keys yield def.
// Numbers are truncated, numeric strings parsed, anything else is an error.
func coerceInt(raw map[string]any, key string, def int) (int, error) {
	v, ok := raw[key]
	if !ok {
		return def, nil
	}
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return saturate(float64(i)), nil
		}
		f, err := val.Float64()
		if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(f) {
			return 0, fmt.Errorf("%s: invalid number %q", key, val.String())
		}
		return saturate(math.Trunc(f)), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%s: not an integer %q", key, val)
		}
		return saturate(float64(i)), nil
	default:
		return 0, fmt.Errorf("%s: unsupported value %v", key, v)
	}
}

// saturate limits f to the int32 range, so oversized values clamp instead of overflowing
func saturate(f float64) int {
	return int(max(min(f, math.MaxInt32), math.MinInt32))
}

// ratingValue accepts only integral json numbers within the rating range
func ratingValue(v any) (int, bool) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := num.Int64()
	if err != nil || !domain.ValidRating(int(i)) {
		return 0, false
	}
	return int(i), true
}

// writeFileAtomic writes data to a temp file in the target directory and renames it
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pomodoro-settings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // settings are not sensitive
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Schema returns a JSON schema describing the settings file
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{DoNotReference: true}
	return r.Reflect(&domain.Settings{})
}
