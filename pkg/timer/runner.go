// Package timer provides the blocking countdown display and the interactive prompts.
package timer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/pomodoro/pkg/domain"
)

// Runner renders countdowns and reads user answers
type Runner struct {
	in   *bufio.Reader
	out  io.Writer
	tick time.Duration

	labelColor *color.Color
	clockColor *color.Color
	warnColor  *color.Color
}

// Config holds runner configuration
type Config struct {
	In   io.Reader
	Out  io.Writer
	Tick time.Duration // wall time of one countdown second, defaults to 1s
}

// NewRunner creates a runner reading from cfg.In and writing to cfg.Out
func NewRunner(cfg Config) *Runner {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	return &Runner{
		in:         bufio.NewReader(cfg.In),
		out:        cfg.Out,
		tick:       cfg.Tick,
		labelColor: color.New(color.FgHiCyan, color.Bold),
		clockColor: color.New(color.FgHiWhite),
		warnColor:  color.New(color.FgYellow),
	}
}

// Countdown blocks for the given duration, redrawing the remaining time once per second.
// It returns true when the countdown finished and false when ctx was canceled,
// e.g. by Ctrl-C.
func (r *Runner) Countdown(ctx context.Context, label string, d time.Duration) bool {
	remaining := int(d / time.Second)
	lgr.Printf("[DEBUG] countdown %q started for %v", label, d)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for remaining > 0 {
		r.draw(label, remaining)
		if ctx.Err() != nil {
			return r.interrupted(label, remaining)
		}
		select {
		case <-ctx.Done():
			return r.interrupted(label, remaining)
		case <-ticker.C:
			remaining--
		}
	}
	r.draw(label, 0)
	fmt.Fprintln(r.out)
	r.labelColor.Fprintf(r.out, "%s finished!\n", label)
	lgr.Printf("[DEBUG] countdown %q finished", label)
	return true
}

// PromptRating asks for an optional productivity rating.
// Blank, invalid and out of range answers are skipped and reported with false.
func (r *Runner) PromptRating() (int, bool) {
	fmt.Fprintf(r.out, "How productive was this session? Rate %d-%d (Enter to skip): ", domain.MinRating, domain.MaxRating)
	line, err := r.readLine()
	if err != nil || line == "" {
		fmt.Fprintln(r.out, "Rating skipped.")
		return 0, false
	}
	v, err := strconv.Atoi(line)
	if err != nil || !domain.ValidRating(v) {
		r.warnColor.Fprintf(r.out, "Invalid rating %q, expected a number from %d to %d. Rating skipped.\n",
			line, domain.MinRating, domain.MaxRating)
		return 0, false
	}
	return v, true
}

// PromptInt asks for an integer in [lo, hi]. A blank answer keeps the current value
// and reports false, invalid answers are reported and re-prompted.
func (r *Runner) PromptInt(prompt string, current, lo, hi int) (int, bool) {
	for {
		fmt.Fprintf(r.out, "%s [%d-%d, current %d, Enter to keep]: ", prompt, lo, hi, current)
		line, err := r.readLine()
		if err != nil || line == "" {
			return current, false
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			r.warnColor.Fprintf(r.out, "%q is not a number, try again.\n", line)
			continue
		}
		if v < lo || v > hi {
			r.warnColor.Fprintf(r.out, "%d is out of range %d-%d, try again.\n", v, lo, hi)
			continue
		}
		return v, true
	}
}

// ReadChoice reads one trimmed input line, io.EOF is returned when input is exhausted
func (r *Runner) ReadChoice() (string, error) {
	return r.readLine()
}

// Warnf prints a highlighted warning line
func (r *Runner) Warnf(format string, args ...any) {
	r.warnColor.Fprintf(r.out, format+"\n", args...)
}

// Printf prints to the runner output
func (r *Runner) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Headerf prints a highlighted line
func (r *Runner) Headerf(format string, args ...any) {
	r.labelColor.Fprintf(r.out, format+"\n", args...)
}

func (r *Runner) interrupted(label string, remaining int) bool {
	fmt.Fprintln(r.out)
	r.warnColor.Fprintf(r.out, "%s interrupted with %s left\n", label, formatClock(remaining))
	lgr.Printf("[DEBUG] countdown %q interrupted, %ds left", label, remaining)
	return false
}

func (r *Runner) draw(label string, remaining int) {
	fmt.Fprint(r.out, "\r")
	r.labelColor.Fprintf(r.out, "%s ", label)
	r.clockColor.Fprintf(r.out, "%s", formatClock(remaining))
}

// readLine returns the next line without surrounding spaces. A final line without
// newline is returned as is, io.EOF only when nothing was read.
func (r *Runner) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// formatClock renders seconds as MM:SS
func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
