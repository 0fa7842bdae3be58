// Package schedule handles the cron-like expressions a backup schedule
// carries: a handful of named presets plus free-form 5-field expressions.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
)

// Presets maps the fixed schedule choices offered by the console to their
// cron expressions. Anything else is treated as a custom expression.
var Presets = map[string]string{
	"hourly":  "0 * * * *",
	"daily":   "0 3 * * *",
	"weekly":  "0 3 * * 0",
	"monthly": "0 3 1 * *",
}

var parser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// PresetNames returns the preset choices in stable order for display.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize resolves a preset name or validates a custom expression,
// returning the cron expression the backend stores.
func Normalize(s string) (string, error) {
	if expr, ok := Presets[s]; ok {
		return expr, nil
	}
	if _, err := parser.Parse(s); err != nil {
		return "", fmt.Errorf("invalid schedule %q: %w", s, err)
	}
	return s, nil
}

// ValidateKeepN enforces the retention lower bound: a schedule must keep
// at least one backup, otherwise the backend skips pruning entirely.
func ValidateKeepN(n int) error {
	if n < 1 {
		return fmt.Errorf("retention count must be at least 1, got %d", n)
	}
	return nil
}

// NextRun returns the first activation of the expression after from.
func NextRun(expr string, from time.Time) (time.Time, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return sched.Next(from), nil
}
