// Package timeutil formats times and version markers for CLI output.
package timeutil

import (
	"fmt"
	"time"

	"github.com/marmos91/fileengine/pkg/fileengine"
)

// LocalTimeFormat is the format used for displaying local times in CLI output.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatTime returns t in local time, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(LocalTimeFormat)
}

// FormatVersion renders a version marker (unix seconds with an optional
// fraction, or RFC 3339) as a local time. Other markers are returned unchanged.
func FormatVersion(v string) string {
	if v == "" {
		return "-"
	}
	t, ok := fileengine.ParseVersionTime(v)
	if !ok {
		return v
	}
	return t.Local().Format(LocalTimeFormat)
}

// FormatBytes renders n with a binary unit.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
