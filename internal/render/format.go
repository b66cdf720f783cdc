package render

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FitWidth truncates and pads on the right to fit a fixed display width.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Truncate by display width with ellipsis
	s = runewidth.Truncate(s, width, "...")
	// Pad on the right to exact width
	pad := width - runewidth.StringWidth(s)
	if pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// RightFit truncates and right-aligns/pads to width.
func RightFit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Truncate from the left by display width
	s = runewidth.TruncateLeft(s, width, "")
	// Pad on the left
	pad := width - runewidth.StringWidth(s)
	if pad > 0 {
		s = strings.Repeat(" ", pad) + s
	}
	return s
}

// FormatSize renders a message size for the list's size column.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-"
	}
	return humanize.Bytes(uint64(bytes))
}

// FormatDate renders a unix timestamp the way the message list shows dates:
// time for today, short date otherwise.
func FormatDate(unix int64) string {
	if unix <= 0 {
		return "-"
	}
	ts := time.Unix(unix, 0)
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("15:04")
	}
	if ts.Year() == now.Year() {
		return ts.Format("Jan 02")
	}
	return ts.Format("2006-01-02")
}

// FormatTags joins an envelope's tag list for the tags column.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
