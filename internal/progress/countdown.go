package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

// DefaultActiveWindow is how long after its start a prayer counts as the
// "current" one, unless the next prayer begins sooner.
const DefaultActiveWindow = 30 * time.Minute

type NextPrayer struct {
	Name      string        `json:"name"`
	At        time.Time     `json:"at"`
	Remaining time.Duration `json:"-"`
}

// Next finds the prayer with the smallest non-negative time difference,
// projecting already-passed prayers onto tomorrow. With a full set of times
// there is always a next prayer; nil only when no time parses.
func Next(times []model.NamedTime, now time.Time) *NextPrayer {
	var next *NextPrayer
	for _, p := range times {
		at, ok := onDate(p.Time, now)
		if !ok {
			continue
		}
		diff := at.Sub(now)
		if diff < 0 {
			at = at.AddDate(0, 0, 1)
			diff = at.Sub(now)
		}
		if next == nil || diff < next.Remaining {
			next = &NextPrayer{Name: p.Name, At: at, Remaining: diff}
		}
	}
	return next
}

// Active returns the name of the prayer whose window the present instant
// falls in: at or after its start, within window, and before the following
// prayer's start. Empty when no prayer is current.
func Active(times []model.NamedTime, now time.Time, window time.Duration) string {
	if window <= 0 {
		window = DefaultActiveWindow
	}
	for i, p := range times {
		at, ok := onDate(p.Time, now)
		if !ok {
			continue
		}
		since := now.Sub(at)
		if since < 0 || since >= window {
			continue
		}
		if i+1 < len(times) {
			if following, ok := onDate(times[i+1].Time, now); ok && !now.Before(following) {
				continue
			}
		}
		return p.Name
	}
	return ""
}

// FormatCountdown renders a remaining duration as zero-padded "HH:MM:SS".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// onDate parses an "HH:mm" string onto now's calendar date and location.
// The service occasionally suffixes a timezone label ("05:12 (EET)"); only
// the leading clock time is used.
func onDate(clock string, now time.Time) (time.Time, bool) {
	clock = strings.TrimSpace(clock)
	if i := strings.IndexByte(clock, ' '); i > 0 {
		clock = clock[:i]
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), true
}
