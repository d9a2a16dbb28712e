package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

var dayTimes = []model.NamedTime{
	{Name: "fajr", Time: "05:12"},
	{Name: "dhuhr", Time: "13:05"},
	{Name: "asr", Time: "16:30"},
	{Name: "maghrib", Time: "19:45"},
	{Name: "isha", Time: "21:00"},
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

func TestNextPicksUpcomingPrayer(t *testing.T) {
	now := at(14, 0)

	next := Next(dayTimes, now)

	require.NotNil(t, next)
	assert.Equal(t, "asr", next.Name)
	assert.Equal(t, at(16, 30), next.At)
	assert.Equal(t, "02:30:00", FormatCountdown(next.Remaining))
}

func TestNextRollsOverToTomorrowFajr(t *testing.T) {
	now := at(23, 50)

	next := Next(dayTimes, now)

	require.NotNil(t, next)
	assert.Equal(t, "fajr", next.Name)
	assert.Equal(t, at(5, 12).AddDate(0, 0, 1), next.At)
	assert.Equal(t, "05:22:00", FormatCountdown(next.Remaining))
}

func TestNextNilWhenNothingParses(t *testing.T) {
	assert.Nil(t, Next([]model.NamedTime{{Name: "fajr", Time: "bogus"}}, at(12, 0)))
}

func TestActiveWithinWindow(t *testing.T) {
	assert.Equal(t, "dhuhr", Active(dayTimes, at(13, 20), DefaultActiveWindow))
	assert.Equal(t, "", Active(dayTimes, at(13, 40), DefaultActiveWindow), "window expired")
	assert.Equal(t, "", Active(dayTimes, at(13, 0), DefaultActiveWindow), "not started yet")
}

func TestActiveWideWindowStillRespectsWindow(t *testing.T) {
	// With a two hour window 14:00 is still inside dhuhr's slot.
	assert.Equal(t, "dhuhr", Active(dayTimes, at(14, 0), 2*time.Hour))
}

func TestActiveYieldsToFollowingPrayer(t *testing.T) {
	// A window long enough to overlap asr: once asr starts, dhuhr is over.
	assert.Equal(t, "asr", Active(dayTimes, at(16, 35), 4*time.Hour))
}

func TestActiveExactStartInstant(t *testing.T) {
	assert.Equal(t, "maghrib", Active(dayTimes, at(19, 45), DefaultActiveWindow))
}

func TestActiveZeroWindowUsesDefault(t *testing.T) {
	assert.Equal(t, "isha", Active(dayTimes, at(21, 10), 0))
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCountdown(0))
	assert.Equal(t, "00:00:00", FormatCountdown(-5*time.Second))
	assert.Equal(t, "00:00:59", FormatCountdown(59*time.Second))
	assert.Equal(t, "01:02:03", FormatCountdown(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26:00:00", FormatCountdown(26*time.Hour), "hours are not wrapped at 24")
}

func TestTimesWithTimezoneSuffixParse(t *testing.T) {
	times := []model.NamedTime{{Name: "fajr", Time: "05:12 (EET)"}}

	next := Next(times, at(4, 0))

	require.NotNil(t, next)
	assert.Equal(t, at(5, 12), next.At)
}
