package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

func allPrayers(done bool) map[string]bool {
	prayers := map[string]bool{}
	for _, name := range model.PrayerNames {
		prayers[name] = done
	}
	return prayers
}

func logWithPrayers(date string, done bool) model.DailyLog {
	logEntry := model.NewDailyLog(date)
	logEntry.Prayers = allPrayers(done)
	return logEntry
}

func fullSalah(p *Provider) model.Streak {
	return p.Data().Streaks[model.StreakFullSalah]
}

func TestStreakCountsConsecutiveCompleteDays(t *testing.T) {
	p, _ := testProvider(t, testNow) // today is 2026-03-02

	data := model.NewAppData()
	data.DailyLogs["2026-02-28"] = logWithPrayers("2026-02-28", true)
	data.DailyLogs["2026-03-01"] = logWithPrayers("2026-03-01", true)
	p.SetData(data)

	// Today is incomplete so the streak still ends yesterday.
	streak := fullSalah(p)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 2, streak.Longest)
	assert.Equal(t, "2026-03-01", streak.LastDate)

	p.UpdateDailyLog(LogPatch{Prayers: allPrayers(true)})

	streak = fullSalah(p)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
	assert.Equal(t, "2026-03-02", streak.LastDate)
}

func TestStreakResetsOnGap(t *testing.T) {
	p, _ := testProvider(t, testNow)

	data := model.NewAppData()
	data.DailyLogs["2026-02-26"] = logWithPrayers("2026-02-26", true)
	data.DailyLogs["2026-02-27"] = logWithPrayers("2026-02-27", true)
	// 2026-02-28 has a log but a missed prayer.
	broken := logWithPrayers("2026-02-28", true)
	broken.Prayers["asr"] = false
	data.DailyLogs["2026-02-28"] = broken
	data.DailyLogs["2026-03-01"] = logWithPrayers("2026-03-01", true)
	p.SetData(data)

	streak := fullSalah(p)
	assert.Equal(t, 1, streak.Current, "gap days cut the run")
	assert.Equal(t, "2026-03-01", streak.LastDate)
}

func TestStreakLongestIsHighWater(t *testing.T) {
	p, _ := testProvider(t, testNow)

	data := model.NewAppData()
	data.DailyLogs["2026-02-25"] = logWithPrayers("2026-02-25", true)
	data.DailyLogs["2026-02-26"] = logWithPrayers("2026-02-26", true)
	data.DailyLogs["2026-02-27"] = logWithPrayers("2026-02-27", true)
	p.SetData(data)

	// Run of 3, but it does not reach yesterday.
	streak := fullSalah(p)
	assert.Equal(t, 0, streak.Current)

	// Start a new shorter run; longest must not shrink.
	p.UpdateDailyLog(LogPatch{Prayers: allPrayers(true)})
	data = p.Data()
	data.Streaks[model.StreakFullSalah] = model.Streak{Current: 1, Longest: 5, LastDate: "2026-03-02"}
	p.SetData(data)

	streak = fullSalah(p)
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, 5, streak.Longest)
}

func TestStreakUncheckingTodayFallsBackToYesterday(t *testing.T) {
	p, _ := testProvider(t, testNow)

	data := model.NewAppData()
	data.DailyLogs["2026-03-01"] = logWithPrayers("2026-03-01", true)
	p.SetData(data)
	p.UpdateDailyLog(LogPatch{Prayers: allPrayers(true)})
	assert.Equal(t, 2, fullSalah(p).Current)

	missed := allPrayers(true)
	missed["isha"] = false
	p.UpdateDailyLog(LogPatch{Prayers: missed})

	streak := fullSalah(p)
	assert.Equal(t, 1, streak.Current)
	assert.Equal(t, "2026-03-01", streak.LastDate)
}
