package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

func fixtureData(goalType string, count int, pagesByDate map[string]int) model.AppData {
	data := model.NewAppData()
	data.Settings.RamadanStartDate = "2026-02-20"
	data.Settings.QuranGoal = model.QuranGoal{Type: goalType, Count: count}
	for date, pages := range pagesByDate {
		logEntry := model.NewDailyLog(date)
		logEntry.QuranPages = pages
		data.DailyLogs[date] = logEntry
	}
	return data
}

func TestComputeQuranProgressKhatam(t *testing.T) {
	data := fixtureData("khatam", 1, map[string]int{
		"2026-02-20": 100,
		"2026-02-25": 100,
	})

	got := ComputeQuranProgress(data, model.DefaultQuranMetadata(), "2026-03-01")

	assert.Equal(t, 604, got.TargetTotal)
	assert.Equal(t, 200, got.TotalRead)
	assert.Equal(t, 404, got.RemainingPages)
	assert.Equal(t, 10, got.DaysPassed)
	assert.Equal(t, 20, got.DaysRemaining)
	assert.Equal(t, 21, got.SuggestedDaily, "ceil(404/20)")
}

func TestComputeQuranProgressPagesGoal(t *testing.T) {
	data := fixtureData("pages", 20, map[string]int{"2026-02-20": 15})

	got := ComputeQuranProgress(data, model.DefaultQuranMetadata(), "2026-02-21")

	assert.Equal(t, 600, got.TargetTotal, "20 pages x 30 days")
	assert.Equal(t, 15, got.TotalRead)
	assert.Equal(t, 585, got.RemainingPages)
	assert.Equal(t, 2, got.DaysPassed)
	assert.Equal(t, 28, got.DaysRemaining)
	assert.Equal(t, 21, got.SuggestedDaily, "ceil(585/28)")
}

func TestComputeQuranProgressOvershoot(t *testing.T) {
	data := fixtureData("pages", 1, map[string]int{"2026-02-20": 500})

	got := ComputeQuranProgress(data, model.DefaultQuranMetadata(), "2026-02-21")

	assert.Equal(t, 0, got.RemainingPages)
	assert.Equal(t, 0, got.SuggestedDaily)
}

func TestComputeQuranProgressAfterMonthEnds(t *testing.T) {
	data := fixtureData("khatam", 1, nil)

	got := ComputeQuranProgress(data, model.DefaultQuranMetadata(), "2026-03-25")

	assert.Equal(t, 0, got.DaysRemaining)
	assert.Equal(t, 0, got.SuggestedDaily, "no division by zero past the month")
}

func TestJuzForPage(t *testing.T) {
	assert.Equal(t, 1, JuzForPage(1))
	assert.Equal(t, 1, JuzForPage(21))
	assert.Equal(t, 2, JuzForPage(22))
	assert.Equal(t, 30, JuzForPage(604))
	assert.Equal(t, 30, JuzForPage(9999), "past the table lands on the last juz")
}

func TestRamadanDay(t *testing.T) {
	assert.Equal(t, 1, RamadanDay("2026-02-20", "2026-02-20"))
	assert.Equal(t, 10, RamadanDay("2026-03-01", "2026-02-20"))
	assert.Equal(t, 30, RamadanDay("2026-03-21", "2026-02-20"))
	assert.Equal(t, 0, RamadanDay("2026-03-22", "2026-02-20"), "past the month")
	assert.Equal(t, 0, RamadanDay("2026-02-19", "2026-02-20"), "before the month")
}

func TestRamadanDayFallsBackOnBlankStart(t *testing.T) {
	assert.Equal(t, 1, RamadanDay(model.FallbackRamadanStart, ""))
}

func TestCalendar(t *testing.T) {
	days := Calendar("2026-02-20")

	assert.Len(t, days, model.RamadanDays)
	assert.Equal(t, CalendarDay{Date: "2026-02-20", DayNumber: 1}, days[0])
	assert.Equal(t, CalendarDay{Date: "2026-03-21", DayNumber: 30}, days[29])
}
