// Package progress holds the pure read-side projections: Quran reading
// progress and prayer countdown state. Nothing here persists anything;
// everything is recomputed from the current document plus reference data.
package progress

import (
	"math"
	"time"

	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/seed"
)

const dateLayout = "2006-01-02"

type QuranProgress struct {
	TargetTotal    int `json:"targetTotal"`
	TotalRead      int `json:"totalRead"`
	RemainingPages int `json:"remainingPages"`
	DaysPassed     int `json:"daysPassed"`
	DaysRemaining  int `json:"daysRemaining"`
	SuggestedDaily int `json:"suggestedDaily"`
	CurrentJuz     int `json:"currentJuz"`
	GoalJuz        int `json:"goalJuz"`
}

// ComputeQuranProgress projects the reading goal over the 30-day cycle.
// Khatam goals target count*totalPages; page goals target count pages per day
// over the cycle.
func ComputeQuranProgress(data model.AppData, meta model.QuranMetadata, today string) QuranProgress {
	totalPages := meta.TotalPages
	if totalPages <= 0 {
		totalPages = model.TotalMushafPages
	}

	goal := data.Settings.QuranGoal
	targetTotal := goal.Count * model.RamadanDays
	if goal.Type == "khatam" {
		targetTotal = goal.Count * totalPages
	}

	totalRead := 0
	for _, logEntry := range data.DailyLogs {
		totalRead += logEntry.QuranPages
	}

	remaining := targetTotal - totalRead
	if remaining < 0 {
		remaining = 0
	}

	daysPassed := daysSinceStart(today, data.Settings.RamadanStartDate) + 1
	daysRemaining := model.RamadanDays - daysPassed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	suggested := 0
	if daysRemaining > 0 {
		suggested = int(math.Ceil(float64(remaining) / float64(daysRemaining)))
	}

	currentPage := totalRead + data.DailyLogs[today].QuranPages
	return QuranProgress{
		TargetTotal:    targetTotal,
		TotalRead:      totalRead,
		RemainingPages: remaining,
		DaysPassed:     daysPassed,
		DaysRemaining:  daysRemaining,
		SuggestedDaily: suggested,
		CurrentJuz:     JuzForPage(currentPage),
		GoalJuz:        JuzForPage(currentPage + suggested),
	}
}

// JuzForPage resolves a cumulative page count against the mushaf ranges.
// End pages are inclusive; anything past the table is juz 30.
func JuzForPage(page int) int {
	for _, r := range seed.JuzRanges() {
		if page >= r.StartPage && page <= r.EndPage {
			return r.Juz
		}
	}
	return 30
}

// RamadanDay returns the 1-30 day number for a date, or 0 outside the month.
func RamadanDay(today, startDate string) int {
	diff := daysSinceStart(today, startDate)
	if diff < 0 || diff >= model.RamadanDays {
		return 0
	}
	return diff + 1
}

type CalendarDay struct {
	Date      string `json:"date"`
	DayNumber int    `json:"dayNumber"`
}

// Calendar lists the 30 dates of the month from its start date.
func Calendar(startDate string) []CalendarDay {
	start := parseStart(startDate)
	days := make([]CalendarDay, 0, model.RamadanDays)
	for i := 0; i < model.RamadanDays; i++ {
		days = append(days, CalendarDay{
			Date:      start.AddDate(0, 0, i).Format(dateLayout),
			DayNumber: i + 1,
		})
	}
	return days
}

func daysSinceStart(today, startDate string) int {
	t, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0
	}
	return int(t.Sub(parseStart(startDate)).Hours() / 24)
}

func parseStart(startDate string) time.Time {
	if startDate != "" {
		if s, err := time.Parse(dateLayout, startDate); err == nil {
			return s
		}
	}
	s, _ := time.Parse(dateLayout, model.FallbackRamadanStart)
	return s
}
