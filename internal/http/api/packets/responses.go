package packets

import (
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/progress"
)

// DhikrWithCount pairs a dhikr entry with today's count.
type DhikrWithCount struct {
	model.Dhikr
	TodayCount int `json:"todayCount"`
}

type DhikrListResponse struct {
	Dhikr []DhikrWithCount `json:"dhikr"`
}

type LogsResponse struct {
	Logs map[string]model.DailyLog `json:"logs"`
}

type DuaListResponse struct {
	Duas []model.Dua `json:"duas"`
}

// PrayersResponse carries today's timings plus the derived countdown state.
// Error is the inline user-facing message when the fetch failed; the rest of
// the fields then hold whatever cached data was available.
type PrayersResponse struct {
	City   string            `json:"city"`
	Date   string            `json:"date"`
	Times  model.PrayerTimes `json:"times"`
	Next   *NextPrayerInfo   `json:"next,omitempty"`
	Active string            `json:"active,omitempty"`
	Error  string            `json:"error,omitempty"`
}

type NextPrayerInfo struct {
	Name      string `json:"name"`
	At        string `json:"at"`        // "HH:mm"
	Countdown string `json:"countdown"` // "HH:MM:SS"
}

type QuranProgressResponse struct {
	progress.QuranProgress
	Bookmark *model.QuranLocation `json:"bookmark,omitempty"`
	Error    string               `json:"error,omitempty"`
}

type QuranMetadataResponse struct {
	model.QuranMetadata
	Error string `json:"error,omitempty"`
}

type DashboardResponse struct {
	Username    string          `json:"username,omitempty"`
	Today       string          `json:"today"`
	RamadanDay  int             `json:"ramadanDay"`
	Hadith      model.Hadith    `json:"hadith"`
	Streak      model.Streak    `json:"streak"`
	Next        *NextPrayerInfo `json:"next,omitempty"`
	Active      string          `json:"active,omitempty"`
	PrayerError string          `json:"prayerError,omitempty"`
}

type CalendarResponse struct {
	Days []progress.CalendarDay `json:"days"`
}

type BackupResponse struct {
	Location string `json:"location"`
}
