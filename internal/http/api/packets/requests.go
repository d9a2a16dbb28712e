package packets

import "github.com/hilal-labs/ramadan-companion/internal/model"

// UpdateSettingsRequest replaces the settings block wholesale.
type UpdateSettingsRequest struct {
	City                 string          `json:"city" binding:"required"`
	CalculationMethod    string          `json:"calculationMethod" binding:"required"`
	Theme                string          `json:"theme" binding:"required,oneof=auto light dark"`
	LastTenDaysMode      bool            `json:"lastTenDaysMode"`
	QuranGoal            model.QuranGoal `json:"quranGoal" binding:"required"`
	TaraweehGoal         int             `json:"taraweehGoal" binding:"min=0"`
	ShowArabicHadith     bool            `json:"showArabicHadith"`
	NotificationsEnabled bool            `json:"notificationsEnabled"`
	Username             string          `json:"username"`
	RamadanStartDate     string          `json:"ramadanStartDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateLogRequest is a shallow merge onto today's log; nil fields are left
// untouched.
type UpdateLogRequest struct {
	Prayers           map[string]bool      `json:"prayers"`
	Taraweeh          *int                 `json:"taraweeh"`
	QuranPages        *int                 `json:"quranPages"`
	QuranLastLocation *model.QuranLocation `json:"quranLastLocation"`
	DhikrCounts       map[string]int       `json:"dhikrCounts"`
	Charity           *float64             `json:"charity"`
	Discipline        map[string]bool      `json:"discipline"`
	Mood              *int                 `json:"mood"`
	Journal           *string              `json:"journal"`
	Fasted            *bool                `json:"fasted"`
}

// IncrementCounterRequest bumps one of today's counters. Counter is
// "taraweeh", "quranPages" or "charity".
type IncrementCounterRequest struct {
	Counter string  `json:"counter" binding:"required,oneof=taraweeh quranPages charity"`
	Delta   float64 `json:"delta" binding:"required"`
}

// IncrementDhikrRequest bumps today's count for one dhikr id.
type IncrementDhikrRequest struct {
	ID    string `json:"id" binding:"required"`
	Delta int    `json:"delta" binding:"required"`
}

type AddDhikrRequest struct {
	Label string `json:"label" binding:"required"`
}

type EditDhikrRequest struct {
	Label string `json:"label" binding:"required"`
}

type AddDuaRequest struct {
	Text string `json:"text" binding:"required"`
}

type EditDuaRequest struct {
	Text string `json:"text" binding:"required"`
}

type BookmarkRequest struct {
	SurahID int `json:"surahId" binding:"required,min=1,max=114"`
	Ayah    int `json:"ayah" binding:"required,min=1"`
	Page    int `json:"page" binding:"omitempty,min=1"`
}
