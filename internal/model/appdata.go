package model

// AppData is the root persisted document. A single instance lives for the
// lifetime of the process, owned by the state provider and written through
// the kv store under the "ramadanAppData" key.
type AppData struct {
	Settings    Settings            `json:"settings"`
	DailyLogs   map[string]DailyLog `json:"dailyLogs"` // key = "YYYY-MM-DD"
	DuaList     []Dua               `json:"duaList"`
	CustomDhikr []Dhikr             `json:"customDhikr"`
	Streaks     map[string]Streak   `json:"streaks"` // e.g. "fullSalah"
}

type Settings struct {
	City                 string    `json:"city"`
	CalculationMethod    string    `json:"calculationMethod"` // "MuslimWorldLeague", "Egyptian", ...
	Theme                string    `json:"theme"`             // auto | light | dark
	LastTenDaysMode      bool      `json:"lastTenDaysMode"`
	QuranGoal            QuranGoal `json:"quranGoal"`
	TaraweehGoal         int       `json:"taraweehGoal"` // 8 or 20 rak'ah preference
	ShowArabicHadith     bool      `json:"showArabicHadith"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	Username             string    `json:"username,omitempty"`
	RamadanStartDate     string    `json:"ramadanStartDate,omitempty"` // "YYYY-MM-DD"
}

type QuranGoal struct {
	Type        string `json:"type"`  // khatam | pages
	Count       int    `json:"count"` // 1 = one full khatam
	DailyTarget int    `json:"dailyTarget,omitempty"`
}

// DailyLog records one calendar date of worship. Logs are created lazily on
// first mutation for a date and merge-updated afterwards, never deleted.
type DailyLog struct {
	Date              string          `json:"date"`
	Prayers           map[string]bool `json:"prayers"`
	Taraweeh          int             `json:"taraweeh"`
	QuranPages        int             `json:"quranPages"`
	QuranLastLocation *QuranLocation  `json:"quranLastLocation,omitempty"`
	DhikrCounts       map[string]int  `json:"dhikrCounts"`
	Charity           float64         `json:"charity"`
	Discipline        map[string]bool `json:"discipline"`
	Mood              int             `json:"mood"` // 1-5
	Journal           string          `json:"journal"`
	Fasted            bool            `json:"fasted"`
}

type QuranLocation struct {
	SurahID int `json:"surahId"` // 1-114
	Ayah    int `json:"ayah"`
	Page    int `json:"page,omitempty"` // optional mushaf page reference
}

type Dua struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Arabic     string `json:"arabic,omitempty"`
	Category   string `json:"category,omitempty"`
	CreatedAt  string `json:"createdAt"` // RFC 3339, immutable after creation
	Answered   bool   `json:"answered"`
	AnsweredAt string `json:"answeredAt,omitempty"`
}

type Dhikr struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	Arabic        string `json:"arabic,omitempty"`
	DefaultTarget int    `json:"defaultTarget"`
	IsCustom      bool   `json:"isCustom"`
}

type Streak struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"lastDate"` // last date counted into Current
}

// StreakFullSalah is the one streak the provider maintains: consecutive days
// with all five prayers marked done.
const StreakFullSalah = "fullSalah"

// PrayerNames are the five daily prayers in order, as they key DailyLog.Prayers.
var PrayerNames = []string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

// DisciplineKeys are the self-discipline toggles tracked per day.
var DisciplineKeys = []string{"noGossip", "noComplaining", "loweredGaze", "controlledAnger", "guardedTongue"}

// FallbackRamadanStart is used when settings carry no explicit start date.
const FallbackRamadanStart = "2026-02-20"

// RamadanDays is the cycle length every goal is projected over.
const RamadanDays = 30

func DefaultSettings() Settings {
	return Settings{
		City:              "Saitama",
		CalculationMethod: "MuslimWorldLeague",
		Theme:             "auto",
		QuranGoal: QuranGoal{
			Type:        "khatam",
			Count:       1,
			DailyTarget: 20, // ~604 pages / 30 days
		},
		TaraweehGoal:     8,
		ShowArabicHadith: true,
	}
}

// NewAppData builds the default document written on first boot.
func NewAppData() AppData {
	return AppData{
		Settings:    DefaultSettings(),
		DailyLogs:   map[string]DailyLog{},
		DuaList:     []Dua{},
		CustomDhikr: []Dhikr{},
		Streaks: map[string]Streak{
			StreakFullSalah: {},
		},
	}
}

// NewDailyLog is the single canonical zero-valued log shape. Every code path
// that finds no log for a date must start from this.
func NewDailyLog(date string) DailyLog {
	prayers := make(map[string]bool, len(PrayerNames))
	for _, p := range PrayerNames {
		prayers[p] = false
	}
	discipline := make(map[string]bool, len(DisciplineKeys))
	for _, d := range DisciplineKeys {
		discipline[d] = false
	}
	return DailyLog{
		Date:        date,
		Prayers:     prayers,
		DhikrCounts: map[string]int{},
		Discipline:  discipline,
		Mood:        3,
		Journal:     "",
	}
}

// AllPrayersDone reports whether every one of the five prayers is marked.
func (l DailyLog) AllPrayersDone() bool {
	for _, p := range PrayerNames {
		if !l.Prayers[p] {
			return false
		}
	}
	return true
}
