package model

// PrayerTimes holds today's time-of-day strings ("HH:mm") as returned by the
// prayer-times service.
type PrayerTimes struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// Ordered returns the five prayers in day order, keyed by the same lowercase
// names DailyLog.Prayers uses.
func (t PrayerTimes) Ordered() []NamedTime {
	return []NamedTime{
		{Name: "fajr", Time: t.Fajr},
		{Name: "dhuhr", Time: t.Dhuhr},
		{Name: "asr", Time: t.Asr},
		{Name: "maghrib", Time: t.Maghrib},
		{Name: "isha", Time: t.Isha},
	}
}

type NamedTime struct {
	Name string `json:"name"`
	Time string `json:"time"` // "HH:mm"
}
