package model

// TotalMushafPages is the standard Madani mushaf page count.
const TotalMushafPages = 604

// SurahInfo is the per-chapter metadata extracted from the Quran service.
type SurahInfo struct {
	ID             int    `json:"id"` // 1-114
	Name           string `json:"name"`
	English        string `json:"english"`
	RevelationType string `json:"revelationType,omitempty"` // Meccan | Medinan
	AyahCount      int    `json:"ayahCount"`
}

// QuranMetadata is persisted under the "quranMetadata" key once fetched.
type QuranMetadata struct {
	Surahs     []SurahInfo `json:"surahs"`
	TotalPages int         `json:"totalPages"`
}

func DefaultQuranMetadata() QuranMetadata {
	return QuranMetadata{Surahs: []SurahInfo{}, TotalPages: TotalMushafPages}
}

// JuzRange maps an inclusive mushaf page range to its juz number.
type JuzRange struct {
	Juz       int `json:"juz"`
	StartPage int `json:"startPage"`
	EndPage   int `json:"endPage"`
}

type Hadith struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Arabic string `json:"arabic,omitempty"`
	Source string `json:"source"`
}

// CityEntry maps a city to the country the prayer-times service expects.
type CityEntry struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
