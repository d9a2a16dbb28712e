// Package seed ships the bundled read-only reference data: built-in dhikr,
// the hadith rotation, the city-to-country table for the prayer-times service,
// and the mushaf page-to-juz ranges.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	builtInDhikr []model.Dhikr
	hadithList   []model.Hadith
	cities       []model.CityEntry
	juzRanges    []model.JuzRange
)

func init() {
	mustLoad("data/dhikr.json", &builtInDhikr)
	mustLoad("data/hadith.json", &hadithList)
	mustLoad("data/cities.json", &cities)
	mustLoad("data/juz_pages.json", &juzRanges)
}

func mustLoad(name string, out any) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("seed: missing embedded file %s: %v", name, err))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("seed: malformed embedded file %s: %v", name, err))
	}
}

// BuiltInDhikr returns the default dhikr entries. Callers get a fresh slice;
// the seed set itself is never mutated.
func BuiltInDhikr() []model.Dhikr {
	out := make([]model.Dhikr, len(builtInDhikr))
	copy(out, builtInDhikr)
	return out
}

// IsBuiltInDhikr reports whether id names a seeded entry.
func IsBuiltInDhikr(id string) bool {
	for _, d := range builtInDhikr {
		if d.ID == id {
			return true
		}
	}
	return false
}

// HadithOfTheDay picks today's hadith by day-of-year modulo list length.
func HadithOfTheDay(t time.Time) model.Hadith {
	return hadithList[t.YearDay()%len(hadithList)]
}

// DefaultCountry is used when a city has no entry in the table.
const DefaultCountry = "Myanmar"

// CountryForCity resolves the country the prayer-times service expects,
// matching case-insensitively.
func CountryForCity(city string) string {
	for _, c := range cities {
		if strings.EqualFold(c.Name, city) {
			return c.Country
		}
	}
	return DefaultCountry
}

// JuzRanges returns the mushaf page-to-juz table in ascending page order.
func JuzRanges() []model.JuzRange {
	out := make([]model.JuzRange, len(juzRanges))
	copy(out, juzRanges)
	return out
}
