package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

func TestBuiltInDhikr(t *testing.T) {
	entries := BuiltInDhikr()

	require.Len(t, entries, 6)
	byID := map[string]model.Dhikr{}
	for _, d := range entries {
		assert.False(t, d.IsCustom)
		assert.NotEmpty(t, d.Label)
		byID[d.ID] = d
	}

	assert.Equal(t, 33, byID["subhanallah"].DefaultTarget)
	assert.Equal(t, 34, byID["allahu-akbar"].DefaultTarget)
	assert.Contains(t, byID, "astaghfirullah")
	assert.Contains(t, byID, "salawat")
	assert.Contains(t, byID, "la-ilaha-illallah")
}

func TestBuiltInDhikrReturnsCopy(t *testing.T) {
	first := BuiltInDhikr()
	first[0].Label = "mutated"

	assert.NotEqual(t, "mutated", BuiltInDhikr()[0].Label)
}

func TestIsBuiltInDhikr(t *testing.T) {
	assert.True(t, IsBuiltInDhikr("alhamdulillah"))
	assert.False(t, IsBuiltInDhikr("Alhamdulillah"), "ids match exactly")
	assert.False(t, IsBuiltInDhikr("my own dhikr"))
}

func TestCountryForCity(t *testing.T) {
	assert.Equal(t, "Japan", CountryForCity("Saitama"))
	assert.Equal(t, "Japan", CountryForCity("saitama"), "case-insensitive")
	assert.Equal(t, "Myanmar", CountryForCity("Yangon"))
	assert.Equal(t, DefaultCountry, CountryForCity("Atlantis"))
}

func TestJuzRangesCoverTheMushaf(t *testing.T) {
	ranges := JuzRanges()
	require.Len(t, ranges, 30)

	assert.Equal(t, 1, ranges[0].Juz)
	assert.Equal(t, 1, ranges[0].StartPage)
	assert.Equal(t, 30, ranges[29].Juz)
	assert.Equal(t, model.TotalMushafPages, ranges[29].EndPage)

	for i := 1; i < len(ranges); i++ {
		assert.Equal(t, ranges[i-1].EndPage+1, ranges[i].StartPage,
			"juz %d must start right after juz %d", ranges[i].Juz, ranges[i-1].Juz)
	}
}

func TestHadithOfTheDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first := HadithOfTheDay(day)
	assert.NotEmpty(t, first.Text)
	assert.NotEmpty(t, first.Source)

	// Stable within a day, rotates across days.
	assert.Equal(t, first, HadithOfTheDay(day.Add(6*time.Hour)))
	assert.NotEqual(t, first, HadithOfTheDay(day.AddDate(0, 0, 1)))
}
