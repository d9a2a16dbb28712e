// Package timesvc wraps the two outbound web services: the aladhan
// prayer-times API and the quran.com chapter metadata API. Both degrade to
// previously cached or default data on failure; errors carry user-facing
// messages.
package timesvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/seed"
)

const aladhanBaseURL = "https://api.aladhan.com"

// methodCodes maps the calculation-method identifier from settings to the
// service's numeric code.
var methodCodes = map[string]int{
	"MuslimWorldLeague":     2,
	"Egyptian":              5,
	"ISNA":                  1,
	"UmmAlQura":             4,
	"Karachi":               7,
	"Singapore":             8,
	"MoonsightingCommittee": 15,
	"Dubai":                 16,
	"Qatar":                 17,
	"Kuwait":                18,
	"Turkey":                13,
}

// defaultMethodCode is Muslim World League.
const defaultMethodCode = 2

// PrayerTimesClient fetches timings by city. When a Redis client is
// provided, a day's timings for a (city, method) pair are cached for 24
// hours; timings never change within a day.
type PrayerTimesClient struct {
	httpClient *http.Client
	baseURL    string
	cache      *redis.Client
}

func NewPrayerTimesClient(cache *redis.Client) *PrayerTimesClient {
	return &PrayerTimesClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    aladhanBaseURL,
		cache:      cache,
	}
}

// SetBaseURL points the client at a different endpoint (tests).
func (c *PrayerTimesClient) SetBaseURL(u string) { c.baseURL = u }

// TimingsByCity resolves the country from the seed city table and requests
// today's timings. The returned error message is suitable for direct display.
func (c *PrayerTimesClient) TimingsByCity(ctx context.Context, city, method, date string) (model.PrayerTimes, error) {
	if city == "" {
		return model.PrayerTimes{}, fmt.Errorf("please set your city in settings first")
	}
	country := seed.CountryForCity(city)

	cacheKey := fmt.Sprintf("prayer:%s:%s:%s", city, method, date)
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var times model.PrayerTimes
			if json.Unmarshal(raw, &times) == nil {
				return times, nil
			}
		}
	}

	code, ok := methodCodes[method]
	if !ok {
		code = defaultMethodCode
	}

	u := fmt.Sprintf("%s/v1/timingsByCity?city=%s&country=%s&method=%d&date=%s",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(country), code, url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PrayerTimes{}, fmt.Errorf("could not load times for %s, %s", city, country)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("timesvc: prayer times fetch failed")
		return model.PrayerTimes{}, fmt.Errorf("could not load times for %s, %s. Check the spelling?", city, country)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.PrayerTimes{}, fmt.Errorf("could not load times for %s, %s (HTTP %d)", city, country, resp.StatusCode)
	}

	var payload struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Data   struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.PrayerTimes{}, fmt.Errorf("could not load times for %s, %s", city, country)
	}
	if payload.Code != http.StatusOK {
		return model.PrayerTimes{}, fmt.Errorf("could not load times for %s, %s: %s", city, country, payload.Status)
	}

	times := model.PrayerTimes{
		Fajr:    payload.Data.Timings["Fajr"],
		Sunrise: payload.Data.Timings["Sunrise"],
		Dhuhr:   payload.Data.Timings["Dhuhr"],
		Asr:     payload.Data.Timings["Asr"],
		Maghrib: payload.Data.Timings["Maghrib"],
		Isha:    payload.Data.Timings["Isha"],
	}

	if c.cache != nil {
		if raw, err := json.Marshal(times); err == nil {
			if err := c.cache.Set(ctx, cacheKey, raw, 24*time.Hour).Err(); err != nil {
				log.Warn().Err(err).Msg("timesvc: could not cache prayer times")
			}
		}
	}
	return times, nil
}
