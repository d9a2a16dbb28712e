package timesvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/kv"
	"github.com/hilal-labs/ramadan-companion/internal/model"
)

const quranBaseURL = "https://api.quran.com"

// MetadataKey is the kv key the chapter metadata is cached under.
const MetadataKey = "quranMetadata"

// QuranClient fetches the chapter list once and keeps it in the kv store
// indefinitely; the cache only refills after being cleared externally.
type QuranClient struct {
	httpClient *http.Client
	baseURL    string
	store      kv.Store
}

func NewQuranClient(store kv.Store) *QuranClient {
	return &QuranClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    quranBaseURL,
		store:      store,
	}
}

// SetBaseURL points the client at a different endpoint (tests).
func (c *QuranClient) SetBaseURL(u string) { c.baseURL = u }

// Metadata returns the cached chapter metadata, fetching it on first use.
// On fetch failure the defaults are returned alongside a displayable error.
func (c *QuranClient) Metadata(ctx context.Context) (model.QuranMetadata, error) {
	meta := kv.Load(c.store, MetadataKey, model.DefaultQuranMetadata())
	if len(meta.Surahs) > 0 {
		return meta, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v4/chapters?language=en", nil)
	if err != nil {
		return meta, fmt.Errorf("failed to fetch Quran metadata, using defaults")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("timesvc: quran metadata fetch failed")
		return meta, fmt.Errorf("failed to fetch Quran metadata, using defaults")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return meta, fmt.Errorf("failed to fetch Quran metadata, using defaults")
	}

	var payload struct {
		Chapters []struct {
			ID              int    `json:"id"`
			NameArabic      string `json:"name_arabic"`
			VersesCount     int    `json:"verses_count"`
			RevelationPlace string `json:"revelation_place"`
			TranslatedName  struct {
				Name string `json:"name"`
			} `json:"translated_name"`
		} `json:"chapters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return meta, fmt.Errorf("failed to fetch Quran metadata, using defaults")
	}

	surahs := make([]model.SurahInfo, 0, len(payload.Chapters))
	for _, ch := range payload.Chapters {
		revelation := "Medinan"
		if ch.RevelationPlace == "makkah" {
			revelation = "Meccan"
		}
		surahs = append(surahs, model.SurahInfo{
			ID:             ch.ID,
			Name:           ch.NameArabic,
			English:        ch.TranslatedName.Name,
			RevelationType: revelation,
			AyahCount:      ch.VersesCount,
		})
	}

	meta.Surahs = surahs
	kv.Save(c.store, MetadataKey, meta)
	return meta, nil
}
