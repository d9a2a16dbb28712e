package timesvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

// memStore is a minimal in-memory kv backend.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok
}

func (m *memStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Subscribe(string, func()) {}
func (m *memStore) Close() error             { return nil }

const chaptersPayload = `{"chapters": [
	{"id": 1, "name_arabic": "الفاتحة", "verses_count": 7, "revelation_place": "makkah",
	 "translated_name": {"name": "The Opener"}},
	{"id": 2, "name_arabic": "البقرة", "verses_count": 286, "revelation_place": "madinah",
	 "translated_name": {"name": "The Cow"}}
]}`

func TestMetadataFetchesOnceAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/api/v4/chapters", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.Write([]byte(chaptersPayload))
	}))
	defer srv.Close()

	c := NewQuranClient(newMemStore())
	c.SetBaseURL(srv.URL)

	meta, err := c.Metadata(context.Background())
	require.NoError(t, err)
	require.Len(t, meta.Surahs, 2)
	assert.Equal(t, model.SurahInfo{
		ID:             1,
		Name:           "الفاتحة",
		English:        "The Opener",
		RevelationType: "Meccan",
		AyahCount:      7,
	}, meta.Surahs[0])
	assert.Equal(t, "Medinan", meta.Surahs[1].RevelationType)
	assert.Equal(t, model.TotalMushafPages, meta.TotalPages)

	// Second call is served from the store.
	again, err := c.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, meta, again)
	assert.Equal(t, 1, hits)
}

func TestMetadataFallsBackToDefaultsOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewQuranClient(newMemStore())
	c.SetBaseURL(srv.URL)

	meta, err := c.Metadata(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "using defaults")
	assert.Empty(t, meta.Surahs)
	assert.Equal(t, model.TotalMushafPages, meta.TotalPages)
}

func TestMetadataRecoversAfterFailure(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(chaptersPayload))
	}))
	defer srv.Close()

	c := NewQuranClient(newMemStore())
	c.SetBaseURL(srv.URL)

	_, err := c.Metadata(context.Background())
	require.Error(t, err, "failures are not cached")

	healthy = true
	meta, err := c.Metadata(context.Background())
	require.NoError(t, err)
	assert.Len(t, meta.Surahs, 2)
}
