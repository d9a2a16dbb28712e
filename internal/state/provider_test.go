package state

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

// memStore is an in-memory kv backend for provider tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	subs map[string][]func()
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, subs: map[string][]func(){}}
}

func (m *memStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	return raw, ok
}

func (m *memStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Subscribe(key string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[key] = append(m.subs[key], fn)
}

func (m *memStore) Close() error { return nil }

// notifyExternal mimics another process writing the key.
func (m *memStore) notifyExternal(key string, value []byte) {
	m.mu.Lock()
	m.data[key] = value
	fns := append([]func(){}, m.subs[key]...)
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

func testProvider(t *testing.T, now time.Time) (*Provider, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewProvider(store, fakeClock{t: now}), store
}

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)

func intPtr(n int) *int           { return &n }
func floatPtr(n float64) *float64 { return &n }
func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }

func TestLazyLogCreation(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.UpdateDailyLog(LogPatch{Mood: intPtr(4)})

	logEntry, ok := p.Data().DailyLogs["2026-03-02"]
	require.True(t, ok)
	assert.Equal(t, "2026-03-02", logEntry.Date)
	assert.Equal(t, 4, logEntry.Mood)
	assert.Equal(t, 0, logEntry.Taraweeh)
	assert.Equal(t, 0, logEntry.QuranPages)
	assert.Equal(t, "", logEntry.Journal)
	assert.False(t, logEntry.Fasted)
	for _, name := range model.PrayerNames {
		assert.False(t, logEntry.Prayers[name])
	}
}

func TestCounterClampingNeverNegative(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.IncrementCounter(CounterTaraweeh, -5)
	assert.Equal(t, 0, p.Data().DailyLogs[p.Today()].Taraweeh)

	p.IncrementCounter(CounterTaraweeh, 8)
	p.IncrementCounter(CounterTaraweeh, -20)
	assert.Equal(t, 0, p.Data().DailyLogs[p.Today()].Taraweeh)

	p.IncrementCounter(CounterQuranPages, 12)
	p.IncrementCounter(CounterQuranPages, -3)
	assert.Equal(t, 9, p.Data().DailyLogs[p.Today()].QuranPages)

	p.IncrementCounter(CounterCharity, -100)
	assert.Equal(t, 0.0, p.Data().DailyLogs[p.Today()].Charity)

	p.IncrementDhikr("subhanallah", 33)
	p.IncrementDhikr("subhanallah", -50)
	assert.Equal(t, 0, p.Data().DailyLogs[p.Today()].DhikrCounts["subhanallah"])
}

func TestUpdateDailyLogClampsAbsoluteValues(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.UpdateDailyLog(LogPatch{Taraweeh: intPtr(-4), QuranPages: intPtr(-1), Charity: floatPtr(-2)})

	logEntry := p.Data().DailyLogs[p.Today()]
	assert.Equal(t, 0, logEntry.Taraweeh)
	assert.Equal(t, 0, logEntry.QuranPages)
	assert.Equal(t, 0.0, logEntry.Charity)
}

func TestCustomDhikrLifecycle(t *testing.T) {
	p, _ := testProvider(t, testNow)

	// A prior day already counted this dhikr.
	p.SetData(func() model.AppData {
		data := model.NewAppData()
		old := model.NewDailyLog("2026-03-01")
		old.DhikrCounts["Astaghfirullah"] = 70
		data.DailyLogs["2026-03-01"] = old
		return data
	}())

	p.AddCustomDhikr("  Astaghfirullah  ")

	data := p.Data()
	require.Len(t, data.CustomDhikr, 1)
	assert.Equal(t, "Astaghfirullah", data.CustomDhikr[0].ID)
	assert.Equal(t, "Astaghfirullah", data.CustomDhikr[0].Label)
	assert.Equal(t, 33, data.CustomDhikr[0].DefaultTarget)
	assert.True(t, data.CustomDhikr[0].IsCustom)

	// Seeded with a zero count for today.
	count, ok := data.DailyLogs["2026-03-02"].DhikrCounts["Astaghfirullah"]
	require.True(t, ok)
	assert.Equal(t, 0, count)

	p.DeleteCustomDhikr("Astaghfirullah")

	data = p.Data()
	assert.Empty(t, data.CustomDhikr)
	_, ok = data.DailyLogs["2026-03-02"].DhikrCounts["Astaghfirullah"]
	assert.False(t, ok, "today's count must be removed")
	assert.Equal(t, 70, data.DailyLogs["2026-03-01"].DhikrCounts["Astaghfirullah"],
		"historical counts are never rewritten")
}

func TestAddCustomDhikrRejectsBlankAndCollisions(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.AddCustomDhikr("   ")
	assert.Empty(t, p.Data().CustomDhikr)

	// collides with a built-in id
	p.AddCustomDhikr("subhanallah")
	assert.Empty(t, p.Data().CustomDhikr)

	p.AddCustomDhikr("Hasbunallah")
	p.AddCustomDhikr("Hasbunallah")
	assert.Len(t, p.Data().CustomDhikr, 1)
}

func TestEditCustomDhikrKeepsID(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.AddCustomDhikr("Hasbunallah")
	p.EditCustomDhikr("Hasbunallah", "Hasbunallahu wa ni'mal wakeel")

	data := p.Data()
	require.Len(t, data.CustomDhikr, 1)
	assert.Equal(t, "Hasbunallah", data.CustomDhikr[0].ID, "id survives label edits")
	assert.Equal(t, "Hasbunallahu wa ni'mal wakeel", data.CustomDhikr[0].Label)

	p.EditCustomDhikr("Hasbunallah", "  ")
	assert.Equal(t, "Hasbunallahu wa ni'mal wakeel", p.Data().CustomDhikr[0].Label)
}

func TestDuaLifecycle(t *testing.T) {
	p, _ := testProvider(t, testNow)

	p.AddDua("  Guidance for my family  ")

	data := p.Data()
	require.Len(t, data.DuaList, 1)
	dua := data.DuaList[0]
	assert.True(t, strings.HasPrefix(dua.ID, "dua-"))
	assert.Equal(t, "Guidance for my family", dua.Text)
	assert.Equal(t, testNow.Format(time.RFC3339), dua.CreatedAt)
	assert.False(t, dua.Answered)

	p.EditDua(dua.ID, "Guidance and health for my family")
	assert.Equal(t, "Guidance and health for my family", p.Data().DuaList[0].Text)

	p.ToggleDuaAnswered(dua.ID)
	answered := p.Data().DuaList[0]
	assert.True(t, answered.Answered)
	assert.Equal(t, testNow.Format(time.RFC3339), answered.AnsweredAt)

	p.ToggleDuaAnswered(dua.ID)
	assert.False(t, p.Data().DuaList[0].Answered)
	assert.Empty(t, p.Data().DuaList[0].AnsweredAt)

	p.DeleteDua(dua.ID)
	assert.Empty(t, p.Data().DuaList)
}

func TestAddDuaBlankIsNoop(t *testing.T) {
	p, _ := testProvider(t, testNow)
	p.AddDua("   ")
	assert.Empty(t, p.Data().DuaList)
}

func TestMutationsPersistAcrossProviders(t *testing.T) {
	p, store := testProvider(t, testNow)

	p.AddDua("Sabr")
	p.UpdateDailyLog(LogPatch{Fasted: boolPtr(true)})

	// A fresh provider over the same store sees the same document.
	p2 := NewProvider(store, fakeClock{t: testNow})
	data := p2.Data()
	require.Len(t, data.DuaList, 1)
	assert.Equal(t, "Sabr", data.DuaList[0].Text)
	assert.True(t, data.DailyLogs["2026-03-02"].Fasted)
}

func TestExternalChangeRefreshesAndNotifies(t *testing.T) {
	p, store := testProvider(t, testNow)

	notified := 0
	p.Subscribe(func() { notified++ })

	other := model.NewAppData()
	other.Settings.Username = "yun"
	raw, err := json.Marshal(other)
	require.NoError(t, err)
	store.notifyExternal(DataKey, raw)

	assert.Equal(t, "yun", p.Data().Settings.Username)
	assert.Equal(t, 1, notified)
}

func TestSnapshotIsIsolated(t *testing.T) {
	p, _ := testProvider(t, testNow)
	p.UpdateDailyLog(LogPatch{Journal: strPtr("day one")})

	snapshot := p.Data()
	snapshot.DailyLogs["2026-03-02"] = model.DailyLog{Journal: "tampered"}

	assert.Equal(t, "day one", p.Data().DailyLogs["2026-03-02"].Journal)
}
