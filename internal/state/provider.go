// Package state owns the single AppData document for the lifetime of the
// process. All mutations go through the Provider, which persists through the
// kv store and notifies subscribers synchronously. Mutations silently no-op
// on blank or invalid input; the UI is forgiving rather than strict.
package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hilal-labs/ramadan-companion/internal/kv"
	"github.com/hilal-labs/ramadan-companion/internal/model"
	"github.com/hilal-labs/ramadan-companion/internal/seed"
)

// DataKey is the kv key the document is persisted under.
const DataKey = "ramadanAppData"

// Clock abstracts the system clock so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the real local time.
var SystemClock Clock = systemClock{}

// Provider is the state container. It re-hydrates from the store when
// another process writes the data key; there is no merge, last writer wins.
//
// Today() reads the clock on every call and is never cached, so a process
// running across midnight rolls over on its next operation. No rollover
// signal is sent; clients are expected to refresh.
type Provider struct {
	store kv.Store
	clock Clock

	mu        sync.Mutex
	data      model.AppData
	listeners []func()
}

func NewProvider(store kv.Store, clock Clock) *Provider {
	if clock == nil {
		clock = SystemClock
	}
	p := &Provider{store: store, clock: clock}
	p.data = kv.Load(store, DataKey, model.NewAppData())
	store.Subscribe(DataKey, p.refresh)
	return p
}

// Data returns a deep-copied snapshot of the current document.
func (p *Provider) Data() model.AppData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.Clone()
}

// Today is the local calendar date in YYYY-MM-DD form.
func (p *Provider) Today() string {
	return p.clock.Now().Format("2006-01-02")
}

// Now exposes the provider's clock for derived computations.
func (p *Provider) Now() time.Time {
	return p.clock.Now()
}

// Subscribe registers fn to run after every change to the document, both
// local mutations and external refreshes.
func (p *Provider) Subscribe(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// SetData replaces the whole document.
func (p *Provider) SetData(data model.AppData) {
	p.Update(func(model.AppData) model.AppData { return data })
}

// Update applies a pure previous-to-next function, persists the result and
// notifies subscribers.
func (p *Provider) Update(fn func(model.AppData) model.AppData) {
	p.mu.Lock()
	next := fn(p.data.Clone())
	recomputeFullSalah(&next, p.Today())
	p.data = next
	kv.Save(p.store, DataKey, p.data)
	fns := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// refresh re-hydrates after another process changed the stored document.
func (p *Provider) refresh() {
	p.mu.Lock()
	p.data = kv.Load(p.store, DataKey, model.NewAppData())
	fns := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	log.Debug().Msg("state: refreshed from store")
	for _, fn := range fns {
		fn()
	}
}

// LogPatch is a shallow merge onto today's log. Nil fields are left alone;
// present fields replace the log's field wholesale.
type LogPatch struct {
	Prayers           map[string]bool      `json:"prayers,omitempty"`
	Taraweeh          *int                 `json:"taraweeh,omitempty"`
	QuranPages        *int                 `json:"quranPages,omitempty"`
	QuranLastLocation *model.QuranLocation `json:"quranLastLocation,omitempty"`
	DhikrCounts       map[string]int       `json:"dhikrCounts,omitempty"`
	Charity           *float64             `json:"charity,omitempty"`
	Discipline        map[string]bool      `json:"discipline,omitempty"`
	Mood              *int                 `json:"mood,omitempty"`
	Journal           *string              `json:"journal,omitempty"`
	Fasted            *bool                `json:"fasted,omitempty"`
}

// UpdateDailyLog lazily creates today's log and shallow-merges the patch.
// Counters are clamped at zero, mood at the 1-5 scale.
func (p *Provider) UpdateDailyLog(patch LogPatch) {
	today := p.Today()
	p.Update(func(data model.AppData) model.AppData {
		logEntry := dayLog(data, today)
		if patch.Prayers != nil {
			logEntry.Prayers = patch.Prayers
		}
		if patch.Taraweeh != nil {
			logEntry.Taraweeh = clampInt(*patch.Taraweeh)
		}
		if patch.QuranPages != nil {
			logEntry.QuranPages = clampInt(*patch.QuranPages)
		}
		if patch.QuranLastLocation != nil {
			loc := *patch.QuranLastLocation
			logEntry.QuranLastLocation = &loc
		}
		if patch.DhikrCounts != nil {
			counts := make(map[string]int, len(patch.DhikrCounts))
			for id, n := range patch.DhikrCounts {
				counts[id] = clampInt(n)
			}
			logEntry.DhikrCounts = counts
		}
		if patch.Charity != nil {
			logEntry.Charity = clampFloat(*patch.Charity)
		}
		if patch.Discipline != nil {
			logEntry.Discipline = patch.Discipline
		}
		if patch.Mood != nil {
			logEntry.Mood = clampMood(*patch.Mood)
		}
		if patch.Journal != nil {
			logEntry.Journal = *patch.Journal
		}
		if patch.Fasted != nil {
			logEntry.Fasted = *patch.Fasted
		}
		data.DailyLogs[today] = logEntry
		return data
	})
}

// Counter names accepted by IncrementCounter.
const (
	CounterTaraweeh   = "taraweeh"
	CounterQuranPages = "quranPages"
	CounterCharity    = "charity"
)

// IncrementCounter adjusts one of today's counters by delta, never letting
// the result drop below zero. Dhikr counts use IncrementDhikr.
func (p *Provider) IncrementCounter(name string, delta float64) {
	today := p.Today()
	p.Update(func(data model.AppData) model.AppData {
		logEntry := dayLog(data, today)
		switch name {
		case CounterTaraweeh:
			logEntry.Taraweeh = clampInt(logEntry.Taraweeh + int(delta))
		case CounterQuranPages:
			logEntry.QuranPages = clampInt(logEntry.QuranPages + int(delta))
		case CounterCharity:
			logEntry.Charity = clampFloat(logEntry.Charity + delta)
		default:
			return data
		}
		data.DailyLogs[today] = logEntry
		return data
	})
}

// IncrementDhikr adjusts today's count for a dhikr id, clamped at zero.
func (p *Provider) IncrementDhikr(id string, delta int) {
	if strings.TrimSpace(id) == "" {
		return
	}
	today := p.Today()
	p.Update(func(data model.AppData) model.AppData {
		logEntry := dayLog(data, today)
		logEntry.DhikrCounts[id] = clampInt(logEntry.DhikrCounts[id] + delta)
		data.DailyLogs[today] = logEntry
		return data
	})
}

// AddCustomDhikr appends a custom dhikr whose id is the trimmed label, and
// seeds today's count at zero so it shows up immediately. Blank labels and
// id collisions with built-in or existing custom entries are no-ops.
func (p *Provider) AddCustomDhikr(label string) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return
	}
	if seed.IsBuiltInDhikr(trimmed) {
		log.Warn().Str("id", trimmed).Msg("state: custom dhikr collides with built-in")
		return
	}
	today := p.Today()
	p.Update(func(data model.AppData) model.AppData {
		for _, d := range data.CustomDhikr {
			if d.ID == trimmed {
				return data
			}
		}
		data.CustomDhikr = append(data.CustomDhikr, model.Dhikr{
			ID:            trimmed,
			Label:         trimmed,
			DefaultTarget: 33,
			IsCustom:      true,
		})
		logEntry := dayLog(data, today)
		logEntry.DhikrCounts[trimmed] = 0
		data.DailyLogs[today] = logEntry
		return data
	})
}

// EditCustomDhikr replaces the label of a custom entry. The id is kept even
// though it was derived from the old label, so historical count keys stay
// valid.
func (p *Provider) EditCustomDhikr(id, newLabel string) {
	trimmed := strings.TrimSpace(newLabel)
	if trimmed == "" {
		return
	}
	p.Update(func(data model.AppData) model.AppData {
		for i, d := range data.CustomDhikr {
			if d.ID == id {
				data.CustomDhikr[i].Label = trimmed
			}
		}
		return data
	})
}

// DeleteCustomDhikr removes the entry and its count in today's log only.
// Counts on past dates are intentionally left in place; history is not
// rewritten.
func (p *Provider) DeleteCustomDhikr(id string) {
	today := p.Today()
	p.Update(func(data model.AppData) model.AppData {
		kept := data.CustomDhikr[:0]
		for _, d := range data.CustomDhikr {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		data.CustomDhikr = kept
		if logEntry, ok := data.DailyLogs[today]; ok {
			if _, exists := logEntry.DhikrCounts[id]; exists {
				delete(logEntry.DhikrCounts, id)
				data.DailyLogs[today] = logEntry
			}
		}
		return data
	})
}

// AddDua appends a dua with a timestamp-derived id.
func (p *Provider) AddDua(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	now := p.clock.Now()
	p.Update(func(data model.AppData) model.AppData {
		data.DuaList = append(data.DuaList, model.Dua{
			ID:        fmt.Sprintf("dua-%d", now.UnixMilli()),
			Text:      trimmed,
			CreatedAt: now.Format(time.RFC3339),
		})
		return data
	})
}

func (p *Provider) EditDua(id, newText string) {
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return
	}
	p.Update(func(data model.AppData) model.AppData {
		for i, d := range data.DuaList {
			if d.ID == id {
				data.DuaList[i].Text = trimmed
			}
		}
		return data
	})
}

func (p *Provider) DeleteDua(id string) {
	p.Update(func(data model.AppData) model.AppData {
		kept := data.DuaList[:0]
		for _, d := range data.DuaList {
			if d.ID != id {
				kept = append(kept, d)
			}
		}
		data.DuaList = kept
		return data
	})
}

// ToggleDuaAnswered flips the answered flag, stamping or clearing AnsweredAt.
func (p *Provider) ToggleDuaAnswered(id string) {
	now := p.clock.Now()
	p.Update(func(data model.AppData) model.AppData {
		for i, d := range data.DuaList {
			if d.ID != id {
				continue
			}
			data.DuaList[i].Answered = !d.Answered
			if data.DuaList[i].Answered {
				data.DuaList[i].AnsweredAt = now.Format(time.RFC3339)
			} else {
				data.DuaList[i].AnsweredAt = ""
			}
		}
		return data
	})
}

// UpdateSettings replaces the settings block.
func (p *Provider) UpdateSettings(s model.Settings) {
	p.Update(func(data model.AppData) model.AppData {
		data.Settings = s
		return data
	})
}

// dayLog fetches the log for date or starts from the canonical default.
func dayLog(data model.AppData, date string) model.DailyLog {
	if logEntry, ok := data.DailyLogs[date]; ok {
		return logEntry
	}
	return model.NewDailyLog(date)
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampFloat(n float64) float64 {
	if n < 0 {
		return 0
	}
	return n
}

func clampMood(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
