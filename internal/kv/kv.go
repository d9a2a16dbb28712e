// Package kv is the persisted key/value layer the whole application state
// lives in. Values are JSON documents stored under string keys. Reads fall
// back to a caller-supplied default, writes are synchronous and best-effort,
// and a subscription fires when another process changes a key (the writing
// process itself gets no echo). Last write to the backend wins; there is no
// merge or conflict resolution.
package kv

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Store is a raw byte-level backend. Use Load/Save for typed access.
type Store interface {
	// Get returns the stored bytes for key, or ok=false if absent.
	Get(key string) ([]byte, bool)
	// Set stores value under key.
	Set(key string, value []byte) error
	// Subscribe registers fn to run when key is changed by a different
	// process. The local process is not notified of its own writes.
	Subscribe(key string, fn func())
	Close() error
}

// Load reads and decodes the value under key, returning def when the key is
// absent or the stored bytes do not decode. Failures are logged, never
// returned; persistence problems degrade to defaults.
func Load[T any](s Store, key string, def T) T {
	raw, ok := s.Get(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv: stored value unreadable, using default")
		return def
	}
	return v
}

// Save encodes v and writes it under key. Write failures are logged and
// swallowed; the in-memory state stays authoritative.
func Save(s Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("kv: could not encode value")
		return
	}
	if err := s.Set(key, raw); err != nil {
		log.Error().Err(err).Str("key", key).Msg("kv: write failed")
	}
}

// instanceID tags this process's writes so change notifications from its own
// writes can be dropped.
func instanceID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "local"
	}
	return hex.EncodeToString(b)
}
