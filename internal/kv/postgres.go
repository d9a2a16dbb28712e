package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const pgChangeChannel = "ramadan_kv_changes"

const pgSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps values in a single kv table and uses LISTEN/NOTIFY as
// the cross-process change channel.
type PostgresStore struct {
	db       *sqlx.DB
	listener *pq.Listener
	id       string
	done     chan struct{}

	mu   sync.Mutex
	subs map[string][]func()
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	const maxRetries = 10
	const retryInterval = 2 * time.Second

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			break
		}
		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("kv: failed to connect to database, retrying in %s", retryInterval)
		time.Sleep(retryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("kv: could not connect to database after %d attempts: %w", maxRetries, err)
	}

	if _, err := db.Exec(pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: create kv table: %w", err)
	}

	listener := pq.NewListener(databaseURL, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("kv: listener event")
		}
	})
	if err := listener.Listen(pgChangeChannel); err != nil {
		listener.Close()
		db.Close()
		return nil, fmt.Errorf("kv: listen %s: %w", pgChangeChannel, err)
	}

	ps := &PostgresStore{
		db:       db,
		listener: listener,
		id:       instanceID(),
		done:     make(chan struct{}),
		subs:     map[string][]func(){},
	}
	go ps.listen()
	return ps, nil
}

func (ps *PostgresStore) Get(key string) ([]byte, bool) {
	var raw []byte
	err := ps.db.Get(&raw, `SELECT value FROM kv WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv: postgres read failed")
		return nil, false
	}
	return raw, true
}

func (ps *PostgresStore) Set(key string, value []byte) error {
	_, err := ps.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return err
	}
	if _, err := ps.db.Exec(`SELECT pg_notify($1, $2)`, pgChangeChannel, ps.id+" "+key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv: change notify failed")
	}
	return nil
}

func (ps *PostgresStore) Subscribe(key string, fn func()) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.subs[key] = append(ps.subs[key], fn)
}

func (ps *PostgresStore) Close() error {
	close(ps.done)
	if err := ps.listener.Close(); err != nil {
		return err
	}
	return ps.db.Close()
}

func (ps *PostgresStore) listen() {
	for {
		select {
		case <-ps.done:
			return
		case n := <-ps.listener.Notify:
			if n == nil {
				// listener reconnected; nothing to replay
				continue
			}
			writer, key, ok := strings.Cut(n.Extra, " ")
			if !ok || writer == ps.id {
				continue
			}

			ps.mu.Lock()
			fns := append([]func(){}, ps.subs[key]...)
			ps.mu.Unlock()

			log.Debug().Str("key", key).Msg("kv: external change")
			for _, fn := range fns {
				fn()
			}
		}
	}
}
