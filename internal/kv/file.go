package kv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// FileStore keeps one <key>.json file per key in a data directory. A
// directory watcher turns writes made by other processes into change
// notifications; this process's own writes are recognized by content and
// suppressed.
type FileStore struct {
	dir     string
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu          sync.Mutex
	lastWritten map[string][]byte
	subs        map[string][]func()
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv: create data dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("kv: start watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("kv: watch data dir: %w", err)
	}

	fs := &FileStore{
		dir:         dir,
		watcher:     watcher,
		done:        make(chan struct{}),
		lastWritten: map[string][]byte{},
		subs:        map[string][]func(){},
	}
	go fs.watch()
	return fs, nil
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("key", key).Msg("kv: read failed")
		}
		return nil, false
	}
	return raw, true
}

func (fs *FileStore) Set(key string, value []byte) error {
	fs.mu.Lock()
	fs.lastWritten[key] = append([]byte(nil), value...)
	fs.mu.Unlock()

	// Atomic replace so a concurrent reader never sees a torn file.
	tmp := fs.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, fs.path(key))
}

func (fs *FileStore) Subscribe(key string, fn func()) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.subs[key] = append(fs.subs[key], fn)
}

func (fs *FileStore) Close() error {
	close(fs.done)
	return fs.watcher.Close()
}

func (fs *FileStore) watch() {
	for {
		select {
		case <-fs.done:
			return
		case event, ok := <-fs.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".json") {
				continue
			}
			fs.dispatch(strings.TrimSuffix(name, ".json"))
		case err, ok := <-fs.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("kv: watcher error")
		}
	}
}

// dispatch fires subscribers for key unless the current file content is what
// this process last wrote (its own rename echoing back through the watcher).
func (fs *FileStore) dispatch(key string) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		return
	}

	fs.mu.Lock()
	if last, ok := fs.lastWritten[key]; ok && bytes.Equal(last, raw) {
		fs.mu.Unlock()
		return
	}
	fns := append([]func(){}, fs.subs[key]...)
	fs.mu.Unlock()

	log.Debug().Str("key", key).Msg("kv: external change")
	for _, fn := range fns {
		fn()
	}
}
