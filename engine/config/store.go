// Package config is the ambient configuration collaborator spec.md §6
// names but scopes out of the core: a YAML `engines.<id> -> EngineConfig`
// mapping, hot-reloaded from disk and published to readers through an
// atomic pointer swap so in-flight dispatches keep the snapshot they
// captured (spec.md §5).
//
// Grounded on the teacher's packages/engine/config/runtime.go
// RuntimeConfigManager (fsnotify watcher + yaml.v3 + mutex-guarded
// current config, swapped wholesale on change), trimmed of its rollout/
// A-B-testing/versioning machinery — none of that is part of this spec.
package config

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"metasearch/engine/models"
)

// file is the on-disk schema: engines.<id> -> EngineConfig. Unknown ids
// are ignored by readers; engines absent from the file get
// models.DefaultEngineConfig().
type file struct {
	Engines map[string]models.EngineConfig `yaml:"engines"`
}

// Store holds the current engine configuration snapshot behind an atomic
// pointer. Reload swaps the pointer; readers that already captured a
// snapshot via Snapshot() are unaffected by a later reload.
type Store struct {
	current atomic.Pointer[map[string]models.EngineConfig]
	path    string
	watcher *fsnotify.Watcher
	onLoad  func(error)
}

// NewStore builds a Store with an initial, empty configuration (every
// engine falls back to models.DefaultEngineConfig() until Load or a watched
// reload populates it).
func NewStore() *Store {
	s := &Store{}
	empty := map[string]models.EngineConfig{}
	s.current.Store(&empty)
	return s
}

// Load reads path once and installs it as the current snapshot.
func (s *Store) Load(path string) error {
	cfg, err := loadFile(path)
	if err != nil {
		return err
	}
	s.path = path
	s.current.Store(&cfg)
	return nil
}

// Snapshot returns the EngineConfig for id, falling back to defaults if id
// has no entry. This is what the registry calls at the start of every
// dispatch (spec.md §5: "the Registry reads a snapshot of the config
// atomically at the start of each dispatch").
func (s *Store) Snapshot(id string) models.EngineConfig {
	m := *s.current.Load()
	if cfg, ok := m[id]; ok {
		return cfg
	}
	return models.DefaultEngineConfig()
}

// Watch starts an fsnotify watcher on the Store's loaded path, reloading
// and atomically swapping the snapshot on every write event. onLoad, if
// non-nil, is called with the reload error (nil on success) after each
// attempt — the ambient logging layer hooks this to report reload
// failures without ever panicking the watch loop.
func (s *Store) Watch(onLoad func(error)) error {
	if s.path == "" {
		return fmt.Errorf("config: Watch called before Load")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: new watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("config: watch %s: %w", s.path, err)
	}
	s.watcher = watcher
	s.onLoad = onLoad

	go s.watchLoop()
	return nil
}

func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := loadFile(s.path)
			if err == nil {
				s.current.Store(&cfg)
			}
			if s.onLoad != nil {
				s.onLoad(err)
			}
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops the watcher, if one was started.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func loadFile(path string) (map[string]models.EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if f.Engines == nil {
		f.Engines = map[string]models.EngineConfig{}
	}
	return f.Engines, nil
}
