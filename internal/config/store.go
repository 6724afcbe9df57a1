package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
	"github.com/Maia-Everett/ghetto-skype/internal/ipc"
	"github.com/Maia-Everett/ghetto-skype/internal/logger"
	"github.com/Maia-Everett/ghetto-skype/internal/platform"
)

// File permissions for the settings file
const settingsFilePermissions = 0644

// Broadcaster delivers a message to every live window
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Store owns the live Settings. It is the only component allowed to mutate
// them.
type Store struct {
	mu          sync.RWMutex
	settings    Settings
	generation  uint64
	path        string
	broadcaster Broadcaster
	onPersisted []func()
	log         logger.Logger

	writeMu        sync.Mutex
	writtenVersion uint64
}

// NewStore creates a store holding initial and persisting to path
func NewStore(path string, initial Settings, broadcaster Broadcaster, log logger.Logger) *Store {
	if initial == nil {
		initial = Defaults()
	}
	return &Store{
		settings:    initial,
		path:        path,
		broadcaster: broadcaster,
		log:         log.With(logger.String("component", "settings")),
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// OnPersisted registers fn to run after every successful write
func (s *Store) OnPersisted(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPersisted = append(s.onPersisted, fn)
}

// Get returns a snapshot of the live settings without touching disk
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Save merges partial into the live settings, broadcasts the result to every
// window and writes it to disk in the background. The returned channel
// yields exactly one value: nil, or an *apperr.Error of kind KindPersist.
// Whether a write failure is fatal is up to the caller.
func (s *Store) Save(partial Settings) <-chan error {
	result := make(chan error, 1)

	s.mu.Lock()
	s.settings.Merge(partial)
	s.generation++
	version := s.generation
	snapshot := s.settings.Clone()
	hooks := append([]func(){}, s.onPersisted...)
	data, err := json.MarshalIndent(s.settings, "", "\t")
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.Broadcast(ipc.ChannelSettingsUpdated, snapshot)
	}

	if err != nil {
		result <- apperr.New(apperr.KindPersist, "encode settings", err)
		return result
	}

	go func() {
		if err := s.write(version, data); err != nil {
			s.log.Error("Failed to persist settings: %v", err)
			result <- err
			return
		}
		for _, hook := range hooks {
			hook()
		}
		result <- nil
	}()

	return result
}

// write persists data unless a newer version has already been written
func (s *Store) write(version uint64, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if version <= s.writtenVersion {
		s.log.Debug("Skipping stale settings write (version %d <= %d)", version, s.writtenVersion)
		return nil
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return apperr.New(apperr.KindPersist, "write settings", errors.Wrapf(err, "creating %s", filepath.Dir(s.path)))
	}
	if err := os.WriteFile(s.path, data, settingsFilePermissions); err != nil {
		return apperr.New(apperr.KindPersist, "write settings", errors.Wrapf(err, "writing %s", s.path))
	}

	s.writtenVersion = version
	return nil
}
