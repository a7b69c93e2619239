// Package credstore persists the session token across process restarts and
// watches it for external changes.
package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/prismlabs/prism-tui/internal/logger"
)

// Event describes an observed change to the token file.
type Event struct {
	Type  EventType
	Error error
}

// EventType defines the type of store event.
type EventType int

const (
	// EventTokenChanged means the token file was written or created externally.
	EventTokenChanged EventType = iota
	// EventTokenRemoved means the token file was deleted externally.
	EventTokenRemoved
	// EventError carries a watcher failure.
	EventError
)

// Store holds exactly one opaque session token in a file. Writes are atomic
// (temp file + rename) so a reader never observes a torn token.
type Store struct {
	mu            sync.Mutex
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates a store backed by the given file and starts watching it.
func New(filePath string) (*Store, error) {
	if filePath == "" {
		return nil, fmt.Errorf("credstore: token path must not be empty")
	}

	s := &Store{
		filePath:  filePath,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, fmt.Errorf("credstore: failed to create token directory: %w", err)
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("credstore: failed to start file watcher: %w", err)
	}

	return s, nil
}

// Events returns the channel carrying external-change events.
func (s *Store) Events() <-chan Event {
	return s.eventChan
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.filePath
}

// Get returns the stored token, or the empty string when absent.
func (s *Store) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("credstore: failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set persists the token. An empty token removes the file.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("credstore: failed to remove token: %w", err)
		}
		return nil
	}

	// Write to temp file first, then rename
	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("credstore: failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.filePath); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("credstore: failed to rename temp file: %w", err)
	}
	return nil
}

// startWatcher starts the file system watcher.
func (s *Store) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation/deletion)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Store) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about the token file itself
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.sendEvent(Event{Type: EventTokenChanged})
				})

			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				s.sendEvent(Event{Type: EventTokenRemoved})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Store) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Store) Close() error {
	close(s.stopChan)

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}

	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
