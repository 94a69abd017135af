// Package prefs is the persisted preference store: named JSON slots,
// durable across restarts, written through after every state mutation.
// Corrupted local data must never prevent the application from booting,
// so malformed or missing slots fall back to their documented defaults
// instead of failing.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
)

// Slot keys. One per persisted state slice.
const (
	SlotIntroduction    = "introduction"
	SlotStudyPlatform   = "studyPlatform"
	SlotUserName        = "userName"
	SlotPersonality     = "personality"
	SlotStudyMaterial   = "studyMaterial"
	SlotHistory         = "generationHistory"
	SlotSidebarExpanded = "sidebarExpanded"
	SlotSessionID       = "currentSessionId"
)

// Store holds the slot map in memory and mirrors every mutation to a
// single JSON file. Write failures are reported to stderr and otherwise
// swallowed: the UI is optimistic with respect to local durability.
type Store struct {
	mu    sync.Mutex
	path  string
	slots map[string]json.RawMessage
}

// Open loads the preference file at path. Any read or parse failure
// yields an empty store rather than an error.
func Open(path string) *Store {
	s := &Store{path: path, slots: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var slots map[string]json.RawMessage
	if err := json.Unmarshal(data, &slots); err != nil {
		return s
	}
	if slots != nil {
		s.slots = slots
	}
	return s
}

// Get decodes the slot's value into v, a non-nil pointer. It reports
// false, leaving v untouched, when the slot is missing or its JSON does
// not decode into v's shape, so callers keep their defaults. Decoding
// happens on a scratch copy of *v: a slot that fails partway through
// never leaks half-decoded fields into the caller's value.
func (s *Store) Get(slot string, v any) bool {
	s.mu.Lock()
	raw, ok := s.slots[slot]
	s.mu.Unlock()
	if !ok {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	scratch := reflect.New(rv.Type().Elem())
	scratch.Elem().Set(rv.Elem())
	if err := json.Unmarshal(raw, scratch.Interface()); err != nil {
		return false
	}
	rv.Elem().Set(scratch.Elem())
	return true
}

// Set encodes v into the slot and rewrites the file.
func (s *Store) Set(slot string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: encode preference %q: %v\n", slot, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = raw
	s.flushLocked()
}

// Clear drops every slot and rewrites the file. Used by `sensei reset`.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make(map[string]json.RawMessage)
	s.flushLocked()
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// flushLocked writes the slot map atomically: temp file then rename.
func (s *Store) flushLocked() {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: encode preferences: %v\n", err)
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: write preferences: %v\n", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		fmt.Fprintf(os.Stderr, "warning: replace preferences: %v\n", err)
	}
}

// DefaultPath resolves the preference file path in priority order:
// 1. SENSEI_PREFS environment variable
// 2. $XDG_DATA_HOME/sensei/prefs.json
// 3. ~/.local/share/sensei/prefs.json
func DefaultPath() (string, error) {
	if p := os.Getenv("SENSEI_PREFS"); p != "" {
		return p, ensureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "sensei", "prefs.json")
	return p, ensureDir(p)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
