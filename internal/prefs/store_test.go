package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/senseilabs/sensei/internal/learn"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "prefs.json"))
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s := Open(path)
	s.Set(SlotUserName, "Ada")
	s.Set(SlotSidebarExpanded, false)
	s.Set(SlotStudyPlatform, learn.StudyState{
		Show:    true,
		Modules: []learn.Module{{Title: "A", Description: "B"}},
	})

	// Reopen from disk.
	s = Open(path)

	var name string
	if !s.Get(SlotUserName, &name) || name != "Ada" {
		t.Errorf("expected userName Ada, got %q", name)
	}
	expanded := true
	if !s.Get(SlotSidebarExpanded, &expanded) || expanded {
		t.Error("expected sidebar flag false")
	}
	var study learn.StudyState
	if !s.Get(SlotStudyPlatform, &study) {
		t.Fatal("expected study slot to decode")
	}
	if len(study.Modules) != 1 || study.Modules[0].Title != "A" {
		t.Errorf("study state not round-tripped: %+v", study)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "prefs.json"))
	var v string
	if s.Get(SlotUserName, &v) {
		t.Error("expected no value from an absent file")
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"userName": "Ada", truncated`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	var v string
	if s.Get(SlotUserName, &v) {
		t.Error("corrupt file must behave like an empty store")
	}
}

func TestGetMalformedSlotKeepsDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"wrong type", `{"studyPlatform": 42}`},
		{"wrong shape", `{"studyPlatform": {"modules": "not-an-array"}}`},
		{"null-ish garbage", `{"studyPlatform": "null"}`},
		// Earlier keys decode before the bad one is reached; none of
		// them may survive into the caller's value.
		{"good fields before bad field", `{"studyPlatform": {"show": true, "modules": [{"title": "Phantom", "isOpen": true}], "fetchTarget": "oops"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prefs.json")
			if err := os.WriteFile(path, []byte(tt.raw), 0o644); err != nil {
				t.Fatal(err)
			}
			s := Open(path)

			study := learn.NewStudyState()
			if s.Get(SlotStudyPlatform, &study) {
				t.Error("malformed slot must report no value")
			}
			if study.Show || len(study.Modules) != 0 {
				t.Errorf("default mutated: %+v", study)
			}
		})
	}
}

func TestLoadSnapshotDefaults(t *testing.T) {
	s := tempStore(t)
	snap := LoadSnapshot(s)

	if !snap.Intro.Show || snap.Intro.ActivePage != 1 {
		t.Errorf("expected fresh intro state, got %+v", snap.Intro)
	}
	if snap.Study.Show || len(snap.Study.Modules) != 0 {
		t.Errorf("expected empty study state, got %+v", snap.Study)
	}
	if snap.Personality != learn.PersonalityDefault {
		t.Errorf("expected default personality, got %q", snap.Personality)
	}
}

func TestLoadSnapshotCorruptSlotsYieldDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	raw := `{
		"studyPlatform": {"show": true, "modules": [{"title": "Phantom", "isOpen": true}], "fetchTarget": "oops"},
		"generationHistory": [{"role": "user", "parts": [{"text": "hi"}]}, 42],
		"userName": "Ada"
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	snap := LoadSnapshot(Open(path))

	if snap.Study.Show || len(snap.Study.Modules) != 0 {
		t.Errorf("corrupt study slot must load as empty, got %+v", snap.Study)
	}
	if len(snap.History) != 0 {
		t.Errorf("corrupt history slot must load as empty, got %+v", snap.History)
	}
	if snap.UserName != "Ada" {
		t.Errorf("intact slots must still load, got %q", snap.UserName)
	}
}

func TestLoadSnapshotThenControllerForcesFlags(t *testing.T) {
	s := tempStore(t)
	// Simulate a crash mid-generation: loading flags stuck true, study shown.
	s.Set(SlotIntroduction, learn.IntroState{Show: false, Loading: true, ActivePage: 2})
	s.Set(SlotStudyPlatform, learn.StudyState{Show: true, Phase: learn.PhaseFetchingList})

	c := learn.NewController(LoadSnapshot(s), Persister{Store: s})

	if !c.Intro().Show {
		t.Error("introduction must be reachable after reload")
	}
	if c.Intro().Loading || c.Study().IsLoading() {
		t.Error("no operation can be in flight across a reload")
	}
	if c.Study().Show {
		t.Error("study platform must start hidden after reload")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s := Open(path)
	s.Set(SlotUserName, "Ada")
	s.Clear()

	s = Open(path)
	var v string
	if s.Get(SlotUserName, &v) {
		t.Error("expected cleared store to stay empty across reopen")
	}
}
