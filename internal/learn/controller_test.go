package learn

import (
	"testing"
	"time"
)

// recordingPersister counts writes per slot for ordering assertions.
type recordingPersister struct {
	intro, study, name, persona, topic, history, session int
}

func (r *recordingPersister) SaveIntro(IntroState)        { r.intro++ }
func (r *recordingPersister) SaveStudy(StudyState)        { r.study++ }
func (r *recordingPersister) SaveUserName(string)         { r.name++ }
func (r *recordingPersister) SavePersonality(Personality) { r.persona++ }
func (r *recordingPersister) SaveTopic(string)            { r.topic++ }
func (r *recordingPersister) SaveHistory([]ChatTurn)      { r.history++ }
func (r *recordingPersister) SaveSessionID(string)        { r.session++ }

func newTestController() *Controller {
	return NewController(Snapshot{
		Intro: NewIntroState(),
		Study: NewStudyState(),
	}, NopPersister{})
}

func twoModules() []Module {
	return []Module{
		{Title: "A", Description: "first"},
		{Title: "B", Description: "second"},
	}
}

func TestNewControllerNormalizesSnapshot(t *testing.T) {
	snap := Snapshot{
		Intro: IntroState{Show: false, Loading: true, ActivePage: 9},
		Study: StudyState{
			Show:         true,
			Phase:        PhaseFetchingContent,
			ActiveModule: 5,
			Modules:      twoModules(),
		},
		Personality: Personality("cowboy"),
	}
	c := NewController(snap, nil)

	intro := c.Intro()
	if !intro.Show {
		t.Error("intro must be shown after a restart")
	}
	if intro.Loading {
		t.Error("nothing can be in flight after a restart")
	}
	if intro.ActivePage != 1 {
		t.Errorf("out-of-range active page should reset to 1, got %d", intro.ActivePage)
	}
	if len(intro.Pages) != IntroPageCount {
		t.Errorf("expected %d pages, got %d", IntroPageCount, len(intro.Pages))
	}

	study := c.Study()
	if study.Show {
		t.Error("study platform must start hidden after a restart")
	}
	if study.IsLoading() {
		t.Error("no fetch can be in flight after a restart")
	}
	if study.ActiveModule != 0 {
		t.Errorf("out-of-range active module should reset to 0, got %d", study.ActiveModule)
	}

	if c.Personality() != PersonalityDefault {
		t.Errorf("unknown personality should fall back to default, got %q", c.Personality())
	}
}

func TestListGenerationSuccess(t *testing.T) {
	c := newTestController()

	tok, ok := c.BeginListGeneration()
	if !ok {
		t.Fatal("expected generation to start")
	}
	if !c.Study().IsFetchingList() {
		t.Error("expected fetching-list phase")
	}
	if !c.Intro().Loading {
		t.Error("expected intro loading flag set")
	}

	if !c.ApplyModuleList(tok, twoModules()) {
		t.Fatal("expected module list to apply")
	}
	study := c.Study()
	if !study.Show {
		t.Error("study platform should be shown after list generation")
	}
	if study.Phase != PhaseIdle {
		t.Errorf("expected idle phase, got %s", study.Phase)
	}
	if len(study.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(study.Modules))
	}
	if c.Intro().Show != true {
		t.Error("list generation alone must not dismiss the intro")
	}
	if c.Intro().Loading {
		t.Error("intro loading flag should clear")
	}
}

func TestListGenerationAtMostOneInFlight(t *testing.T) {
	c := newTestController()

	if _, ok := c.BeginListGeneration(); !ok {
		t.Fatal("first call should start")
	}
	if _, ok := c.BeginListGeneration(); ok {
		t.Error("second call must be refused while one is in flight")
	}
}

func TestFailGenerationLeavesStateUntouched(t *testing.T) {
	c := newTestController()
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())

	tok, fetch := c.SelectModule(1)
	if !fetch {
		t.Fatal("closed module should trigger a fetch")
	}

	before := c.Study().Modules
	if !c.FailGeneration(tok) {
		t.Fatal("expected failure to be recorded")
	}
	study := c.Study()
	if study.IsLoading() {
		t.Error("in-flight phase should clear on failure")
	}
	if len(study.Modules) != len(before) {
		t.Error("failed call must not change modules")
	}
	if study.Modules[1].Open {
		t.Error("failed content fetch must not unlock the module")
	}
	if len(study.Modules[1].Content) != 0 {
		t.Error("failed content fetch must not append content")
	}
}

func TestSelectOpenModuleIsIdempotent(t *testing.T) {
	c := newTestController()
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())

	tok, fetch := c.SelectModule(0)
	if !fetch {
		t.Fatal("first selection should fetch")
	}
	c.ApplyModuleContent(tok, []ContentBlock{{HTML: "<p>hello</p>"}})

	before := c.Study()
	if _, fetch := c.SelectModule(0); fetch {
		t.Error("re-selecting an open module must not fetch")
	}
	after := c.Study()
	if after.Phase != PhaseViewing {
		t.Errorf("expected viewing phase, got %s", after.Phase)
	}
	if len(after.Modules[0].Content) != len(before.Modules[0].Content) {
		t.Error("re-selection must not change content")
	}
}

func TestApplyModuleContentUnlocks(t *testing.T) {
	c := newTestController()
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())

	tok, _ = c.SelectModule(1)
	if !c.ApplyModuleContent(tok, []ContentBlock{{HTML: "<h1>B</h1>"}, {HTML: "<p>body</p>"}}) {
		t.Fatal("expected content to apply")
	}
	study := c.Study()
	if !study.Modules[1].Open {
		t.Error("module should be open after content fetch")
	}
	if len(study.Modules[1].Content) != 2 {
		t.Errorf("expected 2 content blocks, got %d", len(study.Modules[1].Content))
	}
	if study.Phase != PhaseViewing || study.ActiveModule != 1 {
		t.Errorf("expected viewing module 1, got %s/%d", study.Phase, study.ActiveModule)
	}
}

func TestStaleTokenIsDropped(t *testing.T) {
	c := newTestController()
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())

	staleTok, _ := c.SelectModule(0)
	c.ResetContext()

	if c.ApplyModuleContent(staleTok, []ContentBlock{{HTML: "<p>stale</p>"}}) {
		t.Error("content for an invalidated token must be dropped")
	}
	if len(c.Study().Modules) != 0 {
		t.Error("reset state must stay empty after a stale result resolves")
	}
}

func TestResetContextShape(t *testing.T) {
	c := newTestController()
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())
	c.SetTopic("Rust")

	c.ResetContext()

	study := c.Study()
	if study.Show || study.IsLoading() || study.ActiveModule != 0 || len(study.Modules) != 0 {
		t.Errorf("study state not reset to empty default: %+v", study)
	}
	intro := c.Intro()
	if intro.ActivePage != IntroPageCount {
		t.Errorf("expected active page %d, got %d", IntroPageCount, intro.ActivePage)
	}
	for i := 1; i <= IntroPageCount; i++ {
		if !intro.Pages[i].Visited {
			t.Errorf("page %d should be pre-marked visited", i)
		}
	}
	if c.Topic() != "" {
		t.Error("topic should clear on reset")
	}
	if c.SessionID() != "" {
		t.Error("session id should clear on reset")
	}
}

func TestLoadSession(t *testing.T) {
	c := newTestController()

	mods := twoModules()
	mods[0].Open = true
	mods[0].Content = []ContentBlock{{HTML: "<p>saved</p>"}}
	s := Session{
		ID:          "sess-1",
		Topic:       "Go",
		Personality: PersonalityPlayful,
		Modules:     mods,
		GenerationHistory: []ChatTurn{
			NewTurn(RoleUser, "teach me Go"),
			NewTurn(RoleModel, "[]"),
		},
	}
	c.LoadSession(s)

	study := c.Study()
	if !study.Show {
		t.Error("loaded session should show the study platform")
	}
	if len(study.Modules) != 2 || study.Modules[0].Title != "A" {
		t.Errorf("modules not hydrated: %+v", study.Modules)
	}
	if c.Personality() != PersonalityPlayful {
		t.Errorf("expected playful personality, got %q", c.Personality())
	}
	if c.SessionID() != "sess-1" {
		t.Errorf("expected session id sess-1, got %q", c.SessionID())
	}
	if len(c.History()) != 2 {
		t.Errorf("expected 2 history turns, got %d", len(c.History()))
	}
	if c.Intro().ActivePage != IntroPageCount {
		t.Error("loading a session should skip the wizard to its final page")
	}
}

func TestMutationPersistsWriteThrough(t *testing.T) {
	rec := &recordingPersister{}
	c := NewController(Snapshot{Intro: NewIntroState()}, rec)

	c.SetUserName("Ada")
	c.SetPersonality(PersonalityFormal)
	c.SetTopic("Lambda calculus")
	tok, _ := c.BeginListGeneration()
	c.ApplyModuleList(tok, twoModules())

	if rec.name != 1 || rec.persona != 1 || rec.topic != 1 {
		t.Errorf("expected one write per scalar slot, got %+v", rec)
	}
	if rec.study < 2 {
		t.Errorf("expected study writes for begin and apply, got %d", rec.study)
	}
}

func TestBuildSessionMintsIDOnce(t *testing.T) {
	c := newTestController()
	c.SetTopic("Algebra")

	s1 := c.BuildSession("user-1")
	if s1.ID == "" {
		t.Fatal("expected a minted session id")
	}
	s2 := c.BuildSession("user-1")
	if s2.ID != s1.ID {
		t.Error("subsequent saves must reuse the session id")
	}
	if s1.UserID != "user-1" || s1.Topic != "Algebra" {
		t.Errorf("session fields not populated: %+v", s1)
	}
}

func TestLatestPerTopic(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(24 * time.Hour)
	sessions := []Session{
		{ID: "b", Topic: "Rust", CreatedAt: t2},
		{ID: "a", Topic: "rust", CreatedAt: t1},
		{ID: "c", Topic: "Go", CreatedAt: t1},
	}

	got := LatestPerTopic(sessions)
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(got))
	}
	if got[0].ID != "b" {
		t.Errorf("expected newest Rust session, got %q", got[0].ID)
	}
	if got[1].ID != "c" {
		t.Errorf("expected Go session second, got %q", got[1].ID)
	}
}
