package learn

import (
	"time"

	"github.com/google/uuid"
)

// Persister mirrors state slices to durable local storage after each
// mutation. Implementations must never block or fail the caller: the UI
// is optimistic with respect to local durability, so write errors are
// swallowed (or logged) inside the implementation.
type Persister interface {
	SaveIntro(s IntroState)
	SaveStudy(s StudyState)
	SaveUserName(name string)
	SavePersonality(p Personality)
	SaveTopic(topic string)
	SaveHistory(history []ChatTurn)
	SaveSessionID(id string)
}

// NopPersister discards all writes. Used by tests and by CLI paths that
// inspect state without a preference store.
type NopPersister struct{}

func (NopPersister) SaveIntro(IntroState)        {}
func (NopPersister) SaveStudy(StudyState)        {}
func (NopPersister) SaveUserName(string)         {}
func (NopPersister) SavePersonality(Personality) {}
func (NopPersister) SaveTopic(string)            {}
func (NopPersister) SaveHistory([]ChatTurn)      {}
func (NopPersister) SaveSessionID(string)        {}

// Snapshot is the hydrated form of every persisted state slice, as read
// from the preference store at startup.
type Snapshot struct {
	Intro       IntroState
	Study       StudyState
	UserName    string
	Personality Personality
	Topic       string
	History     []ChatTurn
	SessionID   string
}

// Token identifies one generation call. A result that comes back with a
// token other than the controller's current one is stale (the user reset,
// loaded another session, or started a newer call) and must be dropped.
type Token uint64

// Controller owns the in-memory session state and enforces its legal
// transitions. It is not safe for concurrent use; in the Bubble Tea
// program all calls happen on the update loop.
type Controller struct {
	intro     IntroState
	study     StudyState
	userName  string
	persona   Personality
	topic     string
	history   []ChatTurn
	sessionID string

	gen     Token
	persist Persister
	now     func() time.Time
}

// NewController hydrates a controller from a snapshot. The snapshot is
// normalized on the way in: the intro is always reachable, the study
// platform starts hidden, and no call can be in flight across a restart.
func NewController(snap Snapshot, persist Persister) *Controller {
	if persist == nil {
		persist = NopPersister{}
	}
	snap.Intro.normalize()
	snap.Study.normalize()
	if !snap.Personality.Valid() {
		snap.Personality = PersonalityDefault
	}
	return &Controller{
		intro:     snap.Intro,
		study:     snap.Study,
		userName:  snap.UserName,
		persona:   snap.Personality,
		topic:     snap.Topic,
		history:   snap.History,
		sessionID: snap.SessionID,
		persist:   persist,
		now:       time.Now,
	}
}

// Intro returns a copy of the onboarding state.
func (c *Controller) Intro() IntroState { return c.intro }

// Study returns a copy of the study platform state. Modules share backing
// storage with the controller; callers must treat them as read-only.
func (c *Controller) Study() StudyState { return c.study }

func (c *Controller) UserName() string         { return c.userName }
func (c *Controller) Personality() Personality { return c.persona }
func (c *Controller) Topic() string            { return c.topic }
func (c *Controller) SessionID() string        { return c.sessionID }

// History returns the generation conversation log replayed to the gateway.
func (c *Controller) History() []ChatTurn { return c.history }

// SetUserName records the learner's name.
func (c *Controller) SetUserName(name string) {
	c.userName = name
	c.persist.SaveUserName(name)
}

// SetPersonality records the chosen teacher personality. Invalid values
// fall back to the default.
func (c *Controller) SetPersonality(p Personality) {
	if !p.Valid() {
		p = PersonalityDefault
	}
	c.persona = p
	c.persist.SavePersonality(p)
}

// SetTopic records the study topic entered on the final wizard page.
func (c *Controller) SetTopic(topic string) {
	c.topic = topic
	c.persist.SaveTopic(topic)
}

// VisitPage marks a wizard page visited and makes it active.
func (c *Controller) VisitPage(page int) {
	if _, ok := c.intro.Pages[page]; !ok {
		return
	}
	ps := c.intro.Pages[page]
	ps.Visited = true
	c.intro.Pages[page] = ps
	c.intro.ActivePage = page
	c.persist.SaveIntro(c.intro)
}

// MarkPageInput records whether the active page's input is filled in.
func (c *Controller) MarkPageInput(provided bool) {
	ps := c.intro.Pages[c.intro.ActivePage]
	ps.InputProvided = provided
	c.intro.Pages[c.intro.ActivePage] = ps
	c.persist.SaveIntro(c.intro)
}

// PressPageButton records the active page's continue button press and
// advances to the next page if one exists.
func (c *Controller) PressPageButton() {
	ps := c.intro.Pages[c.intro.ActivePage]
	ps.ButtonPressed = true
	c.intro.Pages[c.intro.ActivePage] = ps
	if next := c.intro.ActivePage + 1; next <= IntroPageCount {
		c.VisitPage(next)
		return
	}
	c.persist.SaveIntro(c.intro)
}

// DismissIntro hides the onboarding wizard. Finishing list generation
// does not dismiss it implicitly; this is the explicit action.
func (c *Controller) DismissIntro() {
	c.intro.Show = false
	c.persist.SaveIntro(c.intro)
}

// BeginListGeneration transitions into the module-list generation phase.
// It refuses to start while any generation call is in flight (at most one
// call per intent), returning ok=false.
func (c *Controller) BeginListGeneration() (Token, bool) {
	if c.study.IsLoading() {
		return 0, false
	}
	c.gen++
	c.intro.Loading = true
	c.study.Phase = PhaseFetchingList
	c.persist.SaveIntro(c.intro)
	c.persist.SaveStudy(c.study)
	return c.gen, true
}

// ApplyModuleList installs a freshly generated module list and shows the
// study platform. Stale tokens are dropped and the call reports false.
func (c *Controller) ApplyModuleList(tok Token, modules []Module) bool {
	if tok != c.gen || c.study.Phase != PhaseFetchingList {
		return false
	}
	c.study.Modules = modules
	c.study.ActiveModule = 0
	c.study.Phase = PhaseIdle
	c.study.Show = true
	c.intro.Loading = false
	c.persist.SaveStudy(c.study)
	c.persist.SaveIntro(c.intro)
	return true
}

// SelectModule changes the active module. Selecting an open module is a
// state no-op beyond the index change and never re-triggers generation;
// selecting a closed module starts a content generation call for it.
// fetch reports whether the caller must issue the gateway call.
func (c *Controller) SelectModule(i int) (tok Token, fetch bool) {
	if i < 0 || i >= len(c.study.Modules) {
		return 0, false
	}
	if c.study.IsLoading() {
		return 0, false
	}
	if c.study.Modules[i].Open {
		c.study.ActiveModule = i
		c.study.Phase = PhaseViewing
		c.persist.SaveStudy(c.study)
		return 0, false
	}
	c.gen++
	c.study.ActiveModule = i
	c.study.FetchTarget = i
	c.study.Phase = PhaseFetchingContent
	c.persist.SaveStudy(c.study)
	return c.gen, true
}

// ApplyModuleContent appends generated content blocks to the fetched
// module, unlocks it, and moves to viewing. Stale tokens are dropped.
func (c *Controller) ApplyModuleContent(tok Token, blocks []ContentBlock) bool {
	if tok != c.gen || c.study.Phase != PhaseFetchingContent {
		return false
	}
	i := c.study.FetchTarget
	mod := c.study.Modules[i]
	mod.Content = append(mod.Content, blocks...)
	mod.Open = true
	c.study.Modules[i] = mod
	c.study.ActiveModule = i
	c.study.Phase = PhaseViewing
	c.persist.SaveStudy(c.study)
	return true
}

// FailGeneration clears the in-flight phase for a failed call, leaving
// modules and content untouched. The caller surfaces the error to the
// user; no state is corrupted by a failed call.
func (c *Controller) FailGeneration(tok Token) bool {
	if tok != c.gen || !c.study.IsLoading() {
		return false
	}
	wasList := c.study.Phase == PhaseFetchingList
	c.study.Phase = PhaseIdle
	c.study.FetchTarget = 0
	if len(c.study.Modules) > 0 && c.study.Modules[c.study.ActiveModule].Open {
		c.study.Phase = PhaseViewing
	}
	c.persist.SaveStudy(c.study)
	if wasList {
		c.intro.Loading = false
		c.persist.SaveIntro(c.intro)
	}
	return true
}

// AppendHistory appends turns to the generation conversation log.
func (c *Controller) AppendHistory(turns ...ChatTurn) {
	c.history = append(c.history, turns...)
	c.persist.SaveHistory(c.history)
}

// AppendModuleChat appends turns to one module's conversation log.
func (c *Controller) AppendModuleChat(i int, turns ...ChatTurn) {
	if i < 0 || i >= len(c.study.Modules) {
		return
	}
	mod := c.study.Modules[i]
	mod.ChatHistory = append(mod.ChatHistory, turns...)
	c.study.Modules[i] = mod
	c.persist.SaveStudy(c.study)
}

// ResetContext is the "change topic" action, callable from any state:
// the study platform returns to its empty default and the wizard jumps
// straight to the final entry step with every page pre-marked visited.
// Any in-flight call is invalidated.
func (c *Controller) ResetContext() {
	c.gen++
	c.study = NewStudyState()
	c.intro = SkipToEndIntroState()
	c.topic = ""
	c.history = nil
	c.sessionID = ""
	c.persist.SaveStudy(c.study)
	c.persist.SaveIntro(c.intro)
	c.persist.SaveTopic(c.topic)
	c.persist.SaveHistory(c.history)
	c.persist.SaveSessionID(c.sessionID)
}

// LoadSession hydrates state from a stored session. The result is
// indistinguishable, state-wise, from having just finished onboarding
// for that topic. Any in-flight call is invalidated.
func (c *Controller) LoadSession(s Session) {
	c.gen++
	c.study = StudyState{
		Show:    true,
		Phase:   PhaseIdle,
		Modules: s.Modules,
	}
	c.study.normalize()
	c.study.Show = true
	c.intro = SkipToEndIntroState()
	c.persona = s.Personality
	c.topic = s.Topic
	c.history = s.GenerationHistory
	c.sessionID = s.ID
	c.persist.SaveStudy(c.study)
	c.persist.SaveIntro(c.intro)
	c.persist.SavePersonality(c.persona)
	c.persist.SaveTopic(c.topic)
	c.persist.SaveHistory(c.history)
	c.persist.SaveSessionID(c.sessionID)
}

// BuildSession assembles the current state into a session record for the
// repository. The first save mints the session ID.
func (c *Controller) BuildSession(userID string) Session {
	if c.sessionID == "" {
		c.sessionID = uuid.New().String()
		c.persist.SaveSessionID(c.sessionID)
	}
	return Session{
		ID:                c.sessionID,
		UserID:            userID,
		Topic:             c.topic,
		Personality:       c.persona,
		Modules:           c.study.Modules,
		GenerationHistory: c.history,
		UpdatedAt:         c.now(),
	}
}
