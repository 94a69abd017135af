package learn

// IntroPageCount is the number of onboarding wizard pages.
const IntroPageCount = 3

// PageState tracks what the user has done on one wizard page.
type PageState struct {
	InputProvided bool `json:"inputProvided"`
	ButtonPressed bool `json:"buttonPressed"`
	Visited       bool `json:"visited"`
}

// IntroState is the onboarding wizard state. ActivePage is always a key
// of Pages.
type IntroState struct {
	Show       bool              `json:"show"`
	Loading    bool              `json:"isLoading"`
	ActivePage int               `json:"activePage"`
	Pages      map[int]PageState `json:"pages"`
}

// NewIntroState returns the wizard in its initial shape: visible, on
// page 1, all pages unvisited.
func NewIntroState() IntroState {
	return IntroState{
		Show:       true,
		ActivePage: 1,
		Pages:      newPages(false),
	}
}

// SkipToEndIntroState returns the wizard shape used by ResetContext and
// LoadSession: visible, jumped to the final page, every page pre-marked
// visited so only the topic entry step remains.
func SkipToEndIntroState() IntroState {
	return IntroState{
		Show:       true,
		ActivePage: IntroPageCount,
		Pages:      newPages(true),
	}
}

func newPages(visited bool) map[int]PageState {
	pages := make(map[int]PageState, IntroPageCount)
	for i := 1; i <= IntroPageCount; i++ {
		pages[i] = PageState{Visited: visited}
	}
	return pages
}

// normalize repairs a hydrated IntroState: the wizard is always reachable
// after a restart and nothing can still be in flight.
func (s *IntroState) normalize() {
	s.Show = true
	s.Loading = false
	if s.Pages == nil {
		s.Pages = newPages(false)
	}
	for i := 1; i <= IntroPageCount; i++ {
		if _, ok := s.Pages[i]; !ok {
			s.Pages[i] = PageState{}
		}
	}
	if s.ActivePage < 1 || s.ActivePage > IntroPageCount {
		s.ActivePage = 1
	}
}

// Phase is the study platform's single state tag. At most one
// generation can be in flight, and a combination like fetching the
// module list and a module body at once is unrepresentable.
type Phase int

const (
	// PhaseIdle: no generation in flight, no module open for viewing.
	PhaseIdle Phase = iota
	// PhaseFetchingList: a module-list generation call is in flight.
	PhaseFetchingList
	// PhaseFetchingContent: a content generation call is in flight for
	// the module at StudyState.FetchTarget.
	PhaseFetchingContent
	// PhaseViewing: the active module is open and rendered.
	PhaseViewing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetchingList:
		return "fetching-list"
	case PhaseFetchingContent:
		return "fetching-content"
	case PhaseViewing:
		return "viewing"
	}
	return "unknown"
}

// StudyState is the study platform state. Whenever Modules is non-empty,
// 0 <= ActiveModule < len(Modules).
type StudyState struct {
	Show         bool     `json:"show"`
	Phase        Phase    `json:"phase"`
	FetchTarget  int      `json:"fetchTarget"`
	ActiveModule int      `json:"activeModuleIndex"`
	Modules      []Module `json:"modules"`
}

// NewStudyState returns the study platform in its empty, hidden default.
func NewStudyState() StudyState {
	return StudyState{}
}

// IsFetchingList reports whether a module-list call is in flight.
func (s StudyState) IsFetchingList() bool { return s.Phase == PhaseFetchingList }

// IsFetchingContent reports whether a module-content call is in flight.
func (s StudyState) IsFetchingContent() bool { return s.Phase == PhaseFetchingContent }

// IsLoading reports whether any generation call is in flight.
func (s StudyState) IsLoading() bool {
	return s.Phase == PhaseFetchingList || s.Phase == PhaseFetchingContent
}

// normalize repairs a hydrated StudyState: hidden after a restart, no
// call can still be in flight, and the active index must be in range.
func (s *StudyState) normalize() {
	s.Show = false
	if s.IsLoading() {
		s.Phase = PhaseIdle
	}
	s.FetchTarget = 0
	if len(s.Modules) == 0 {
		s.ActiveModule = 0
		s.Phase = PhaseIdle
		return
	}
	if s.ActiveModule < 0 || s.ActiveModule >= len(s.Modules) {
		s.ActiveModule = 0
	}
	if s.Phase == PhaseViewing && !s.Modules[s.ActiveModule].Open {
		s.Phase = PhaseIdle
	}
}
