package prefs

import "github.com/senseilabs/sensei/internal/learn"

// LoadSnapshot reads every learning state slice from the store. A missing
// or malformed slot leaves its documented default in place. The controller
// normalizes the snapshot on hydration (intro shown, study hidden, nothing
// in flight).
func LoadSnapshot(s *Store) learn.Snapshot {
	snap := learn.Snapshot{
		Intro:       learn.NewIntroState(),
		Study:       learn.NewStudyState(),
		Personality: learn.PersonalityDefault,
	}
	s.Get(SlotIntroduction, &snap.Intro)
	s.Get(SlotStudyPlatform, &snap.Study)
	s.Get(SlotUserName, &snap.UserName)
	s.Get(SlotPersonality, &snap.Personality)
	s.Get(SlotStudyMaterial, &snap.Topic)
	s.Get(SlotHistory, &snap.History)
	s.Get(SlotSessionID, &snap.SessionID)
	return snap
}

// Persister adapts the store to the controller's write-through contract.
type Persister struct {
	Store *Store
}

var _ learn.Persister = Persister{}

func (p Persister) SaveIntro(s learn.IntroState)        { p.Store.Set(SlotIntroduction, s) }
func (p Persister) SaveStudy(s learn.StudyState)        { p.Store.Set(SlotStudyPlatform, s) }
func (p Persister) SaveUserName(name string)            { p.Store.Set(SlotUserName, name) }
func (p Persister) SavePersonality(v learn.Personality) { p.Store.Set(SlotPersonality, v) }
func (p Persister) SaveTopic(topic string)              { p.Store.Set(SlotStudyMaterial, topic) }
func (p Persister) SaveHistory(h []learn.ChatTurn)      { p.Store.Set(SlotHistory, h) }
func (p Persister) SaveSessionID(id string)             { p.Store.Set(SlotSessionID, id) }

// SidebarExpanded reads the sidebar flag, defaulting to expanded.
func SidebarExpanded(s *Store) bool {
	expanded := true
	s.Get(SlotSidebarExpanded, &expanded)
	return expanded
}

// SetSidebarExpanded writes the sidebar flag.
func SetSidebarExpanded(s *Store, expanded bool) {
	s.Set(SlotSidebarExpanded, expanded)
}
