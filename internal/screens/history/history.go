package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
	"github.com/senseilabs/sensei/internal/store"
	"github.com/senseilabs/sensei/internal/ui/layout"
	"github.com/senseilabs/sensei/internal/ui/theme"
)

type sessionsLoadedMsg struct {
	Sessions []learn.Session
	Err      error
}

type deleteDoneMsg struct {
	Err error
}

// HistoryScreen lists saved study sessions. By default it shows the most
// recent session per topic; 'a' reveals every saved session.
type HistoryScreen struct {
	ctrl         *learn.Controller
	sessions     store.SessionRepo
	userID       string
	studyFactory func() screen.Screen

	all        []learn.Session
	selected   int
	showAll    bool
	loaded     bool
	confirming bool
	errMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. Loading a session hydrates ctrl and swaps
// in the screen produced by studyFactory.
func New(ctrl *learn.Controller, sessions store.SessionRepo, userID string, studyFactory func() screen.Screen) *HistoryScreen {
	return &HistoryScreen{
		ctrl:         ctrl,
		sessions:     sessions,
		userID:       userID,
		studyFactory: studyFactory,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	repo := s.sessions
	userID := s.userID
	return func() tea.Msg {
		sessions, err := repo.List(context.Background(), userID)
		return sessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past sessions"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Resume"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "a", Description: "All versions"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// visible returns the listed sessions under the current filter.
func (s *HistoryScreen) visible() []learn.Session {
	if s.showAll {
		return s.all
	}
	return learn.LatestPerTopic(s.all)
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.all = msg.Sessions
			s.errMsg = ""
			s.clampSelection()
		}
		return s, nil

	case deleteDoneMsg:
		s.confirming = false
		if msg.Err != nil {
			s.errMsg = "Could not delete the session."
			return s, nil
		}
		return s, s.load()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirming {
		switch msg.String() {
		case "y":
			return s, s.deleteSelected()
		default:
			s.confirming = false
			return s, nil
		}
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil

	case "down", "j":
		if s.selected < len(s.visible())-1 {
			s.selected++
		}
		return s, nil

	case "a":
		s.showAll = !s.showAll
		s.clampSelection()
		return s, nil

	case "d":
		if len(s.visible()) > 0 {
			s.confirming = true
		}
		return s, nil

	case "enter":
		return s, s.resumeSelected()
	}
	return s, nil
}

// resumeSelected hydrates the shared controller from the chosen session
// and replaces this screen with the study platform.
func (s *HistoryScreen) resumeSelected() tea.Cmd {
	visible := s.visible()
	if s.selected < 0 || s.selected >= len(visible) {
		return nil
	}
	s.ctrl.LoadSession(visible[s.selected])

	next := s.studyFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *HistoryScreen) deleteSelected() tea.Cmd {
	visible := s.visible()
	if s.selected < 0 || s.selected >= len(visible) {
		s.confirming = false
		return nil
	}
	id := visible[s.selected].ID
	repo := s.sessions
	userID := s.userID

	return func() tea.Msg {
		return deleteDoneMsg{Err: repo.Delete(context.Background(), id, userID)}
	}
}

func (s *HistoryScreen) clampSelection() {
	if n := len(s.visible()); s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}

	var b strings.Builder
	b.WriteString("\n")

	// A failed load or delete shows as a status line; the list itself
	// stays usable with whatever sessions are known.
	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg)))
		b.WriteString("\n\n")
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("No saved sessions yet.")))
		b.WriteString("\n")
		return b.String()
	}

	if s.showAll {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("showing every saved version")))
		b.WriteString("\n\n")
	}

	for i, sess := range visible {
		dateStr := sess.CreatedAt.Format("Jan 02, 2006 15:04")
		opened := 0
		for _, m := range sess.Modules {
			if m.Open {
				opened++
			}
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d modules opened",
			prefix, dateStr, sess.Topic, opened, len(sess.Modules))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.confirming {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render("Delete this session? Press y to confirm.")))
		b.WriteString("\n")
	}

	return b.String()
}
