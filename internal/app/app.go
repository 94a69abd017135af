package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/prefs"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
	"github.com/senseilabs/sensei/internal/screens/history"
	"github.com/senseilabs/sensei/internal/screens/study"
	"github.com/senseilabs/sensei/internal/screens/welcome"
	"github.com/senseilabs/sensei/internal/store"
	"github.com/senseilabs/sensei/internal/ui/layout"
)

// Options carries everything the root model needs to wire the screens.
type Options struct {
	Controller *learn.Controller
	Gateway    *generate.Gateway
	Sessions   store.SessionRepo
	Prefs      *prefs.Store
	UserID     string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *learn.Controller
	width  int
	height int
}

// newAppModel builds the screen graph and picks the starting screen:
// the onboarding wizard on first run, otherwise the study platform.
func newAppModel(opts Options) AppModel {
	var welcomeFactory func() screen.Screen
	var studyFactory func() screen.Screen
	var historyFactory func() screen.Screen

	studyFactory = func() screen.Screen {
		return study.New(study.Options{
			Controller:     opts.Controller,
			Gateway:        opts.Gateway,
			Sessions:       opts.Sessions,
			UserID:         opts.UserID,
			SidebarOpen:    prefs.SidebarExpanded(opts.Prefs),
			OnSidebarOpen:  func(open bool) { prefs.SetSidebarExpanded(opts.Prefs, open) },
			WelcomeFactory: welcomeFactory,
			HistoryFactory: historyFactory,
		})
	}
	welcomeFactory = func() screen.Screen {
		return welcome.New(opts.Controller, opts.Gateway, studyFactory)
	}
	historyFactory = func() screen.Screen {
		return history.New(opts.Controller, opts.Sessions, opts.UserID, studyFactory)
	}

	// Resume the study platform when a topic is mid-flight; otherwise
	// start at onboarding.
	initial := welcomeFactory()
	if len(opts.Controller.Study().Modules) > 0 {
		opts.Controller.DismissIntro()
		initial = studyFactory()
	}

	return AppModel{
		router: router.New(initial),
		ctrl:   opts.Controller,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.ctrl.UserName(), string(m.ctrl.Personality()), m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(provider.KeyHints(), footerHints...)
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
