package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
	"github.com/senseilabs/sensei/internal/ui/components"
	"github.com/senseilabs/sensei/internal/ui/layout"
	"github.com/senseilabs/sensei/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

var personalityLabels = map[learn.Personality]string{
	learn.PersonalityDefault:  "Balanced",
	learn.PersonalityFormal:   "Formal",
	learn.PersonalityInformal: "Informal",
	learn.PersonalityPlayful:  "Playful",
	learn.PersonalitySerious:  "Serious",
}

// WelcomeScreen is the three-page onboarding wizard: learner name, teacher
// personality, then a topic that kicks off study-plan generation. When the
// plan arrives it replaces itself with the study screen.
type WelcomeScreen struct {
	ctrl         *learn.Controller
	gateway      *generate.Gateway
	studyFactory func() screen.Screen

	nameInput  components.TextInput
	topicInput components.TextInput
	menu       components.Menu

	tickCount int
	errMsg    string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. studyFactory produces the screen shown once
// module generation succeeds.
func New(ctrl *learn.Controller, gateway *generate.Gateway, studyFactory func() screen.Screen) *WelcomeScreen {
	w := &WelcomeScreen{
		ctrl:         ctrl,
		gateway:      gateway,
		studyFactory: studyFactory,
		nameInput:    components.NewTextInput("your name", false, 40),
		topicInput:   components.NewTextInput("e.g. Go generics, the French Revolution", false, 120),
	}

	items := make([]components.MenuItem, 0, len(learn.AllPersonalities()))
	for _, p := range learn.AllPersonalities() {
		items = append(items, components.MenuItem{Label: personalityLabels[p]})
	}
	w.menu = components.NewMenu(items)

	if name := ctrl.UserName(); name != "" {
		w.nameInput.Model.SetValue(name)
	}
	if topic := ctrl.Topic(); topic != "" {
		w.topicInput.Model.SetValue(topic)
	}
	for i, p := range learn.AllPersonalities() {
		if p == ctrl.Personality() {
			w.menu.Selected = i
		}
	}

	return w
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if w.ctrl.Intro().ActivePage > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	if w.ctrl.Intro().ActivePage == 2 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Choose"})
	}
	return hints
}

func (w *WelcomeScreen) Init() tea.Cmd {
	w.ctrl.VisitPage(w.ctrl.Intro().ActivePage)
	if w.ctrl.Intro().Loading {
		return w.tick()
	}
	return w.nameInput.Init()
}

func (w *WelcomeScreen) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !w.ctrl.Intro().Loading {
			return w, nil
		}
		w.tickCount++
		return w, w.tick()

	case moduleListMsg:
		return w, w.handleModuleList(msg)

	case tea.KeyPressMsg:
		return w.handleKey(msg)
	}

	return w.updateInputs(msg)
}

func (w *WelcomeScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if w.ctrl.Intro().Loading {
		// Generation owns the screen until it resolves.
		return w, nil
	}

	page := w.ctrl.Intro().ActivePage

	switch msg.String() {
	case "esc":
		if page > 1 {
			w.errMsg = ""
			w.ctrl.VisitPage(page - 1)
		}
		return w, nil

	case "enter":
		return w.advance(page)
	}

	if page == 2 {
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	return w.updateInputs(msg)
}

// advance runs the active page's confirm action.
func (w *WelcomeScreen) advance(page int) (screen.Screen, tea.Cmd) {
	switch page {
	case 1:
		name := strings.TrimSpace(w.nameInput.Value())
		if name == "" {
			w.errMsg = "Tell me your name first."
			return w, nil
		}
		w.errMsg = ""
		w.ctrl.SetUserName(name)
		w.ctrl.MarkPageInput(true)
		w.ctrl.PressPageButton()
		return w, nil

	case 2:
		p := learn.AllPersonalities()[w.menu.Selected]
		w.errMsg = ""
		w.ctrl.SetPersonality(p)
		w.ctrl.MarkPageInput(true)
		w.ctrl.PressPageButton()
		return w, w.topicInput.Init()

	case 3:
		topic := strings.TrimSpace(w.topicInput.Value())
		if topic == "" {
			w.errMsg = "Enter a topic to study."
			return w, nil
		}
		w.errMsg = ""
		w.ctrl.SetTopic(topic)
		w.ctrl.MarkPageInput(true)
		w.ctrl.PressPageButton()
		return w, w.startGeneration(topic)
	}

	return w, nil
}

// startGeneration kicks off the async study-plan request. At most one
// request runs at a time; the token lets stale replies be discarded.
func (w *WelcomeScreen) startGeneration(topic string) tea.Cmd {
	tok, ok := w.ctrl.BeginListGeneration()
	if !ok {
		return nil
	}

	personality := w.ctrl.Personality()
	history := w.ctrl.History()
	gateway := w.gateway

	fetch := func() tea.Msg {
		res, err := gateway.RequestModuleList(context.Background(), topic, personality, history)
		if err != nil {
			return moduleListMsg{Tok: tok, Err: err}
		}
		modules := make([]learn.Module, 0, len(res.Modules))
		for _, d := range res.Modules {
			modules = append(modules, learn.Module{Title: d.Title, Description: d.Description})
		}
		return moduleListMsg{Tok: tok, Modules: modules, Turns: res.Turns}
	}

	return tea.Batch(fetch, w.tick())
}

func (w *WelcomeScreen) handleModuleList(msg moduleListMsg) tea.Cmd {
	if msg.Err != nil {
		if w.ctrl.FailGeneration(msg.Tok) {
			w.errMsg = "Could not build a study plan. Press enter to retry."
		}
		return nil
	}

	if !w.ctrl.ApplyModuleList(msg.Tok, msg.Modules) {
		return nil
	}
	w.ctrl.AppendHistory(msg.Turns...)
	w.ctrl.DismissIntro()

	next := w.studyFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) updateInputs(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch w.ctrl.Intro().ActivePage {
	case 1:
		w.nameInput, cmd = w.nameInput.Update(msg)
		w.ctrl.MarkPageInput(strings.TrimSpace(w.nameInput.Value()) != "")
	case 3:
		w.topicInput, cmd = w.topicInput.Update(msg)
		w.ctrl.MarkPageInput(strings.TrimSpace(w.topicInput.Value()) != "")
	}
	return w, cmd
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Sensei"))
	sections = append(sections, theme.Subtitle.Render("a personal tutor for anything"))
	sections = append(sections, "")
	sections = append(sections, w.pageDots())
	sections = append(sections, "")

	switch w.ctrl.Intro().ActivePage {
	case 1:
		sections = append(sections, theme.Body.Render("What should I call you?"))
		sections = append(sections, "")
		sections = append(sections, w.nameInput.View())
	case 2:
		sections = append(sections, theme.Body.Render("How should your teacher sound?"))
		sections = append(sections, "")
		sections = append(sections, w.menu.View())
	case 3:
		if w.ctrl.Intro().Loading {
			frame := spinnerFrames[w.tickCount%len(spinnerFrames)]
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame+" Building your study plan..."))
		} else {
			sections = append(sections, theme.Body.Render("What do you want to learn?"))
			sections = append(sections, "")
			sections = append(sections, w.topicInput.View())
		}
	}

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")

	cardWidth := width - 8
	if cardWidth > 64 {
		cardWidth = 64
	}
	card := theme.Card.Width(cardWidth).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// pageDots renders the wizard progress indicator, filling dots for visited
// pages.
func (w *WelcomeScreen) pageDots() string {
	intro := w.ctrl.Intro()
	dots := make([]string, 0, learn.IntroPageCount)
	for i := 1; i <= learn.IntroPageCount; i++ {
		style := lipgloss.NewStyle().Foreground(theme.Border)
		dot := "○"
		if intro.Pages[i].Visited {
			dot = "●"
			style = style.Foreground(theme.Primary)
		}
		if i == intro.ActivePage {
			style = style.Foreground(theme.Accent)
		}
		dots = append(dots, style.Render(dot))
	}
	return strings.Join(dots, " ")
}
