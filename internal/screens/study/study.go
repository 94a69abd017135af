package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/senseilabs/sensei/internal/generate"
	"github.com/senseilabs/sensei/internal/learn"
	"github.com/senseilabs/sensei/internal/router"
	"github.com/senseilabs/sensei/internal/screen"
	"github.com/senseilabs/sensei/internal/store"
	"github.com/senseilabs/sensei/internal/ui/components"
	"github.com/senseilabs/sensei/internal/ui/layout"
	"github.com/senseilabs/sensei/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const sidebarWidth = 30

type focusArea int

const (
	focusSidebar focusArea = iota
	focusContent
)

// StudyScreen is the main study platform: a module sidebar, the active
// module's content, and an in-module chat with the tutor.
type StudyScreen struct {
	ctrl           *learn.Controller
	gateway        *generate.Gateway
	sessions       store.SessionRepo
	userID         string
	welcomeFactory func() screen.Screen
	historyFactory func() screen.Screen

	focus          focusArea
	cursor         int
	scrollOffset   int
	sidebarVisible bool
	onSidebarOpen  func(bool)
	chatInput      components.TextInput
	chatOpen       bool
	chatPending    bool
	tickCount      int
	statusMsg      string
	errMsg         string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// Options carries the study screen's dependencies.
type Options struct {
	Controller     *learn.Controller
	Gateway        *generate.Gateway
	Sessions       store.SessionRepo
	UserID         string
	SidebarOpen    bool
	OnSidebarOpen  func(bool)
	WelcomeFactory func() screen.Screen
	HistoryFactory func() screen.Screen
}

// New creates a StudyScreen.
func New(opts Options) *StudyScreen {
	s := &StudyScreen{
		ctrl:           opts.Controller,
		gateway:        opts.Gateway,
		sessions:       opts.Sessions,
		userID:         opts.UserID,
		welcomeFactory: opts.WelcomeFactory,
		historyFactory: opts.HistoryFactory,
		sidebarVisible: opts.SidebarOpen,
		onSidebarOpen:  opts.OnSidebarOpen,
		chatInput:      components.NewTextInput("ask about this module", false, 200),
		cursor:         opts.Controller.Study().ActiveModule,
	}
	return s
}

func (s *StudyScreen) Title() string {
	topic := s.ctrl.Topic()
	if topic == "" {
		return "Study"
	}
	return topic
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.chatOpen {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Close chat"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open module"},
		{Key: "Tab", Description: "Focus"},
		{Key: "c", Description: "Chat"},
		{Key: "b", Description: "Sidebar"},
		{Key: "w", Description: "Save"},
		{Key: "n", Description: "New topic"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	if s.ctrl.Study().IsLoading() {
		return s.tick()
	}
	return nil
}

func (s *StudyScreen) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.ctrl.Study().IsLoading() && !s.chatPending {
			return s, nil
		}
		s.tickCount++
		return s, s.tick()

	case moduleContentMsg:
		s.handleModuleContent(msg)
		return s, nil

	case chatReplyMsg:
		s.chatPending = false
		if msg.Err != nil {
			s.errMsg = "The tutor did not answer. Try again."
			return s, nil
		}
		s.errMsg = ""
		s.ctrl.AppendModuleChat(msg.Index,
			learn.NewTurn(learn.RoleUser, msg.Question),
			learn.NewTurn(learn.RoleModel, msg.Reply))
		return s, nil

	case sessionSavedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not save this session."
		} else {
			s.statusMsg = "Session saved."
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.chatOpen {
		var cmd tea.Cmd
		s.chatInput, cmd = s.chatInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.chatOpen {
		return s.handleChatKey(msg)
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "up", "k":
		if s.focus == focusSidebar {
			if s.cursor > 0 {
				s.cursor--
			}
		} else if s.scrollOffset > 0 {
			s.scrollOffset--
		}
		return s, nil

	case "down", "j":
		if s.focus == focusSidebar {
			if s.cursor < len(s.ctrl.Study().Modules)-1 {
				s.cursor++
			}
		} else {
			s.scrollOffset++
		}
		return s, nil

	case "tab":
		if s.focus == focusSidebar {
			s.focus = focusContent
		} else {
			s.focus = focusSidebar
		}
		return s, nil

	case "b":
		s.sidebarVisible = !s.sidebarVisible
		if !s.sidebarVisible {
			s.focus = focusContent
		}
		if s.onSidebarOpen != nil {
			s.onSidebarOpen(s.sidebarVisible)
		}
		return s, nil

	case "enter":
		if s.focus == focusSidebar {
			return s, s.selectModule(s.cursor)
		}
		return s, nil

	case "c":
		if s.activeModuleOpen() {
			s.chatOpen = true
			s.statusMsg = ""
			return s, s.chatInput.Init()
		}
		return s, nil

	case "w":
		return s, s.saveSession()

	case "n":
		s.ctrl.ResetContext()
		next := s.welcomeFactory()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case "h":
		if s.historyFactory != nil {
			next := s.historyFactory()
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: next}
			}
		}
		return s, nil
	}

	return s, nil
}

func (s *StudyScreen) handleChatKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.chatOpen = false
		return s, nil
	case "enter":
		question := strings.TrimSpace(s.chatInput.Value())
		if question == "" || s.chatPending {
			return s, nil
		}
		s.chatInput.Model.SetValue("")
		return s, s.askTutor(question)
	}

	var cmd tea.Cmd
	s.chatInput, cmd = s.chatInput.Update(msg)
	return s, cmd
}

// selectModule activates a module, fetching its content first if it has
// never been opened.
func (s *StudyScreen) selectModule(i int) tea.Cmd {
	tok, fetch := s.ctrl.SelectModule(i)
	if !fetch {
		s.scrollOffset = 0
		return nil
	}

	study := s.ctrl.Study()
	mod := study.Modules[i]
	desc := generate.ModuleDescriptor{Title: mod.Title, Description: mod.Description}
	topic := s.ctrl.Topic()
	personality := s.ctrl.Personality()
	history := s.ctrl.History()
	gateway := s.gateway

	s.scrollOffset = 0
	s.errMsg = ""

	request := func() tea.Msg {
		res, err := gateway.RequestModuleContent(context.Background(), topic, desc, personality, history)
		if err != nil {
			return moduleContentMsg{Tok: tok, Index: i, Err: err}
		}
		return moduleContentMsg{Tok: tok, Index: i, Blocks: res.Blocks, Turns: res.Turns}
	}

	return tea.Batch(request, s.tick())
}

func (s *StudyScreen) handleModuleContent(msg moduleContentMsg) {
	if msg.Err != nil {
		if s.ctrl.FailGeneration(msg.Tok) {
			s.errMsg = "Could not load this module. Press enter to retry."
		}
		return
	}
	if !s.ctrl.ApplyModuleContent(msg.Tok, msg.Blocks) {
		return
	}
	s.errMsg = ""
	s.ctrl.AppendHistory(msg.Turns...)
}

// askTutor sends an in-module question. Chat has no token guard; replies
// append to the module they were asked in, which stays valid even if the
// user navigates away meanwhile.
func (s *StudyScreen) askTutor(question string) tea.Cmd {
	index := s.ctrl.Study().ActiveModule
	mod := s.ctrl.Study().Modules[index]
	history := append([]learn.ChatTurn{}, mod.ChatHistory...)
	gateway := s.gateway

	s.chatPending = true

	request := func() tea.Msg {
		reply, err := gateway.RequestChatReply(context.Background(), history, question)
		return chatReplyMsg{Index: index, Question: question, Reply: reply, Err: err}
	}

	return tea.Batch(request, s.tick())
}

// saveSession persists the current session for later resumption.
func (s *StudyScreen) saveSession() tea.Cmd {
	if s.sessions == nil {
		return nil
	}
	sess := s.ctrl.BuildSession(s.userID)
	repo := s.sessions

	return func() tea.Msg {
		_, err := repo.Save(context.Background(), sess)
		return sessionSavedMsg{Err: err}
	}
}

func (s *StudyScreen) activeModuleOpen() bool {
	study := s.ctrl.Study()
	return study.ActiveModule >= 0 &&
		study.ActiveModule < len(study.Modules) &&
		study.Modules[study.ActiveModule].Open
}

func (s *StudyScreen) View(width, height int) string {
	study := s.ctrl.Study()

	contentWidth := width
	var sidebar string
	if s.sidebarVisible {
		sidebar = s.renderSidebar(study, height)
		contentWidth = width - sidebarWidth
	}

	content := s.renderContent(study, contentWidth, height)

	if sidebar == "" {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
}

// truncateTitle shortens a title to at most max display cells, cutting
// on rune boundaries so multi-byte titles never split mid-character.
func truncateTitle(title string, max int) string {
	if lipgloss.Width(title) <= max {
		return title
	}
	runes := []rune(title)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (s *StudyScreen) renderSidebar(study learn.StudyState, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Modules"))
	b.WriteString("\n\n")

	for i, mod := range study.Modules {
		glyph := "○"
		glyphStyle := lipgloss.NewStyle().Foreground(theme.Border)
		if mod.Open {
			glyph = "●"
			glyphStyle = glyphStyle.Foreground(theme.Success)
		}
		if study.IsFetchingContent() && study.FetchTarget == i {
			glyph = spinnerFrames[s.tickCount%len(spinnerFrames)]
			glyphStyle = glyphStyle.Foreground(theme.Secondary)
		}

		title := truncateTitle(mod.Title, sidebarWidth-8)

		line := fmt.Sprintf("%s %s", glyphStyle.Render(glyph), title)
		style := theme.Unselected
		if i == s.cursor && s.focus == focusSidebar {
			style = theme.Selected
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		if i == study.ActiveModule && study.Phase == learn.PhaseViewing {
			style = style.Underline(true)
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if n := len(study.Modules); n > 0 {
		opened := 0
		for _, mod := range study.Modules {
			if mod.Open {
				opened++
			}
		}
		bar := components.NewProgressBar("", float64(opened)/float64(n), false, sidebarWidth-6)
		b.WriteString("\n")
		b.WriteString(bar.View())
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d opened", opened, n)))
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(b.String())
}

func (s *StudyScreen) renderContent(study learn.StudyState, width, height int) string {
	innerWidth := width - 6
	if innerWidth < 20 {
		innerWidth = 20
	}

	var body string
	switch {
	case study.IsFetchingList():
		frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
		body = lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(frame + " Building your study plan...")

	case study.IsFetchingContent():
		frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
		body = lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(frame + " Preparing the module...")

	case len(study.Modules) == 0:
		body = theme.Hint.Render("No modules yet. Press n to pick a topic.")

	default:
		body = s.renderModule(study, innerWidth)
	}

	sections := []string{body}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	if s.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render(s.statusMsg))
	}
	if s.chatOpen {
		sections = append(sections, s.renderChatInput())
	}

	return lipgloss.NewStyle().
		Width(width-2).
		Height(height-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(strings.Join(sections, "\n\n"))
}

func (s *StudyScreen) renderModule(study learn.StudyState, width int) string {
	mod := study.Modules[study.ActiveModule]

	var b strings.Builder
	b.WriteString(headingStyle.Render(mod.Title))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(mod.Description))
	b.WriteString("\n\n")

	if !mod.Open {
		b.WriteString(theme.Hint.Render("Press enter on a module to open it."))
		return b.String()
	}

	for _, block := range mod.Content {
		b.WriteString(renderHTML(block.HTML))
		b.WriteString("\n\n")
	}

	for _, turn := range mod.ChatHistory {
		prefix := "You: "
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if turn.Role == learn.RoleModel {
			prefix = "Tutor: "
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		for _, part := range turn.Parts {
			b.WriteString(style.Render(prefix+part.Text) + "\n")
		}
	}

	if s.chatPending {
		frame := spinnerFrames[s.tickCount%len(spinnerFrames)]
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame + " thinking..."))
		b.WriteString("\n")
	}

	wrapped := lipgloss.NewStyle().Width(width).Render(b.String())
	return s.clampScroll(wrapped)
}

// clampScroll applies manual vertical scrolling to the rendered body.
func (s *StudyScreen) clampScroll(body string) string {
	lines := strings.Split(body, "\n")
	if s.scrollOffset > len(lines)-1 {
		s.scrollOffset = len(lines) - 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
	return strings.Join(lines[s.scrollOffset:], "\n")
}

func (s *StudyScreen) renderChatInput() string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Ask the tutor:") +
		"\n" + s.chatInput.View()
}
