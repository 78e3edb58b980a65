// Package app hosts a quiz session in the terminal.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/screens/history"
	"github.com/drdavisdfelix/quiz/internal/screens/home"
	"github.com/drdavisdfelix/quiz/internal/screens/quiz"
	"github.com/drdavisdfelix/quiz/internal/screens/setup"
	"github.com/drdavisdfelix/quiz/internal/screens/welcome"
	"github.com/drdavisdfelix/quiz/internal/session"
	"github.com/drdavisdfelix/quiz/internal/store"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	// Session is the quiz session the terminal drives. Required.
	Session *session.Session

	// Sessions feeds the home stats and the past games screen. Optional.
	Sessions store.SessionRepo

	// Events supplies per-question detail for past games. Optional.
	Events store.EventRepo

	// Quiz configures the quiz screen. Its Home is set by the app.
	Quiz quiz.Options

	// DemoMode is set when questions come from the offline demo provider.
	DemoMode bool

	// SkipWelcome starts on the home screen.
	SkipWelcome bool

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	width  int
	height int
}

// newAppModel builds the screen graph and starts on the welcome screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	sess := opts.Session

	var homeScreen func() screen.Screen
	quizOpts := opts.Quiz
	quizOpts.Logger = opts.Logger
	quizOpts.Home = func() screen.Screen { return homeScreen() }

	homeOpts := home.Options{
		Play: func() screen.Screen {
			return setup.New(sess, func() screen.Screen { return quiz.New(sess, quizOpts) })
		},
		Sessions: opts.Sessions,
		DemoMode: opts.DemoMode,
	}
	if opts.Sessions != nil {
		homeOpts.History = func() screen.Screen { return history.New(opts.Sessions, opts.Events) }
	}
	homeScreen = func() screen.Screen { return home.New(homeOpts) }

	initial := screen.Screen(welcome.New(homeScreen))
	if opts.SkipWelcome {
		initial = homeScreen()
	}
	return AppModel{
		router: router.New(initial),
		sess:   sess,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) status() string {
	if m.sess == nil {
		return ""
	}
	switch m.sess.Phase() {
	case session.PhaseInProgress, session.PhaseEnded:
		return m.sess.Snapshot().ScoreText
	}
	return ""
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

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
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

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
