package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/drdavisdfelix/quiz/internal/router"
	"github.com/drdavisdfelix/quiz/internal/screen"
	"github.com/drdavisdfelix/quiz/internal/store"
	"github.com/drdavisdfelix/quiz/internal/ui/components"
	"github.com/drdavisdfelix/quiz/internal/ui/layout"
)

// Options wires the home screen to the rest of the app.
type Options struct {
	// Play builds the first setup screen of a new game.
	Play func() screen.Screen

	// History builds the past games screen. Nil hides the menu entry.
	History func() screen.Screen

	// Sessions supplies the stats bar. Nil shows no stats.
	Sessions store.SessionRepo

	// DemoMode is set when questions come from the offline demo provider.
	DemoMode bool
}

type stats struct {
	Games     int
	BestScore int
	BestTotal int
	LastScore int
	LastTotal int
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts  Options
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{{Label: "PLAY", Action: push(opts.Play)}}
	if opts.History != nil {
		items = append(items, components.MenuItem{Label: "PAST GAMES", Action: push(opts.History)})
	}
	items = append(items, components.MenuItem{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }})

	return &HomeScreen{
		opts: opts,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	repo := h.opts.Sessions
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		st, err := loadStats(context.Background(), repo)
		return statsLoadedMsg{stats: st, err: err}
	}
}

func loadStats(ctx context.Context, repo store.SessionRepo) (stats, error) {
	sessions, err := repo.List(ctx, store.QueryOpts{})
	if err != nil {
		return stats{}, err
	}
	var st stats
	for i, s := range sessions {
		if i == 0 {
			st.LastScore, st.LastTotal = s.Score, s.TotalQuestions
		}
		if st.Games == 0 || s.Score > st.BestScore ||
			(s.Score == st.BestScore && s.TotalQuestions < st.BestTotal) {
			st.BestScore, st.BestTotal = s.Score, s.TotalQuestions
		}
		st.Games++
	}
	return st, nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.err == nil {
			h.stats = msg.stats
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.opts.DemoMode:
		return MascotAlert
	case h.stats.Games > 0 && h.stats.LastTotal > 0 && h.stats.LastScore == h.stats.LastTotal:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, RenderMascot(h.mascot()))
	}
	if h.opts.DemoMode {
		sections = append(sections, renderDemoBanner(cw))
	}
	if h.opts.Sessions != nil {
		sections = append(sections, renderStatsBar(h.stats, cw))
	}
	sections = append(sections, renderArcadeMenu(h.menu, cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
