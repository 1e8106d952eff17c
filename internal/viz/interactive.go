package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	stateMenu = iota
	statePlay
)

const customEntry = "custom"

type app struct {
	state, cursor int
	entries       []string
	base          *config.Config
	opts          Options
	width, height int
	err           error
	player        Model
}

// NewApp returns the menu model. The custom entry plays base as given; the
// other entries are the named presets with base's seed and theme.
func NewApp(base *config.Config, opts Options) tea.Model {
	return app{
		state:   stateMenu,
		entries: append([]string{customEntry}, config.ListPresets()...),
		base:    base,
		opts:    opts,
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}
	if m.state == statePlay {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
			m.player.sess.Player().Pause()
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.player.Update(msg)
		m.player = next.(Model)
		return m, cmd
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		return m.start()
	}
	return m, nil
}

func (m app) entryConfig(name string) *config.Config {
	if name == customEntry {
		return m.base
	}
	cfg := config.GetPreset(name)
	cfg.Seed, cfg.Theme, cfg.DataDir = m.base.Seed, m.base.Theme, m.base.DataDir
	return cfg
}

func (m app) start() (tea.Model, tea.Cmd) {
	cfg := m.entryConfig(m.entries[m.cursor])
	sess, err := SessionFromConfig(cfg, m.opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	opts := m.opts
	opts.Theme, opts.Seed = cfg.Theme, cfg.Seed
	m.player = NewModel(sess, opts)
	m.player.width, m.player.height = m.width, m.height
	m.state, m.err = statePlay, nil
	return m, nil
}

// SessionFromConfig builds a session for cfg.
func SessionFromConfig(cfg *config.Config, opts Options) (*session.Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return session.New(session.Options{
		Size:      cfg.Size,
		Algorithm: cfg.AlgorithmValue(),
		Pattern:   cfg.PatternValue(),
		Speed:     cfg.Speed,
		Seed:      cfg.Seed,
		Logger:    opts.Logger,
	})
}

func (m app) describe(name string) string {
	cfg := m.entryConfig(name)
	return fmt.Sprintf("%s, %d x %s, speed %d", cfg.Algorithm, cfg.Size, cfg.Pattern, cfg.Speed)
}

func (m app) View() string {
	if m.state == statePlay {
		return m.player.View()
	}
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("SORTVIZ") + "\n    " + sub.Render(trace.Describe(trace.Bubble)+" / "+trace.Describe(trace.Quick)) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.entries {
		desc := m.describe(name)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-14s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-14s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	key, hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	b.WriteString("\n    " + key.Render("j/k") + hint.Render(" navigate  ") + key.Render("enter") + hint.Render(" select  ") + key.Render("esc") + hint.Render(" back  ") + key.Render("q") + hint.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive starts the menu.
func RunInteractive(base *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewApp(base, opts), tea.WithAltScreen()).Run()
	return err
}

// RunPlayer opens the player for sess directly.
func RunPlayer(sess *session.Session, opts Options) error {
	_, err := tea.NewProgram(NewModel(sess, opts), tea.WithAltScreen()).Run()
	return err
}
