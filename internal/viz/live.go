package viz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/arrays"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	sizeStep      = 5
	speedStep     = 5
	chartPoints   = 40
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// TickMsg advances playback. Gen is the player generation the tick was
// scheduled under; ticks from an older generation are dropped.
type TickMsg struct {
	Gen uint64
}

type savedMsg struct {
	id  string
	err error
}

// TraceSaver persists a recorded sequence.
type TraceSaver interface {
	Save(ctx context.Context, alg trace.Algorithm, pattern string, seed int64, input []int, seq trace.Sequence, metrics map[string]float64) (string, error)
}

// Options configures the player model.
type Options struct {
	Theme  string
	Seed   int64
	Store  TraceSaver
	Logger *slog.Logger
}

// Model renders one session and drives its player from tea.Tick messages.
type Model struct {
	sess          *session.Session
	theme         Theme
	series        metrics.Series
	baseInv       int
	seed          int64
	store         TraceSaver
	logger        *slog.Logger
	width, height int
	showHelp      bool
	status        string
}

// NewModel wraps sess for display.
func NewModel(sess *session.Session, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := Model{
		sess:   sess,
		theme:  GetTheme(opts.Theme),
		seed:   opts.Seed,
		store:  opts.Store,
		logger: opts.Logger,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.refresh()
	return m
}

// Session returns the model's session.
func (m Model) Session() *session.Session { return m.sess }

// Theme returns the active theme.
func (m Model) Theme() Theme { return m.theme }

func (m Model) Init() tea.Cmd { return nil }

func tick(gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return TickMsg{Gen: gen} })
}

// schedule returns the next tick for a playing player, or nil.
func (m Model) schedule() tea.Cmd {
	p := m.sess.Player()
	if !p.Playing() {
		return nil
	}
	return tick(p.Generation(), p.Interval())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.sess.Player()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case TickMsg:
		if !p.Tick(msg.Gen) {
			if msg.Gen != p.Generation() {
				m.logger.Debug("dropped stale tick", "gen", msg.Gen, "current", p.Generation())
			}
			return m, nil
		}
		return m, m.schedule()

	case savedMsg:
		if msg.err != nil {
			m.logger.Error("save trace", "error", msg.err)
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.logger.Info("saved trace", "id", msg.id)
			m.status = "saved " + msg.id
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if p.Toggle() {
				return m, m.schedule()
			}
		case "right", "l":
			if !p.Playing() {
				p.StepForward()
			}
		case "left", "h":
			if !p.Playing() {
				p.StepBackward()
			}
		case "home", "0":
			p.Rewind()
		case "end":
			if !p.Playing() {
				p.Seek(p.Len() - 1)
			}
		case "r":
			m.apply(m.sess.Shuffle())
		case "a":
			_, err := m.sess.SetAlgorithm(trace.Next(m.sess.Algorithm()))
			m.apply(err)
		case "p":
			_, err := m.sess.SetPattern(nextPattern(m.sess.Pattern()))
			m.apply(err)
		case "]":
			changed, err := m.sess.SetSize(m.sess.Size() + sizeStep)
			if changed || err != nil {
				m.apply(err)
			}
		case "[":
			changed, err := m.sess.SetSize(m.sess.Size() - sizeStep)
			if changed || err != nil {
				m.apply(err)
			}
		case "+", "=":
			m.sess.SetSpeed(p.Speed() + speedStep)
		case "-", "_":
			m.sess.SetSpeed(p.Speed() - speedStep)
		case "t":
			m.theme = NextTheme(m.theme)
			m.status = "theme: " + m.theme.Name
		case "?":
			m.showHelp = !m.showHelp
		case "s":
			return m, m.save()
		}
	}
	return m, nil
}

// apply refreshes derived state after the session re-recorded. Any pending
// tick now carries a stale generation.
func (m *Model) apply(err error) {
	if err != nil {
		m.logger.Error("update session", "error", err)
		m.status = err.Error()
		return
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.series = metrics.NewSeries(m.sess.Sequence())
	m.baseInv = arrays.Inversions(m.sess.Base())
}

func (m Model) save() tea.Cmd {
	if m.store == nil {
		return func() tea.Msg { return savedMsg{err: fmt.Errorf("no store configured")} }
	}
	store, alg, pattern, seed := m.store, m.sess.Algorithm(), string(m.sess.Pattern()), m.seed
	base, seq := m.sess.Base(), m.sess.Sequence()
	return func() tea.Msg {
		id, err := store.Save(context.Background(), alg, pattern, seed, base, seq, metrics.Collect(seq, metrics.Defaults()...))
		return savedMsg{id: id, err: err}
	}
}

func nextPattern(p arrays.Pattern) arrays.Pattern {
	all := arrays.Patterns()
	for i, q := range all {
		if q == p {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func statusText(f playback.Frame) string {
	switch {
	case f.Playing:
		return StatusPlaying.Render("PLAYING")
	case f.State == playback.Finished && f.Total > 0:
		return StatusFinished.Render("SORTED")
	case f.State == playback.Idle:
		return StatusPaused.Render("READY")
	default:
		return StatusPaused.Render("PAUSED")
	}
}

func highlightText(f playback.Frame, th Theme) string {
	switch f.Kind {
	case trace.KindComparing:
		return lipgloss.NewStyle().Foreground(th.Comparing).Render(fmt.Sprintf("compare %d, %d", f.Pair[0], f.Pair[1]))
	case trace.KindSwapping:
		return lipgloss.NewStyle().Foreground(th.Swapping).Render(fmt.Sprintf("swap %d, %d", f.Pair[0], f.Pair[1]))
	}
	return "-"
}

// inversionHistory returns the inversion counts up to index, downsampled to
// at most chartPoints values.
func (m Model) inversionHistory(index int) []float64 {
	hist := []float64{float64(m.baseInv)}
	if index < 0 {
		return hist
	}
	stride := (index+1)/chartPoints + 1
	for i := 0; i <= index && i < m.series.Len(); i += stride {
		hist = append(hist, float64(m.series.Inversions[i]))
	}
	if index < m.series.Len() && (index%stride) != 0 {
		hist = append(hist, float64(m.series.Inversions[index]))
	}
	return hist
}

func (m Model) panel(f playback.Frame) string {
	var s strings.Builder
	alg := m.sess.Algorithm()
	s.WriteString(headerStyle.Foreground(m.theme.Accent).Render(strings.ToUpper(string(alg))+" SORT") + "\n")
	s.WriteString(statusText(f) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Pattern", string(m.sess.Pattern()))
	row("Size", fmt.Sprintf("%d", len(f.Array)))
	row("Speed", fmt.Sprintf("%d (%s/step)", m.sess.Player().Speed(), m.sess.Player().Interval()))
	row("Step", fmt.Sprintf("%d / %d", f.Index+1, f.Total))
	row("Action", highlightText(f, m.theme))

	comps, swaps, inv := m.series.At(f.Index, m.baseInv)
	row("Compares", fmt.Sprintf("%d", comps))
	row("Swaps", fmt.Sprintf("%d", swaps))
	row("Inversions", fmt.Sprintf("%d", inv))

	progress := 1.0
	if f.Total > 0 {
		progress = float64(f.Index+1) / float64(f.Total)
	}
	s.WriteString("\n" + ProgressBar(progress, 30) + "\n")

	if hist := m.inversionHistory(f.Index); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("Inversions"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.status != "" {
		s.WriteString(KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Play/Pause ←→:Step Q:Quit\nR:Shuffle A:Algo P:Pattern\n[ ]:Size +-:Speed ?:Help"))
	return panelStyle.Render(s.String())
}

func (m Model) View() string {
	f := m.sess.Frame()
	barsW := m.width - 50
	if barsW < 20 {
		barsW = 20
	}
	barsH := m.height - 4
	if barsH < 5 {
		barsH = 5
	}
	bars := chartStyle.Render(RenderBars(f, barsW, barsH, m.theme))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, bars, m.panel(f))
	if m.showHelp {
		return helpBox + "\n\n" + mainView
	}
	return mainView
}

const helpBox = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play / pause             ║
║  ← / →    - Step back / forward      ║
║  Home     - Rewind                   ║
║  End      - Jump to sorted           ║
║  R        - New array                ║
║  A        - Next algorithm           ║
║  P        - Next input pattern       ║
║  [ / ]    - Shrink / grow array      ║
║  + / -    - Speed up / slow down     ║
║  T        - Cycle themes             ║
║  S        - Save trace               ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
