package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcweebus/quietcurrent/internal/game"
	"github.com/mcweebus/quietcurrent/internal/play"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string

	Controller *play.Controller
	// Fresh asks for a name and garden before play starts.
	Fresh bool
	Seed  int64
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	m := newModel(a.cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

const (
	maxMessages = 260
	maxNameLen  = 24
	maxInputLen = 80
)

type screen int

const (
	screenNaming screen = iota
	screenPlay
)

type model struct {
	cfg  AppConfig
	ctrl *play.Controller

	screen  screen
	variant game.Variant
	name    string
	input   string
	recall  []string

	messages []string
	choices  []string

	width  int
	height int
	now    func() time.Time
}

func newModel(cfg AppConfig) model {
	m := model{
		cfg:     cfg,
		ctrl:    cfg.Controller,
		screen:  screenPlay,
		variant: game.VariantNetwork,
		width:   80,
		height:  24,
		now:     time.Now,
	}
	if cfg.Fresh {
		m.screen = screenNaming
	} else {
		for _, line := range m.ctrl.Resume() {
			m = m.appendMessage(line)
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			_ = m.ctrl.Close()
			return m, tea.Quit
		}
		switch m.screen {
		case screenNaming:
			return m.updateNaming(msg)
		default:
			return m.updatePlay(msg)
		}
	}
	return m, nil
}

func (m model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		if m.variant == game.VariantNetwork {
			m.variant = game.VariantCrops
		} else {
			m.variant = game.VariantNetwork
		}
	case tea.KeyBackspace:
		m.name = dropLastRune(m.name)
	case tea.KeyEnter:
		name := strings.TrimSpace(m.name)
		if name == "" {
			return m, nil
		}
		m.ctrl.Session = game.NewSession(game.NewWorld(name, m.variant, m.cfg.Seed), nil)
		m.screen = screenPlay
		m = m.appendMessage(fmt.Sprintf("%s. a panel under grime, and quiet.", name))
		m = m.appendMessage("type help for commands.")
		_ = m.ctrl.Save()
	case tea.KeyRunes, tea.KeySpace:
		if len([]rune(m.name)) < maxNameLen {
			m.name += string(msg.Runes)
		}
	}
	return m, nil
}

func (m model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyBackspace:
		m.input = dropLastRune(m.input)
	case tea.KeyUp:
		if len(m.recall) > 0 {
			m.input = m.recall[len(m.recall)-1]
		}
	case tea.KeyEsc:
		m.input = ""
	case tea.KeyRunes, tea.KeySpace:
		if len([]rune(m.input)) < maxInputLen {
			m.input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input)
	m.input = ""
	if raw == "" {
		return m, nil
	}
	m.recall = append(m.recall, raw)
	m = m.appendMessage("> " + raw)

	out := m.ctrl.Submit(raw)
	for _, line := range out.Lines {
		m = m.appendMessage(line)
	}
	for _, flash := range out.Flashes {
		m = m.appendMessage("~ " + flash)
	}
	m.choices = out.Choices
	if out.Quit {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) appendMessage(line string) model {
	line = strings.TrimSpace(line)
	if line == "" {
		return m
	}
	m.messages = append(m.messages, fmt.Sprintf("[%s] %s", m.now().Format("15:04:05"), line))
	if len(m.messages) > maxMessages {
		m.messages = append([]string(nil), m.messages[len(m.messages)-maxMessages:]...)
	}
	return m
}

func (m model) View() string {
	title := brightGreen.Render("QUIET CURRENT") + dimGreen.Render(fmt.Sprintf("  v%s  (%s)  %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate))
	rule := border.Render(strings.Repeat("-", clampInt(m.width, 20, 100)))

	var b strings.Builder
	b.WriteString(title + "\n" + rule + "\n")
	if m.screen == screenNaming {
		b.WriteString(m.namingView())
		return b.String()
	}

	b.WriteString(m.statusLine() + "\n" + rule + "\n")
	rows := clampInt(m.height-8-len(m.choices), 3, maxMessages)
	start := max(0, len(m.messages)-rows)
	for _, line := range m.messages[start:] {
		if strings.Contains(line, "] ~ ") {
			b.WriteString(amber.Render(line) + "\n")
			continue
		}
		b.WriteString(green.Render(line) + "\n")
	}
	for _, c := range m.choices {
		b.WriteString("  " + brightGreen.Render(c) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(brightGreen.Render("> "+m.input+"_") + "\n")
	b.WriteString(dimGreen.Render("enter to act, up to repeat, esc to clear, ctrl+c to save and quit"))
	return b.String()
}

func (m model) namingView() string {
	var b strings.Builder
	b.WriteString(green.Render("Name the settlement:") + "\n\n")
	b.WriteString(brightGreen.Render("  "+m.name+"_") + "\n\n")
	b.WriteString(green.Render("Garden: ") + brightGreen.Render(string(m.variant)) + "\n")
	b.WriteString(dimGreen.Render(variantBlurb(m.variant)) + "\n\n")
	b.WriteString(dimGreen.Render("tab to switch garden, enter to begin"))
	return b.String()
}

func variantBlurb(v game.Variant) string {
	if v == game.VariantCrops {
		return "dig, plant and harvest seed crops."
	}
	return "inoculate spores and let the mycelium spread."
}

func (m model) statusLine() string {
	w := m.ctrl.Session.World
	seeds := fmt.Sprintf("%s %d", w.SeedLabel(), w.Seeds)
	line := fmt.Sprintf("%s  day %d  |  panel %s %d%%  |  %s  |  power %d  scrap %d  water %d  %s",
		w.Name, w.DaysFounded, w.PanelState, w.PanelEfficiency, w.Weather, w.Power, w.Scrap, w.Water, seeds)
	if m.ctrl.Session.Visitor != nil {
		line += "  |  " + m.ctrl.Session.Visitor.Name + " waits"
	}
	return brightGreen.Render(line)
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
