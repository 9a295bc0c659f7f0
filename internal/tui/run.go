package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"urikit/internal/history"
	"urikit/internal/store"
	"urikit/internal/uri"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const recentLimit = 50

// Run starts the interactive resolver. Resolutions confirmed with Enter are
// recorded through engine; s feeds the recent history pane and may be nil.
func Run(ctx context.Context, engine *history.Engine, s *store.Store, base string) error {
	m := newModel(ctx, engine, s, base)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return err
	}
	return nil
}

const (
	fieldBase = iota
	fieldRef
)

var ops = []string{store.OpMerge, store.OpAppend, store.OpEdit}

type model struct {
	ctx    context.Context
	engine *history.Engine
	store  *store.Store

	op     int
	inputs [2]string
	focus  int

	result string
	comps  uri.Components
	err    error

	recent []store.Resolution
	sel    int
	status string

	width  int
	height int
}

func newModel(ctx context.Context, engine *history.Engine, s *store.Store, base string) model {
	m := model{ctx: ctx, engine: engine, store: s, focus: fieldRef}
	m.inputs[fieldBase] = base
	m.recompute()
	return m
}

func (m model) Init() tea.Cmd {
	return m.loadRecentCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case recentLoadedMsg:
		m.recent = msg.rows
		if m.sel >= len(m.recent) {
			m.sel = max(0, len(m.recent)-1)
		}
		return m, nil
	case recordedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, m.loadRecentCmd()
		}
		m.status = "recorded " + emptyTo(msg.res.ID, "(history off)")
		return m, m.loadRecentCmd()
	case errMsg:
		m.status = "error: " + msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.focus = 1 - m.focus
			return m, nil
		case "ctrl+o":
			m.op = (m.op + 1) % len(ops)
			m.recompute()
			return m, nil
		case "up":
			if m.sel > 0 {
				m.sel--
			}
			return m, nil
		case "down":
			if m.sel < len(m.recent)-1 {
				m.sel++
			}
			return m, nil
		case "ctrl+l":
			m.loadSelected()
			return m, nil
		case "ctrl+u":
			m.inputs[m.focus] = ""
			m.recompute()
			return m, nil
		case "enter":
			return m, m.recordCmd()
		case "backspace":
			if rs := []rune(m.inputs[m.focus]); len(rs) > 0 {
				m.inputs[m.focus] = string(rs[:len(rs)-1])
				m.recompute()
			}
			return m, nil
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				m.inputs[m.focus] += string(msg.Runes)
				m.recompute()
				return m, nil
			}
		}
	}
	return m, nil
}

// recompute resolves the current inputs, on every keystroke.
func (m *model) recompute() {
	m.result, m.err = history.Apply(ops[m.op], m.inputs[fieldBase], m.inputs[fieldRef])
	m.comps = uri.Components{}
	if m.err == nil {
		m.comps, _ = uri.Parse(m.result)
	}
}

// loadSelected copies the selected history entry into the inputs.
func (m *model) loadSelected() {
	if len(m.recent) == 0 {
		return
	}
	r := m.recent[m.sel]
	for i, op := range ops {
		if op == r.Op {
			m.op = i
		}
	}
	m.inputs[fieldBase] = r.Base
	m.inputs[fieldRef] = r.Ref
	m.status = "loaded " + r.ID
	m.recompute()
}

func (m model) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("urikit")
	header := fmt.Sprintf("%s  op=%s", title, ops[m.op])
	if m.status != "" {
		header += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(m.status)
	}
	header += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		"keys: tab switch field, ctrl+o op, enter record, up/down + ctrl+l load entry, ctrl+u clear, esc quit")

	leftW := min(80, max(40, m.width*3/5))
	rightW := max(20, m.width-leftW-2)
	h := max(8, m.height-5)

	left := m.renderResolver(leftW, h)
	right := renderRecent(m.recent, m.sel, rightW, h)
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m model) renderResolver(w, h int) string {
	refLabel := map[string]string{
		store.OpMerge:  "ref ",
		store.OpAppend: "path",
		store.OpEdit:   "patch",
	}[ops[m.op]]

	var b strings.Builder
	b.WriteString(renderInput("base", m.inputs[fieldBase], m.focus == fieldBase, w-4))
	b.WriteString(renderInput(refLabel, m.inputs[fieldRef], m.focus == fieldRef, w-4))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(truncate(m.err.Error(), w-4)))
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")).Render(truncate(emptyTo(m.result, `""`), w-4)))
		b.WriteString("\n\n")
		for _, row := range componentRows(m.comps) {
			b.WriteString(truncate(fmt.Sprintf("  %-8s %s", row[0], row[1]), w-4))
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(w).Height(h).Border(lipgloss.RoundedBorder()).Render(b.String())
}

func renderInput(label, value string, focused bool, w int) string {
	prefix := "  "
	style := lipgloss.NewStyle()
	if focused {
		prefix = "> "
		style = style.Bold(true)
		value += "_"
	}
	return style.Render(truncate(fmt.Sprintf("%s%-5s %s", prefix, label, value), w)) + "\n"
}

func componentRows(c uri.Components) [][2]string {
	var rows [][2]string
	add := func(name string, v *string) {
		if v != nil {
			rows = append(rows, [2]string{name, emptyTo(*v, `""`)})
		}
	}
	add("scheme", c.Scheme)
	add("host", c.Host)
	if c.Port != nil {
		rows = append(rows, [2]string{"port", strconv.Itoa(*c.Port)})
	}
	add("path", c.Path)
	add("query", c.Query)
	add("fragment", c.Fragment)
	return rows
}

func renderRecent(rows []store.Resolution, sel, w, h int) string {
	if len(rows) == 0 {
		return lipgloss.NewStyle().Width(w).Height(h).Border(lipgloss.RoundedBorder()).Render("No history yet.")
	}
	var b strings.Builder
	for i, r := range rows {
		if i >= h {
			break
		}
		prefix := "  "
		if i == sel {
			prefix = "> "
		}
		out := r.Result
		if r.Error != "" {
			out = "!"
		}
		b.WriteString(truncate(fmt.Sprintf("%s%s %s %s", prefix, r.Op, r.Ref, out), w))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(w).Height(h).Border(lipgloss.RoundedBorder()).Render(b.String())
}

type recentLoadedMsg struct{ rows []store.Resolution }
type recordedMsg struct {
	res history.Result
	err error
}
type errMsg struct{ err error }

func (m model) loadRecentCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	// Capture values to avoid race conditions.
	ctx := m.ctx
	st := m.store
	return func() tea.Msg {
		rows, err := st.List(ctx, store.ListFilter{Limit: recentLimit})
		if err != nil {
			return errMsg{err: err}
		}
		return recentLoadedMsg{rows: rows}
	}
}

func (m model) recordCmd() tea.Cmd {
	// Capture values to avoid race conditions.
	ctx := m.ctx
	engine := m.engine
	op := ops[m.op]
	base, ref := m.inputs[fieldBase], m.inputs[fieldRef]
	return func() tea.Msg {
		if engine == nil {
			return recordedMsg{err: fmt.Errorf("no history engine")}
		}
		res, err := engine.Resolve(ctx, op, base, ref)
		return recordedMsg{res: res, err: err}
	}
}

func truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= maxW {
		return s
	}
	if maxW <= 1 {
		return string(rs[:maxW])
	}
	return string(rs[:maxW-1]) + "…"
}

func emptyTo(s, v string) string {
	if strings.TrimSpace(s) == "" {
		return v
	}
	return s
}
