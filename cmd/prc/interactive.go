package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	prc "github.com/blu-dev/prc-go"
	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	hashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// row is one visible line of the tree: the node, its path key in the
// expansion set, and the attribute text shown before it.
type row struct {
	path  string
	attr  string
	value param.Value
	depth int
}

type browserModel struct {
	err       error
	filename  string
	labels    hash40.Labels
	root      param.Value
	loaded    bool
	expanded  map[string]bool
	rows      []row
	cursor    int
	offset    int
	width     int
	height    int
	search    textinput.Model
	searching bool
}

type fileLoadedMsg struct {
	err  error
	root param.Value
}

func runInteractive(filename string, labels hash40.Labels) error {
	m := newBrowserModel(filename, labels)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBrowserModel(filename string, labels hash40.Labels) *browserModel {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search hashes and labels"

	return &browserModel{
		filename: filename,
		labels:   labels,
		expanded: map[string]bool{"": true},
		search:   search,
		width:    80,
		height:   24,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *browserModel) loadFile() tea.Msg {
	root, err := prc.DecodeFile(m.filename)
	return fileLoadedMsg{root: root, err: err}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileLoadedMsg:
		m.err = msg.err
		m.root = msg.root
		m.loaded = msg.err == nil
		m.rebuildRows()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *browserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.jumpToMatch(m.cursor + 1)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *browserModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "right", "l", "enter", " ":
		if r, ok := m.currentRow(); ok && isComposite(r.value) {
			if msg.String() == " " || msg.String() == "enter" {
				m.expanded[r.path] = !m.expanded[r.path]
			} else {
				m.expanded[r.path] = true
			}
			m.rebuildRows()
		}

	case "left", "h":
		if r, ok := m.currentRow(); ok {
			if m.expanded[r.path] {
				m.expanded[r.path] = false
			} else if i := strings.LastIndex(r.path, "/"); i >= 0 {
				// collapse the parent and move the cursor to it
				parent := r.path[:i]
				m.expanded[parent] = false
				m.rebuildRows()
				for j := range m.rows {
					if m.rows[j].path == parent {
						m.cursor = j
						break
					}
				}
			}
			m.rebuildRows()
		}

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "n":
		m.jumpToMatch(m.cursor + 1)
	}

	m.clampScroll()
	return m, nil
}

func (m *browserModel) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// rebuildRows flattens the tree into visible rows, descending only into
// expanded composites.
func (m *browserModel) rebuildRows() {
	m.rows = m.rows[:0]
	if m.loaded {
		m.appendRows(m.root, "", "", 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *browserModel) appendRows(v param.Value, path, attr string, depth int) {
	m.rows = append(m.rows, row{path: path, attr: attr, value: v, depth: depth})
	if !isComposite(v) || !m.expanded[path] {
		return
	}
	switch v.Kind {
	case param.KindList:
		for i, elem := range v.List {
			m.appendRows(elem, path+"/"+strconv.Itoa(i), strconv.Itoa(i), depth+1)
		}
	case param.KindStruct:
		for i, member := range v.Struct {
			m.appendRows(member.Value, path+"/"+strconv.Itoa(i),
				m.labels.Lookup(member.Hash), depth+1)
		}
	}
}

func (m *browserModel) jumpToMatch(from int) {
	query := strings.ToLower(m.search.Value())
	if query == "" || len(m.rows) == 0 {
		return
	}
	for i := 0; i < len(m.rows); i++ {
		idx := (from + i) % len(m.rows)
		r := m.rows[idx]
		if strings.Contains(strings.ToLower(r.attr), query) ||
			strings.Contains(strings.ToLower(renderValue(r.value, m.labels)), query) {
			m.cursor = idx
			m.clampScroll()
			return
		}
	}
}

func (m *browserModel) visibleLines() int {
	// title, status line, help line
	lines := m.height - 3
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (m *browserModel) clampScroll() {
	vis := m.visibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vis {
		m.offset = m.cursor - vis + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *browserModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("prc " + m.filename))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}
	if !m.loaded {
		b.WriteString("loading...\n")
		return b.String()
	}

	vis := m.visibleLines()
	end := m.offset + vis
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(helpStyle.Render(
			"↑/↓ move · enter expand/collapse · / search · n next · q quit"))
	}
	return b.String()
}

func (m *browserModel) renderRow(i int) string {
	r := m.rows[i]
	indent := strings.Repeat("  ", r.depth)

	var line string
	if i == m.cursor {
		line = indent + selectedStyle.Render(m.rowText(r))
	} else {
		line = indent + m.styledRowText(r)
	}
	return line
}

func (m *browserModel) rowText(r row) string {
	text := r.value.Kind.String()
	if r.attr != "" {
		text += " " + r.attr
	}
	if v := renderValue(r.value, m.labels); v != "" {
		text += " = " + v
	}
	if isComposite(r.value) {
		if m.expanded[r.path] {
			text = "▾ " + text
		} else {
			text = "▸ " + text
		}
	}
	return text
}

func (m *browserModel) styledRowText(r row) string {
	var parts []string
	marker := "  "
	if isComposite(r.value) {
		if m.expanded[r.path] {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	parts = append(parts, marker+tagStyle.Render(r.value.Kind.String()))
	if r.attr != "" {
		parts = append(parts, hashStyle.Render(r.attr))
	}
	if v := renderValue(r.value, m.labels); v != "" {
		parts = append(parts, "= "+valueStyle.Render(v))
	}
	return strings.Join(parts, " ")
}

func isComposite(v param.Value) bool {
	return v.Kind == param.KindList || v.Kind == param.KindStruct
}

// renderValue shows a scalar's value, or a size summary for composites.
func renderValue(v param.Value, labels hash40.Labels) string {
	switch v.Kind {
	case param.KindBool:
		return strconv.FormatBool(v.Bool)
	case param.KindI8:
		return strconv.FormatInt(int64(v.I8), 10)
	case param.KindU8:
		return strconv.FormatUint(uint64(v.U8), 10)
	case param.KindI16:
		return strconv.FormatInt(int64(v.I16), 10)
	case param.KindU16:
		return strconv.FormatUint(uint64(v.U16), 10)
	case param.KindI32:
		return strconv.FormatInt(int64(v.I32), 10)
	case param.KindU32:
		return strconv.FormatUint(uint64(v.U32), 10)
	case param.KindFloat:
		return strconv.FormatFloat(float64(v.Float), 'g', -1, 32)
	case param.KindHash:
		return labels.Lookup(v.Hash)
	case param.KindStr:
		return strconv.Quote(v.Str)
	case param.KindList:
		return fmt.Sprintf("(%d)", len(v.List))
	case param.KindStruct:
		return fmt.Sprintf("(%d)", len(v.Struct))
	}
	return ""
}
