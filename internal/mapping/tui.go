package mapping

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UI States
type state int

const (
	stateSelectColumn state = iota
	stateSelectKind
	stateCustomName
)

// UIConfig represents UI configuration settings
type UIConfig struct {
	RowsPerPage int
}

// kindOption is one choice in the property selection list
type kindOption struct {
	label    string
	kind     Kind
	property string
	custom   bool
	ignore   bool
	clear    bool
}

var kindOptions = []kindOption{
	{label: "core: title (document theme)", kind: KindCore, property: "title"},
	{label: "core: subject (Sunday name)", kind: KindCore, property: "subject"},
	{label: "core: author (preacher)", kind: KindCore, property: "author"},
	{label: "custom property…", custom: true},
	{label: "ignore this column", ignore: true},
	{label: "clear mapping", clear: true},
}

// model represents the TUI model
type model struct {
	columns []string
	config  *Config

	// UI state
	state         state
	currentColumn string

	// Column list navigation
	cursor      int
	page        int
	rowsPerPage int

	// Kind selection
	kindCursor int

	// Custom property name entry
	input textinput.Model

	// Screen dimensions
	width  int
	height int

	saved bool

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	mappedStyle   lipgloss.Style
	ignoredStyle  lipgloss.Style
}

func initialModel(columns []string, config *Config, uiConfig UIConfig) model {
	input := textinput.New()
	input.Placeholder = "@PROPERTY NAME"
	input.CharLimit = 64

	rowsPerPage := uiConfig.RowsPerPage
	if rowsPerPage < 5 {
		rowsPerPage = 5
	}

	return model{
		columns:     columns,
		config:      config,
		state:       stateSelectColumn,
		rowsPerPage: rowsPerPage,
		input:       input,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		selectedStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		normalStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		mappedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Padding(0, 1),
		ignoredStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true).
			Padding(0, 1),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch m.state {
		case stateSelectColumn:
			return m.updateSelectColumn(msg)
		case stateSelectKind:
			return m.updateSelectKind(msg)
		case stateCustomName:
			return m.updateCustomName(msg)
		}
	}
	return m, nil
}

func (m model) updateSelectColumn(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.columns)-1 {
			m.cursor++
		}

	case "left", "h":
		m.cursor -= m.rowsPerPage
		if m.cursor < 0 {
			m.cursor = 0
		}

	case "right", "l":
		m.cursor += m.rowsPerPage
		if m.cursor > len(m.columns)-1 {
			m.cursor = len(m.columns) - 1
		}

	case "i":
		if len(m.columns) > 0 {
			m.config.Ignore(m.columns[m.cursor])
		}

	case "c":
		if len(m.columns) > 0 {
			m.config.Clear(m.columns[m.cursor])
		}

	case "enter", " ":
		if len(m.columns) > 0 {
			m.currentColumn = m.columns[m.cursor]
			m.kindCursor = 0
			m.state = stateSelectKind
		}

	case "s":
		m.saved = true
		return m, tea.Quit
	}

	m.page = m.cursor / m.rowsPerPage
	return m, nil
}

func (m model) updateSelectKind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc", "q":
		m.state = stateSelectColumn

	case "up", "k":
		if m.kindCursor > 0 {
			m.kindCursor--
		}

	case "down", "j":
		if m.kindCursor < len(kindOptions)-1 {
			m.kindCursor++
		}

	case "enter", " ":
		opt := kindOptions[m.kindCursor]
		switch {
		case opt.custom:
			m.input.SetValue(defaultCustomName(m.currentColumn))
			m.input.Focus()
			m.state = stateCustomName
			return m, textinput.Blink
		case opt.ignore:
			m.config.Ignore(m.currentColumn)
			m.state = stateSelectColumn
		case opt.clear:
			m.config.Clear(m.currentColumn)
			m.state = stateSelectColumn
		default:
			m.config.Set(m.currentColumn, opt.kind, opt.property)
			m.state = stateSelectColumn
		}
	}
	return m, nil
}

func (m model) updateCustomName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.input.Blur()
		m.state = stateSelectKind
		return m, nil

	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name != "" {
			m.config.Set(m.currentColumn, KindCustom, name)
		}
		m.input.Blur()
		m.state = stateSelectColumn
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	switch m.state {
	case stateSelectKind:
		return m.viewSelectKind()
	case stateCustomName:
		return m.viewCustomName()
	default:
		return m.viewSelectColumn()
	}
}

func (m model) viewSelectColumn() string {
	var b strings.Builder

	mapped := 0
	for _, col := range m.columns {
		if pm, ok := m.config.Lookup(col); ok && !pm.IsIgnored {
			mapped++
		}
	}

	b.WriteString(m.titleStyle.Render("Schedule Column → Document Property"))
	b.WriteString(fmt.Sprintf("  (%d/%d mapped)\n\n", mapped, len(m.columns)))

	start := m.page * m.rowsPerPage
	end := start + m.rowsPerPage
	if end > len(m.columns) {
		end = len(m.columns)
	}

	for i := start; i < end; i++ {
		col := m.columns[i]
		label := col
		style := m.normalStyle

		if pm, ok := m.config.Lookup(col); ok {
			if pm.IsIgnored {
				label = fmt.Sprintf("%s (ignored)", col)
				style = m.ignoredStyle
			} else {
				label = fmt.Sprintf("%s → %s:%s", col, pm.Kind, pm.Property)
				style = m.mappedStyle
			}
		}

		if i == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + label))
		} else {
			b.WriteString(style.Render("  " + label))
		}
		b.WriteString("\n")
	}

	totalPages := (len(m.columns) + m.rowsPerPage - 1) / m.rowsPerPage
	if totalPages > 1 {
		b.WriteString(fmt.Sprintf("\npage %d/%d\n", m.page+1, totalPages))
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("enter: map column • i: ignore • c: clear • s: save & quit • q: quit without saving"))
	return b.String()
}

func (m model) viewSelectKind() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(fmt.Sprintf("Map column %q to:", m.currentColumn)))
	b.WriteString("\n\n")

	for i, opt := range kindOptions {
		if i == m.kindCursor {
			b.WriteString(m.selectedStyle.Render("> " + opt.label))
		} else {
			b.WriteString(m.normalStyle.Render("  " + opt.label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("enter: select • esc: back"))
	return b.String()
}

func (m model) viewCustomName() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Render(fmt.Sprintf("Custom property name for %q:", m.currentColumn)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render("enter: confirm • esc: back"))
	return b.String()
}

// defaultCustomName proposes a property name in the schedule's convention:
// "@" plus the upper-cased column header.
func defaultCustomName(column string) string {
	return "@" + strings.ToUpper(strings.TrimSpace(column))
}

// RunMappingTUI opens the interactive editor for the given schedule columns
// and writes the mapping file when the user saves.
func RunMappingTUI(columns []string, config *Config, outputFile string, uiConfig UIConfig) error {
	m := initialModel(columns, config, uiConfig)

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run mapping tool: %v", err)
	}

	final, ok := finalModel.(model)
	if !ok || !final.saved {
		fmt.Println("Mapping not saved.")
		return nil
	}

	if err := final.config.SaveToFile(outputFile); err != nil {
		return fmt.Errorf("failed to save mapping file: %v", err)
	}
	fmt.Printf("✓ Mapping saved to '%s'\n", outputFile)
	return nil
}
