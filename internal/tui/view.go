package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C5C5C")).
			Strikethrough(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5FAF5F"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

type menuEntry struct {
	key      string
	label    string
	sortOnly bool
}

var mainMenu = []menuEntry{
	{"1", "Insert item", false},
	{"2", "List items", false},
	{"3", "Remove item", false},
	{"4", "Linear search by ID", false},
	{"5", "Binary search by ID", true},
	{"6", "Sort by rarity", true},
	{"7", "Sort by ID", true},
	{"0", "Quit", false},
}

var sortMenu = []menuEntry{
	{"1", "Bubble sort", false},
	{"2", "Selection sort", false},
	{"3", "Insertion sort", false},
	{"0", "Back", false},
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Satchel"))
	b.WriteString("\n\n")

	switch m.state {
	case stateChoose:
		b.WriteString("Choose the inventory structure:\n")
		b.WriteString(renderMenu([]menuEntry{
			{"1", "Bounded array (fixed capacity, sortable)", false},
			{"2", "Linked chain (unbounded)", false},
			{"0", "Quit", false},
		}, true))
	case stateMenu:
		b.WriteString(m.header())
		b.WriteString(renderMenu(mainMenu, m.ctrl.Sortable()))
	case stateSortMenu:
		b.WriteString(m.header())
		b.WriteString("Sort by rarity with:\n")
		b.WriteString(renderMenu(sortMenu, true))
	case statePrompt:
		b.WriteString(m.header())
		b.WriteString(m.promptLabel() + ":\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if len(m.listing) > 0 {
		b.WriteString("\n")
		b.WriteString(renderItems(m.listing))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press a number to choose. esc: back/quit, ctrl+c: quit."))
	return b.String()
}

// header summarizes the inventory state.
func (m Model) header() string {
	size := strconv.Itoa(m.ctrl.Len())
	if c := m.ctrl.Capacity(); c > 0 {
		size += "/" + strconv.Itoa(c)
	}
	line := fmt.Sprintf("Structure: %s  Items: %s", m.ctrl.Backend(), size)
	if m.ctrl.Sortable() {
		sorted := "no"
		if m.ctrl.SortedByID() {
			sorted = "yes"
		}
		line += "  Sorted by ID: " + sorted
	}
	return infoStyle.Render(line) + "\n\n"
}

// renderMenu lists entries; sort-only entries are struck through when
// sortable is false.
func renderMenu(entries []menuEntry, sortable bool) string {
	var b strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("  %s. %s", e.key, e.label)
		if e.sortOnly && !sortable {
			line = disabledStyle.Render(line + " (bounded only)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderItems(items []types.Item) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "NAME", "CATEGORY", "RARITY")
	for _, it := range items {
		t.Row(strconv.Itoa(it.ItemID), it.Name, it.Category,
			strings.Repeat("*", it.Rarity))
	}
	return t.Render()
}
