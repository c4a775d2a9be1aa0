// Package tui is the interactive menu over a session.Controller. It reads
// menu choices and operands, calls one controller operation per command and
// shows the returned outcome.
package tui

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/satchel/internal/journal"
	"github.com/mesh-intelligence/satchel/internal/session"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Opener creates the controller once the user picks a structure.
type Opener func(backend string) (*session.Controller, error)

type state int

const (
	stateChoose state = iota
	stateMenu
	stateSortMenu
	statePrompt
)

type action int

const (
	actionInsert action = iota
	actionRemove
	actionLinearSearch
	actionBinarySearch
)

// field reads one operand of the insert prompt into the draft item.
type field struct {
	label string
	apply func(it *types.Item, raw string) error
}

var insertFields = []field{
	{"ID (positive integer)", func(it *types.Item, raw string) error {
		id, err := parseID(raw)
		it.ItemID = id
		return err
	}},
	{"Name (up to " + strconv.Itoa(types.MaxNameLen) + " characters)", func(it *types.Item, raw string) error {
		if raw == "" || utf8.RuneCountInString(raw) > types.MaxNameLen {
			return types.ErrInvalidName
		}
		it.Name = raw
		return nil
	}},
	{"Category (up to " + strconv.Itoa(types.MaxCategoryLen) + " characters)", func(it *types.Item, raw string) error {
		if utf8.RuneCountInString(raw) > types.MaxCategoryLen {
			return types.ErrInvalidCategory
		}
		it.Category = raw
		return nil
	}},
	{"Rarity (1-5)", func(it *types.Item, raw string) error {
		r, err := strconv.Atoi(raw)
		if err != nil || r < types.MinRarity || r > types.MaxRarity {
			return types.ErrInvalidRarity
		}
		it.Rarity = r
		return nil
	}},
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, types.ErrInvalidID
	}
	return id, nil
}

// prompt tracks an operation waiting for operands.
type prompt struct {
	action action
	step   int
	draft  types.Item
}

// Model is the bubbletea model of one session.
type Model struct {
	state    state
	ctrl     *session.Controller
	open     Opener
	input    textinput.Model
	prompt   prompt
	status   string
	failed   bool
	listing  []types.Item
	quitting bool
}

// New returns the menu model. With a nil ctrl the menu first asks which
// structure to use and calls open with the choice.
func New(ctrl *session.Controller, open Opener) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{ctrl: ctrl, open: open, input: ti}
	if ctrl != nil {
		m.state = stateMenu
	}
	return m
}

// Controller returns the session controller, or nil if none was opened.
func (m Model) Controller() *session.Controller { return m.ctrl }

// ProgramOptions returns the bubbletea options for running on in and out.
func ProgramOptions(in io.Reader, out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	}
}

// Run runs the menu until the user quits and returns the final model.
func Run(m Model, opts ...tea.ProgramOption) (Model, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if fm, ok := final.(Model); ok {
		return fm, err
	}
	return m, err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == statePrompt {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEsc:
		switch m.state {
		case statePrompt, stateSortMenu:
			m.state = stateMenu
			m.input.Blur()
			m.setStatus("Cancelled.", false)
			return m, nil
		default:
			return m.quit()
		}
	}

	switch m.state {
	case stateChoose:
		return m.updateChoose(key.String())
	case stateMenu:
		return m.updateMenu(key.String())
	case stateSortMenu:
		return m.updateSortMenu(key.String())
	case statePrompt:
		if key.Type == tea.KeyEnter {
			return m.submit()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateChoose(key string) (tea.Model, tea.Cmd) {
	var backend string
	switch key {
	case "1":
		backend = types.KindBounded
	case "2":
		backend = types.KindLinked
	case "0", "q":
		return m.quit()
	default:
		return m, nil
	}

	ctrl, err := m.open(backend)
	if err != nil {
		m.setStatus("Error: "+err.Error(), true)
		return m, nil
	}
	m.ctrl = ctrl
	m.state = stateMenu
	m.setStatus("Using the "+backend+" inventory.", false)
	return m, nil
}

func (m Model) updateMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		return m.startPrompt(actionInsert)
	case "2":
		m.show(m.ctrl.List())
	case "3":
		return m.startPrompt(actionRemove)
	case "4":
		return m.startPrompt(actionLinearSearch)
	case "5":
		if !m.ctrl.Sortable() {
			m.setStatus("Binary search is not available for the linked inventory.", true)
			return m, nil
		}
		if !m.ctrl.SortedByID() {
			m.setStatus("Binary search requires the inventory to be sorted by ID. Use option 7 first.", true)
			return m, nil
		}
		return m.startPrompt(actionBinarySearch)
	case "6":
		if !m.ctrl.Sortable() {
			m.setStatus("Sorting is not available for the linked inventory.", true)
			return m, nil
		}
		m.state = stateSortMenu
	case "7":
		m.show(m.ctrl.SortByIdentifier())
	case "0", "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateSortMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1", "2", "3":
		i, _ := strconv.Atoi(key)
		m.show(m.ctrl.SortByRarity(types.RarityAlgorithms[i-1]))
		m.state = stateMenu
	case "0":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) startPrompt(a action) (tea.Model, tea.Cmd) {
	m.state = statePrompt
	m.prompt = prompt{action: a}
	m.input.Reset()
	m.input.Placeholder = m.promptLabel()
	return m, m.input.Focus()
}

// promptLabel describes the operand the prompt is waiting for.
func (m Model) promptLabel() string {
	switch m.prompt.action {
	case actionInsert:
		return insertFields[m.prompt.step].label
	case actionRemove:
		return "ID to remove"
	default:
		return "ID to search"
	}
}

// submit consumes the typed operand. Invalid input keeps the prompt open on
// the same operand.
func (m Model) submit() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	if m.prompt.action == actionInsert {
		f := insertFields[m.prompt.step]
		if err := f.apply(&m.prompt.draft, raw); err != nil {
			m.setStatus("Invalid input: "+err.Error()+". Try again.", true)
			return m, nil
		}
		m.prompt.step++
		if m.prompt.step < len(insertFields) {
			m.input.Placeholder = m.promptLabel()
			m.setStatus("", false)
			return m, nil
		}
		return m.finishPrompt(m.ctrl.Insert(m.prompt.draft))
	}

	id, err := parseID(raw)
	if err != nil {
		m.setStatus("Invalid input: "+err.Error()+". Try again.", true)
		return m, nil
	}
	switch m.prompt.action {
	case actionRemove:
		return m.finishPrompt(m.ctrl.Remove(id))
	case actionLinearSearch:
		return m.finishPrompt(m.ctrl.LinearSearch(id))
	default:
		return m.finishPrompt(m.ctrl.BinarySearch(id))
	}
}

func (m Model) finishPrompt(o session.Outcome) (tea.Model, tea.Cmd) {
	m.show(o)
	m.state = stateMenu
	m.input.Blur()
	return m, nil
}

// show records o as the status line. Listings replace the displayed table;
// a found item is shown on its own.
func (m *Model) show(o session.Outcome) {
	m.setStatus(o.Message, !o.OK && o.Err != nil)
	switch {
	case o.Op == journal.OpList:
		m.listing = o.Items
	case o.OK && (o.Op == journal.OpLinearSearch || o.Op == journal.OpBinarySearch):
		m.listing = []types.Item{o.Item}
	default:
		m.listing = nil
	}
}

func (m *Model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
}
