package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"galaxy-cinema-cli/model"
	"galaxy-cinema-cli/seatmap"
)

type testItem struct {
	value string
}

func (t testItem) Title() string       { return t.value }
func (t testItem) Description() string { return "" }
func (t testItem) FilterValue() string { return strings.ToLower(t.value) }

func newFilterModel(items []list.Item) *appModel {
	model := New().(appModel)
	model.state = stateSelectFilm
	model.filmList = newList("Select Film")
	model.filmList.SetItems(items)
	return &model
}

func TestHandleFilterInput_AppendsRunes(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Dune"},
		testItem{value: "Oppenheimer"},
	})

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.filmList.FilterValue(); got != "d" {
		t.Fatalf("expected filter value to be %q, got %q", "d", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")}) {
		t.Fatal("expected filter input to be handled")
	}
	if got := m.filmList.FilterValue(); got != "du" {
		t.Fatalf("expected filter value to be %q, got %q", "du", got)
	}
}

func TestHandleFilterInput_Backspace(t *testing.T) {
	m := newFilterModel([]list.Item{
		testItem{value: "Dune"},
		testItem{value: "Oppenheimer"},
	})

	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	_ = m.handleFilterInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})

	if got := m.filmList.FilterValue(); got != "du" {
		t.Fatalf("expected filter value to be %q, got %q", "du", got)
	}

	if !m.handleFilterInput(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Fatal("expected backspace to be handled")
	}
	if got := m.filmList.FilterValue(); got != "d" {
		t.Fatalf("expected filter value to be %q, got %q", "d", got)
	}
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := New().(appModel)
	m.state = stateSelectFilm

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestGroupSeatRows_SplitsByRowLetter(t *testing.T) {
	cells := []seatmap.Cell{
		{SeatId: "1", SeatNumber: "A1"},
		{SeatId: "2", SeatNumber: "A2"},
		{SeatId: "3", SeatNumber: "B1"},
		{SeatId: "4", SeatNumber: "B2"},
		{SeatId: "5", SeatNumber: "C1"},
	}

	rows := groupSeatRows(cells)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if len(rows[0]) != 2 || rows[0][0].SeatNumber != "A1" || rows[0][1].SeatNumber != "A2" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if len(rows[2]) != 1 || rows[2][0].SeatNumber != "C1" {
		t.Fatalf("unexpected last row: %+v", rows[2])
	}
}

func TestMoveCursor_ClampsToGrid(t *testing.T) {
	m := New().(appModel)
	m.layout = []model.Seat{
		{Id: "1", SeatNumber: "A1", IsAvailable: true},
		{Id: "2", SeatNumber: "A2", IsAvailable: true},
		{Id: "3", SeatNumber: "B1", IsAvailable: true},
	}
	m.sold = seatmap.SoldSet(m.layout)
	m.rebuildSeatRows()

	m.moveCursor(0, -1)
	if m.cursorRow != 0 || m.cursorCol != 0 {
		t.Fatalf("expected cursor to stay at origin, got %d,%d", m.cursorRow, m.cursorCol)
	}

	m.moveCursor(0, 5)
	if m.cursorCol != 1 {
		t.Fatalf("expected cursor col clamped to 1, got %d", m.cursorCol)
	}

	m.moveCursor(5, 0)
	if m.cursorRow != 1 {
		t.Fatalf("expected cursor row clamped to 1, got %d", m.cursorRow)
	}
	// Row B has a single seat.
	if m.cursorCol != 0 {
		t.Fatalf("expected cursor col clamped to 0, got %d", m.cursorCol)
	}
}

func TestRenderSeatMap_CountsStatuses(t *testing.T) {
	m := New().(appModel)
	m.state = stateShowSeatMap
	m.projection = model.Projection{Id: "p1", Price: 100}
	m.layout = []model.Seat{
		{Id: "1", SeatNumber: "A1", IsAvailable: true},
		{Id: "2", SeatNumber: "A2", IsAvailable: false},
		{Id: "3", SeatNumber: "A3", IsAvailable: true},
	}
	m.sold = seatmap.SoldSet(m.layout)
	m.selection.Toggle("3", m.sold)
	m.rebuildSeatRows()

	out := m.renderSeatMap()
	if !strings.Contains(out, "Available: 1") {
		t.Fatalf("expected one available seat in:\n%s", out)
	}
	if !strings.Contains(out, "Sold: 1") {
		t.Fatalf("expected one sold seat in:\n%s", out)
	}
	if !strings.Contains(out, "Selected: 1") {
		t.Fatalf("expected one selected seat in:\n%s", out)
	}

	checkout := m.checkoutView()
	if !strings.Contains(checkout, "A3") {
		t.Fatalf("expected selected seat A3 in checkout:\n%s", checkout)
	}
}

func TestSeatRowLabel(t *testing.T) {
	cases := map[string]string{
		"A1":  "A",
		"B10": "B",
		"AA7": "AA",
		"12":  "",
		"":    "",
	}
	for input, want := range cases {
		if got := seatRowLabel(input); got != want {
			t.Fatalf("seatRowLabel(%q) = %q, want %q", input, got, want)
		}
	}
}
