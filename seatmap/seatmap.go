// Package seatmap computes the live seat map for a projection by merging
// the room's fixed layout with the set of seats already sold and the
// caller's in-progress selection. The merge is a pure function: the
// caller refetches the sold set and recomputes after every change.
package seatmap

import (
	"sort"

	"galaxy-cinema-cli/model"
)

type Status int

const (
	Available Status = iota
	Selected
	Sold
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Selected:
		return "selected"
	case Sold:
		return "sold"
	default:
		return "unknown"
	}
}

// Cell is one seat's resolved display state.
type Cell struct {
	SeatId     string
	SeatNumber string
	Status     Status
}

// Reconcile resolves a status for every seat in layout, in layout order.
// Sold wins over Selected: if a staged selection overlaps a seat that was
// sold out from under the user, the seat renders sold rather than erroring,
// and the caller drops the stale selection on the next toggle or refresh.
func Reconcile(layout []model.Seat, sold map[string]bool, selected map[string]bool) []Cell {
	cells := make([]Cell, 0, len(layout))
	for _, seat := range layout {
		status := Available
		switch {
		case sold[seat.Id]:
			status = Sold
		case selected[seat.Id]:
			status = Selected
		}
		cells = append(cells, Cell{
			SeatId:     seat.Id,
			SeatNumber: seat.SeatNumber,
			Status:     status,
		})
	}
	return cells
}

// SoldSet extracts the sold-seat ids from a projection's seat list.
func SoldSet(seats []model.Seat) map[string]bool {
	sold := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if !seat.IsAvailable {
			sold[seat.Id] = true
		}
	}
	return sold
}

// Selection is the user's staged seat picks for one projection. A seat
// toggles Available -> Selected -> Available; sold seats never enter the
// set, and picks staged before a seat sold elsewhere are pruned on the
// next refresh.
type Selection struct {
	seats map[string]bool
}

func NewSelection() *Selection {
	return &Selection{seats: make(map[string]bool)}
}

// Toggle flips the seat in or out of the selection and reports whether it
// is selected afterwards. Toggling a sold seat is a no-op.
func (s *Selection) Toggle(seatID string, sold map[string]bool) bool {
	if sold[seatID] {
		delete(s.seats, seatID)
		return false
	}
	if s.seats[seatID] {
		delete(s.seats, seatID)
		return false
	}
	s.seats[seatID] = true
	return true
}

func (s *Selection) Has(seatID string) bool {
	return s.seats[seatID]
}

// Set returns the selection as the set shape Reconcile consumes.
func (s *Selection) Set() map[string]bool {
	return s.seats
}

// IDs returns the selected seat ids in a stable order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.seats))
	for id := range s.seats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Selection) Count() int {
	return len(s.seats)
}

func (s *Selection) Clear() {
	s.seats = make(map[string]bool)
}

// Prune drops picks that have been sold since they were staged.
func (s *Selection) Prune(sold map[string]bool) {
	for id := range s.seats {
		if sold[id] {
			delete(s.seats, id)
		}
	}
}
