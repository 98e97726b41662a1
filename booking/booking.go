// Package booking turns the flat ticket stream the API returns into
// grouped bookings: one purchase transaction covering N seats. Everything
// here is pure and operates on values handed in by the caller; the
// functions never touch the network and are safe to re-run on every
// refresh.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"galaxy-cinema-cli/model"
)

// ErrInvalidArgument marks malformed caller input, e.g. a non-positive
// page size. Check with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Group is the set of tickets purchased under one transaction id.
// Tickets keep their input order; a Group is rebuilt from scratch on
// every refresh and never mutated afterwards.
type Group struct {
	Key     string
	Tickets []model.Ticket
}

// First returns the group's lead ticket, the one display fields are read
// from. A group built by GroupTickets is never empty.
func (g Group) First() (model.Ticket, bool) {
	if len(g.Tickets) == 0 {
		return model.Ticket{}, false
	}
	return g.Tickets[0], true
}

// TotalPrice sums ticket prices. Missing prices count as zero so the
// ticket still shows up in the total's seat count.
func (g Group) TotalPrice() float64 {
	var total float64
	for _, ticket := range g.Tickets {
		total += ticket.Price
	}
	return total
}

// SeatNames lists seat numbers in ticket order.
func (g Group) SeatNames() []string {
	names := make([]string, 0, len(g.Tickets))
	for _, ticket := range g.Tickets {
		names = append(names, ticket.SeatNumber)
	}
	return names
}

// IsFullyPaid reports whether every ticket in the group settled.
func (g Group) IsFullyPaid() bool {
	for _, ticket := range g.Tickets {
		if !ticket.IsPaymentSuccess {
			return false
		}
	}
	return true
}

// Incomplete reports whether any ticket is missing price or purchase
// time.
func (g Group) Incomplete() bool {
	for _, ticket := range g.Tickets {
		if ticket.Incomplete() {
			return true
		}
	}
	return false
}

// GroupKey is the partition key for a ticket: its appTransId, or the
// ticket's own id for legacy records without one. The fallback keeps
// orphaned tickets visible as singleton groups instead of dropping them.
func GroupKey(ticket model.Ticket) string {
	if key := strings.TrimSpace(ticket.AppTransId); key != "" {
		return key
	}
	return ticket.Id
}

// GroupTickets partitions tickets by GroupKey. The partition is stable:
// groups appear in first-seen order and tickets keep their input order
// inside each group, so regrouping the same input always yields the same
// result. Every input ticket lands in exactly one group.
func GroupTickets(tickets []model.Ticket) []Group {
	index := make(map[string]int, len(tickets))
	groups := make([]Group, 0, len(tickets))
	for _, ticket := range tickets {
		key := GroupKey(ticket)
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, Group{Key: key})
			i = len(groups) - 1
		}
		groups[i].Tickets = append(groups[i].Tickets, ticket)
	}
	return groups
}

// Query filters a grouped view. Zero values mean "no constraint".
type Query struct {
	// Text matches case-insensitively against the group key, the lead
	// ticket's film title and room number, and every seat number.
	Text string
	// From/To keep groups whose lead ticket was purchased inside the
	// range, inclusive. From is widened to start of day and To to end of
	// day.
	From time.Time
	To   time.Time
}

// Filter applies the query with AND semantics between the text and date
// predicates. A missing field on a ticket degrades that predicate to
// "no match"; it never errors.
func Filter(groups []Group, query Query) []Group {
	text := strings.ToLower(strings.TrimSpace(query.Text))
	from, to := normalizeRange(query.From, query.To)

	filtered := make([]Group, 0, len(groups))
	for _, group := range groups {
		if text != "" && !matchesText(group, text) {
			continue
		}
		if (!from.IsZero() || !to.IsZero()) && !matchesRange(group, from, to) {
			continue
		}
		filtered = append(filtered, group)
	}
	return filtered
}

func matchesText(group Group, text string) bool {
	if strings.Contains(strings.ToLower(group.Key), text) {
		return true
	}
	first, ok := group.First()
	if !ok {
		return false
	}
	if strings.Contains(strings.ToLower(first.Title), text) {
		return true
	}
	if strings.Contains(strings.ToLower(first.RoomNumber), text) {
		return true
	}
	for _, ticket := range group.Tickets {
		if strings.Contains(strings.ToLower(ticket.SeatNumber), text) {
			return true
		}
	}
	return false
}

func matchesRange(group Group, from time.Time, to time.Time) bool {
	first, ok := group.First()
	if !ok || first.PurchaseTime.IsZero() {
		return false
	}
	purchased := first.PurchaseTime.Time
	if !from.IsZero() && purchased.Before(from) {
		return false
	}
	if !to.IsZero() && purchased.After(to) {
		return false
	}
	return true
}

func normalizeRange(from time.Time, to time.Time) (time.Time, time.Time) {
	if !from.IsZero() {
		from = startOfDay(from)
	}
	if !to.IsZero() {
		to = endOfDay(to)
	}
	return from, to
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Page is one window over a filtered grouped view. TotalItems counts the
// whole filtered set, not just this window.
type Page struct {
	Items      []Group
	TotalItems int
}

// Paginate slices groups with standard offset pagination. Page numbers
// start at 1; a page past the end yields empty items with the correct
// total.
func Paginate(groups []Group, page int, pageSize int) (Page, error) {
	if page < 1 {
		return Page{}, fmt.Errorf("%w: page %d, must be >= 1", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return Page{}, fmt.Errorf("%w: page size %d, must be >= 1", ErrInvalidArgument, pageSize)
	}

	result := Page{TotalItems: len(groups)}
	start := (page - 1) * pageSize
	if start >= len(groups) {
		return result, nil
	}
	end := start + pageSize
	if end > len(groups) {
		end = len(groups)
	}
	result.Items = groups[start:end]
	return result, nil
}

// DeleteGroup returns groups without the group carrying key. It only
// updates the in-memory view; the caller is expected to re-fetch from the
// API after the remote delete lands so the view cannot diverge.
func DeleteGroup(groups []Group, key string) []Group {
	remaining := make([]Group, 0, len(groups))
	for _, group := range groups {
		if group.Key == key {
			continue
		}
		remaining = append(remaining, group)
	}
	return remaining
}

// TicketIDs collects the ids of every ticket in the group, the shape the
// delete endpoint wants.
func (g Group) TicketIDs() []string {
	ids := make([]string, 0, len(g.Tickets))
	for _, ticket := range g.Tickets {
		ids = append(ids, ticket.Id)
	}
	return ids
}
