package booking

import (
	"errors"
	"testing"
	"time"

	"galaxy-cinema-cli/model"
)

func ticket(id string, appTransID string, seat string, price float64, paid bool) model.Ticket {
	return model.Ticket{
		Id:               id,
		AppTransId:       appTransID,
		SeatNumber:       seat,
		Price:            price,
		IsPaymentSuccess: paid,
	}
}

func sampleTickets() []model.Ticket {
	return []model.Ticket{
		ticket("a", "T1", "1", 80000, true),
		ticket("b", "T1", "2", 80000, true),
		ticket("c", "", "5", 90000, false),
	}
}

func TestGroupTickets_PartitionsByTransaction(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	first := groups[0]
	if first.Key != "T1" {
		t.Fatalf("expected group key T1, got %q", first.Key)
	}
	if got := first.TotalPrice(); got != 160000 {
		t.Fatalf("expected total 160000, got %v", got)
	}
	if seats := first.SeatNames(); len(seats) != 2 || seats[0] != "1" || seats[1] != "2" {
		t.Fatalf("unexpected seats: %v", seats)
	}
	if !first.IsFullyPaid() {
		t.Fatal("expected T1 fully paid")
	}

	orphan := groups[1]
	if orphan.Key != "c" {
		t.Fatalf("expected orphan keyed by own id, got %q", orphan.Key)
	}
	if got := orphan.TotalPrice(); got != 90000 {
		t.Fatalf("expected total 90000, got %v", got)
	}
	if orphan.IsFullyPaid() {
		t.Fatal("expected orphan unpaid")
	}
}

func TestGroupTickets_CardinalityPreserved(t *testing.T) {
	tickets := []model.Ticket{
		ticket("a", "T1", "1", 0, true),
		ticket("b", "", "2", 0, true),
		ticket("c", "T2", "3", 0, true),
		ticket("d", "T1", "4", 0, true),
		ticket("e", "", "5", 0, true),
	}

	groups := GroupTickets(tickets)
	total := 0
	seen := map[string]bool{}
	for _, group := range groups {
		if len(group.Tickets) == 0 {
			t.Fatalf("group %q is empty", group.Key)
		}
		total += len(group.Tickets)
		for _, tk := range group.Tickets {
			if seen[tk.Id] {
				t.Fatalf("ticket %q appears in two groups", tk.Id)
			}
			seen[tk.Id] = true
			if GroupKey(tk) != group.Key {
				t.Fatalf("ticket %q in group %q has key %q", tk.Id, group.Key, GroupKey(tk))
			}
		}
	}
	if total != len(tickets) {
		t.Fatalf("expected %d tickets across groups, got %d", len(tickets), total)
	}
}

func TestGroupTickets_Idempotent(t *testing.T) {
	tickets := sampleTickets()
	first := GroupTickets(tickets)
	second := GroupTickets(tickets)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key != second[i].Key {
			t.Fatalf("group order differs at %d: %q vs %q", i, first[i].Key, second[i].Key)
		}
		if len(first[i].Tickets) != len(second[i].Tickets) {
			t.Fatalf("group %q membership differs", first[i].Key)
		}
		for j := range first[i].Tickets {
			if first[i].Tickets[j].Id != second[i].Tickets[j].Id {
				t.Fatalf("group %q ticket order differs at %d", first[i].Key, j)
			}
		}
	}
}

func TestFilter_TextMatchesAnyField(t *testing.T) {
	tickets := []model.Ticket{
		{Id: "a", AppTransId: "TRANS-1", Title: "The Dark Knight", RoomNumber: "B201", SeatNumber: "7"},
		{Id: "b", AppTransId: "TRANS-2", Title: "Heat", RoomNumber: "A101", SeatNumber: "12"},
	}
	groups := GroupTickets(tickets)

	cases := []struct {
		text string
		want string
	}{
		{"trans-1", "TRANS-1"},
		{"dark", "TRANS-1"},
		{"b201", "TRANS-1"},
		{"12", "TRANS-2"},
	}
	for _, tc := range cases {
		got := Filter(groups, Query{Text: tc.text})
		if len(got) != 1 || got[0].Key != tc.want {
			t.Fatalf("text %q: expected only %q, got %+v", tc.text, tc.want, got)
		}
	}

	if got := Filter(groups, Query{Text: "zzz"}); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
	if got := Filter(groups, Query{}); len(got) != len(groups) {
		t.Fatalf("empty query should keep all groups, got %d", len(got))
	}
}

func TestFilter_DateRangeInclusiveOverWholeDays(t *testing.T) {
	day := time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC)
	inRange := model.Ticket{Id: "a", AppTransId: "T1",
		PurchaseTime: model.Timestamp{Time: day.Add(23*time.Hour + 50*time.Minute)}}
	before := model.Ticket{Id: "b", AppTransId: "T2",
		PurchaseTime: model.Timestamp{Time: day.Add(-time.Minute)}}
	groups := GroupTickets([]model.Ticket{inRange, before})

	// The caller passes mid-day instants; the range widens to whole days.
	got := Filter(groups, Query{From: day.Add(9 * time.Hour), To: day.Add(9 * time.Hour)})
	if len(got) != 1 || got[0].Key != "T1" {
		t.Fatalf("expected only T1, got %+v", got)
	}
}

func TestFilter_MissingPurchaseTimeNeverMatchesRange(t *testing.T) {
	groups := GroupTickets([]model.Ticket{{Id: "a", AppTransId: "T1"}})

	if got := Filter(groups, Query{From: time.Now(), To: time.Now()}); len(got) != 0 {
		t.Fatalf("group without purchase time must not match a date range, got %+v", got)
	}
	// Without a range constraint the group passes untouched.
	if got := Filter(groups, Query{}); len(got) != 1 {
		t.Fatalf("expected group kept, got %+v", got)
	}
}

func TestFilter_PredicatesCombineWithAnd(t *testing.T) {
	day := time.Date(2025, 4, 28, 12, 0, 0, 0, time.UTC)
	groups := GroupTickets([]model.Ticket{
		{Id: "a", AppTransId: "T1", Title: "Heat", PurchaseTime: model.Timestamp{Time: day}},
		{Id: "b", AppTransId: "T2", Title: "Heat", PurchaseTime: model.Timestamp{Time: day.AddDate(0, 0, -10)}},
	})

	got := Filter(groups, Query{Text: "heat", From: day, To: day})
	if len(got) != 1 || got[0].Key != "T1" {
		t.Fatalf("expected only T1, got %+v", got)
	}
}

func TestFilter_Monotone(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	for _, text := range []string{"", "t", "t1", "5", "nothing"} {
		if got := Filter(groups, Query{Text: text}); len(got) > len(groups) {
			t.Fatalf("filter %q grew the set: %d > %d", text, len(got), len(groups))
		}
	}
}

func TestPaginate_AllPagesReproduceTheSequence(t *testing.T) {
	var tickets []model.Ticket
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		tickets = append(tickets, ticket(id, "T-"+id, id, 0, true))
	}
	groups := GroupTickets(tickets)

	const pageSize = 3
	var collected []Group
	for page := 1; ; page++ {
		result, err := Paginate(groups, page, pageSize)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if result.TotalItems != len(groups) {
			t.Fatalf("page %d: total %d, want %d", page, result.TotalItems, len(groups))
		}
		if len(result.Items) == 0 {
			break
		}
		collected = append(collected, result.Items...)
	}
	if len(collected) != len(groups) {
		t.Fatalf("pages reproduced %d groups, want %d", len(collected), len(groups))
	}
	for i := range groups {
		if collected[i].Key != groups[i].Key {
			t.Fatalf("order broken at %d: %q vs %q", i, collected[i].Key, groups[i].Key)
		}
	}
}

func TestPaginate_PastTheEnd(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	result, err := Paginate(groups, 99, 10)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(result.Items) != 0 {
		t.Fatalf("expected empty page, got %+v", result.Items)
	}
	if result.TotalItems != len(groups) {
		t.Fatalf("expected total %d, got %d", len(groups), result.TotalItems)
	}
}

func TestPaginate_InvalidArguments(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	for _, tc := range []struct{ page, size int }{{0, 10}, {-1, 10}, {1, 0}, {1, -5}} {
		_, err := Paginate(groups, tc.page, tc.size)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("page=%d size=%d: expected ErrInvalidArgument, got %v", tc.page, tc.size, err)
		}
	}
}

func TestDeleteGroup(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	remaining := DeleteGroup(groups, "T1")
	if len(remaining) != 1 || remaining[0].Key != "c" {
		t.Fatalf("expected only orphan left, got %+v", remaining)
	}
	// Unknown keys leave the view untouched.
	if got := DeleteGroup(groups, "nope"); len(got) != len(groups) {
		t.Fatalf("expected no-op, got %+v", got)
	}
}

func TestGroup_TicketIDs(t *testing.T) {
	groups := GroupTickets(sampleTickets())
	ids := groups[0].TicketIDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
