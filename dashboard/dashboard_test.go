package dashboard

import (
	"testing"
	"time"

	"galaxy-cinema-cli/model"
)

func ts(t time.Time) model.Timestamp {
	return model.Timestamp{Time: t}
}

func fixtures(now time.Time) ([]model.Ticket, []model.Film, []model.Projection) {
	films := []model.Film{
		{Id: "f1", Title: "The Dark Knight", Status: model.FilmStatusShowing},
		{Id: "f2", Title: "Heat", Status: model.FilmStatusShowing},
		{Id: "f3", Title: "Old Run", Status: 0},
	}
	projections := []model.Projection{
		{Id: "p1", FilmId: "f1", Price: 80000, StartTime: ts(now.Add(72 * time.Hour))},
		{Id: "p2", FilmId: "f2", Price: 90000, StartTime: ts(now.Add(24 * time.Hour))},
	}
	tickets := []model.Ticket{
		{Id: "a", AppTransId: "T1", ProjectionId: "p1", PurchaseTime: ts(now.Add(-time.Hour))},
		{Id: "b", AppTransId: "T1", ProjectionId: "p1", PurchaseTime: ts(now.Add(-time.Hour))},
		{Id: "c", AppTransId: "T2", ProjectionId: "p2", PurchaseTime: ts(now.Add(-2 * time.Hour))},
		// Outside the range, still counted for popularity.
		{Id: "d", AppTransId: "T3", ProjectionId: "p2", PurchaseTime: ts(now.AddDate(0, 0, -30))},
		// Unknown projection: a booking, but no revenue.
		{Id: "e", AppTransId: "T4", ProjectionId: "gone", PurchaseTime: ts(now.Add(-time.Hour))},
	}
	return tickets, films, projections
}

func TestCompute_Stats(t *testing.T) {
	now := time.Date(2025, 4, 28, 12, 0, 0, 0, time.UTC)
	tickets, films, projections := fixtures(now)

	report := Compute(tickets, films, projections, now.AddDate(0, 0, -7), now, now)

	if report.Stats.TotalBookings != 4 {
		t.Fatalf("expected 4 bookings in range, got %d", report.Stats.TotalBookings)
	}
	if want := float64(80000*2 + 90000); report.Stats.TotalRevenue != want {
		t.Fatalf("expected revenue %v, got %v", want, report.Stats.TotalRevenue)
	}
	if report.Stats.ActiveFilms != 2 {
		t.Fatalf("expected 2 active films, got %d", report.Stats.ActiveFilms)
	}
	if report.Stats.UpcomingProjections != 1 {
		t.Fatalf("expected 1 upcoming projection, got %d", report.Stats.UpcomingProjections)
	}
}

func TestCompute_PopularFilms(t *testing.T) {
	now := time.Date(2025, 4, 28, 12, 0, 0, 0, time.UTC)
	tickets, films, projections := fixtures(now)

	report := Compute(tickets, films, projections, time.Time{}, time.Time{}, now)

	if len(report.PopularFilms) != 2 {
		t.Fatalf("expected 2 ranked films, got %d", len(report.PopularFilms))
	}
	if report.PopularFilms[0].Film.Id != "f1" || report.PopularFilms[0].Tickets != 2 {
		t.Fatalf("unexpected top film: %+v", report.PopularFilms[0])
	}
	if report.PopularFilms[1].Film.Id != "f2" || report.PopularFilms[1].Tickets != 2 {
		t.Fatalf("unexpected second film: %+v", report.PopularFilms[1])
	}
}

func TestCompute_RecentBookingsNewestFirst(t *testing.T) {
	now := time.Date(2025, 4, 28, 12, 0, 0, 0, time.UTC)
	tickets, films, projections := fixtures(now)

	report := Compute(tickets, films, projections, now.AddDate(0, 0, -7), now, now)

	// Recent bookings are all-time: T3 is outside the stats range but
	// still listed, after every newer booking.
	if len(report.Recent) != 4 {
		t.Fatalf("expected 4 recent bookings, got %d", len(report.Recent))
	}
	if report.Recent[0].Key != "T1" {
		t.Fatalf("expected newest booking first, got %s", report.Recent[0].Key)
	}
	if report.Recent[3].Key != "T3" {
		t.Fatalf("expected oldest booking last, got %s", report.Recent[3].Key)
	}
}

func TestCompute_EmptyInputs(t *testing.T) {
	report := Compute(nil, nil, nil, time.Time{}, time.Time{}, time.Now())
	if report.Stats.TotalBookings != 0 || report.Stats.TotalRevenue != 0 {
		t.Fatalf("unexpected stats: %+v", report.Stats)
	}
	if len(report.PopularFilms) != 0 || len(report.Recent) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
