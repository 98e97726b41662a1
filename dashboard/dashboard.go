// Package dashboard aggregates the staff dashboard figures entirely
// client side by joining tickets to projections and films. The backend
// has no reporting endpoint, so the numbers come from the same three
// lists the management screens already fetch.
package dashboard

import (
	"sort"
	"time"

	"galaxy-cinema-cli/booking"
	"galaxy-cinema-cli/model"
)

// Stats are the headline counters.
type Stats struct {
	TotalBookings       int
	TotalRevenue        float64
	ActiveFilms         int
	UpcomingProjections int
}

// FilmRanking is one row of the popular-films table.
type FilmRanking struct {
	Film    model.Film
	Tickets int
	Revenue float64
}

type Report struct {
	Stats        Stats
	PopularFilms []FilmRanking
	Recent       []booking.Group
}

const (
	popularFilmLimit   = 5
	recentBookingLimit = 5
	// Projections starting more than this far out count as upcoming.
	upcomingHorizon = 48 * time.Hour
)

// Compute builds the dashboard. The headline counters cover tickets
// purchased inside [from, to] inclusive; the popular ranking and recent
// bookings are all-time. Tickets without a purchase time fall outside any
// range. Revenue is the price of the ticket's projection; tickets pointing
// at unknown projections count as bookings but contribute no revenue.
func Compute(tickets []model.Ticket, films []model.Film, projections []model.Projection, from time.Time, to time.Time, now time.Time) Report {
	projectionByID := make(map[string]model.Projection, len(projections))
	for _, projection := range projections {
		projectionByID[projection.Id] = projection
	}
	filmByID := make(map[string]model.Film, len(films))
	for _, film := range films {
		filmByID[film.Id] = film
	}

	var report Report

	for _, ticket := range tickets {
		if !withinRange(ticket.PurchaseTime, from, to) {
			continue
		}
		report.Stats.TotalBookings++
		if projection, ok := projectionByID[ticket.ProjectionId]; ok {
			report.Stats.TotalRevenue += projection.Price
		}
	}

	for _, film := range films {
		if film.IsShowing() {
			report.Stats.ActiveFilms++
		}
	}
	horizon := now.Add(upcomingHorizon)
	for _, projection := range projections {
		if projection.StartTime.After(horizon) {
			report.Stats.UpcomingProjections++
		}
	}

	report.PopularFilms = rankFilms(tickets, projectionByID, filmByID)
	report.Recent = recentBookings(tickets)
	return report
}

func withinRange(purchased model.Timestamp, from time.Time, to time.Time) bool {
	if purchased.IsZero() {
		return false
	}
	if !from.IsZero() && purchased.Before(from) {
		return false
	}
	if !to.IsZero() && purchased.After(to) {
		return false
	}
	return true
}

// rankFilms counts tickets per film across the whole ticket list, joining
// through each ticket's projection. Films no longer in the catalog are
// skipped.
func rankFilms(tickets []model.Ticket, projectionByID map[string]model.Projection, filmByID map[string]model.Film) []FilmRanking {
	counts := map[string]int{}
	revenue := map[string]float64{}
	var order []string

	for _, ticket := range tickets {
		projection, ok := projectionByID[ticket.ProjectionId]
		if !ok || projection.FilmId == "" {
			continue
		}
		if counts[projection.FilmId] == 0 {
			order = append(order, projection.FilmId)
		}
		counts[projection.FilmId]++
		revenue[projection.FilmId] += projection.Price
	}

	rankings := make([]FilmRanking, 0, len(order))
	for _, filmID := range order {
		film, ok := filmByID[filmID]
		if !ok {
			continue
		}
		rankings = append(rankings, FilmRanking{
			Film:    film,
			Tickets: counts[filmID],
			Revenue: revenue[filmID],
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Tickets > rankings[j].Tickets
	})
	if len(rankings) > popularFilmLimit {
		rankings = rankings[:popularFilmLimit]
	}
	return rankings
}

// recentBookings groups the full ticket list and keeps the most recently
// purchased groups, regardless of the report's date range.
func recentBookings(tickets []model.Ticket) []booking.Group {
	groups := booking.GroupTickets(tickets)
	sort.SliceStable(groups, func(i, j int) bool {
		a, _ := groups[i].First()
		b, _ := groups[j].First()
		return a.PurchaseTime.After(b.PurchaseTime.Time)
	})
	if len(groups) > recentBookingLimit {
		groups = groups[:recentBookingLimit]
	}
	return groups
}
