package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"galaxy-cinema-cli/dashboard"
	"galaxy-cinema-cli/model"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Revenue and booking report (staff only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := requireSession()
		if err != nil {
			return err
		}
		if !session.IsStaff() {
			return fmt.Errorf("dashboard requires a staff account")
		}

		client, _ := newClient()
		ctx := cmdContext(cmd)

		days, _ := cmd.Flags().GetInt("days")
		if days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		now := time.Now()
		from := now.AddDate(0, 0, -days)

		groups, err := fetchBookings(ctx, client, true)
		if err != nil {
			return err
		}
		var tickets []model.Ticket
		for _, group := range groups {
			tickets = append(tickets, group.Tickets...)
		}

		films, err := client.GetFilms(ctx)
		if err != nil {
			return err
		}
		projections, err := client.GetProjections(ctx)
		if err != nil {
			return err
		}

		report := dashboard.Compute(tickets, films, projections, from, now, now)
		renderDashboard(report, days)
		return nil
	},
}

func renderDashboard(report dashboard.Report, days int) {
	fmt.Printf("Last %d days\n\n", days)

	stats := table.NewWriter()
	stats.SetOutputMirror(os.Stdout)
	stats.AppendRow(table.Row{"Bookings", report.Stats.TotalBookings})
	stats.AppendRow(table.Row{"Revenue", fmt.Sprintf("%.0f", report.Stats.TotalRevenue)})
	stats.AppendRow(table.Row{"Films showing", report.Stats.ActiveFilms})
	stats.AppendRow(table.Row{"Upcoming showtimes", report.Stats.UpcomingProjections})
	stats.Render()

	fmt.Println()
	popular := table.NewWriter()
	popular.SetOutputMirror(os.Stdout)
	popular.AppendHeader(table.Row{"Film", "Tickets", "Revenue"})
	for _, ranking := range report.PopularFilms {
		popular.AppendRow(table.Row{ranking.Film.Title, ranking.Tickets, fmt.Sprintf("%.0f", ranking.Revenue)})
	}
	popular.Render()

	fmt.Println()
	recent := table.NewWriter()
	recent.SetOutputMirror(os.Stdout)
	recent.AppendHeader(table.Row{"Booking", "Film", "Seats", "Purchased"})
	for _, group := range report.Recent {
		first, _ := group.First()
		purchased := ""
		if !first.PurchaseTime.IsZero() {
			purchased = first.PurchaseTime.Format("2006-01-02 15:04")
		}
		recent.AppendRow(table.Row{group.Key, first.Title, len(group.Tickets), purchased})
	}
	recent.Render()
}
