package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"galaxy-cinema-cli/booking"
	"galaxy-cinema-cli/model"
	"galaxy-cinema-cli/service"
)

const ticketFetchSize = 1000

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings grouped by transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := requireSession()
		if err != nil {
			return err
		}

		client, cfg := newClient()
		ctx := cmdContext(cmd)

		all, _ := cmd.Flags().GetBool("all")
		if all && !session.IsStaff() {
			return fmt.Errorf("--all requires a staff account")
		}

		groups, err := fetchBookings(ctx, client, all)
		if err != nil {
			return err
		}

		query, err := queryFromFlags(cmd)
		if err != nil {
			return err
		}
		groups = booking.Filter(groups, query)

		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		if pageSize == 0 {
			pageSize = cfg.PageSize
		}
		result, err := booking.Paginate(groups, page, pageSize)
		if err != nil {
			return err
		}

		renderBookingTable(result, page, pageSize)
		return nil
	},
}

var bookingsDeleteCmd = &cobra.Command{
	Use:   "delete <booking-id>",
	Short: "Cancel a booking and all its tickets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := requireSession()
		if err != nil {
			return err
		}

		client, _ := newClient()
		ctx := cmdContext(cmd)

		groups, err := fetchBookings(ctx, client, session.IsStaff())
		if err != nil {
			return err
		}

		key := args[0]
		var target booking.Group
		found := false
		for _, group := range groups {
			if group.Key == key {
				target = group
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("booking %q not found", key)
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			first, _ := target.First()
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Cancel %s (%d tickets) for %s", key, len(target.Tickets), first.Title),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				if errors.Is(err, promptui.ErrAbort) {
					fmt.Println("Aborted")
					return nil
				}
				return err
			}
		}

		if err := client.DeleteBooking(ctx, target.Key, target.TicketIDs()); err != nil {
			return err
		}
		fmt.Printf("Cancelled booking %s (%d tickets)\n", key, len(target.Tickets))
		return nil
	},
}

func fetchBookings(ctx context.Context, client *service.Client, all bool) ([]booking.Group, error) {
	var tickets []model.Ticket
	if all {
		page := 1
		for {
			result, err := client.GetAllTickets(ctx, page, ticketFetchSize)
			if err != nil {
				return nil, err
			}
			tickets = append(tickets, result.Items...)
			if len(tickets) >= result.TotalItems || len(result.Items) == 0 {
				break
			}
			page++
		}
	} else {
		result, err := client.GetMyTickets(ctx, 1, ticketFetchSize)
		if err != nil {
			return nil, err
		}
		tickets = result.Items
	}
	return booking.GroupTickets(tickets), nil
}

func queryFromFlags(cmd *cobra.Command) (booking.Query, error) {
	query := booking.Query{}
	query.Text, _ = cmd.Flags().GetString("search")

	fromRaw, _ := cmd.Flags().GetString("from")
	toRaw, _ := cmd.Flags().GetString("to")
	if fromRaw != "" {
		from, err := time.Parse(time.DateOnly, fromRaw)
		if err != nil {
			return booking.Query{}, fmt.Errorf("invalid --from date %q: %w", fromRaw, err)
		}
		query.From = from
	}
	if toRaw != "" {
		to, err := time.Parse(time.DateOnly, toRaw)
		if err != nil {
			return booking.Query{}, fmt.Errorf("invalid --to date %q: %w", toRaw, err)
		}
		query.To = to
	}
	return query, nil
}

func renderBookingTable(page booking.Page, pageNumber int, pageSize int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Booking", "Film", "Room", "Seats", "Total", "Purchased", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 26},
		{Number: 4, WidthMax: 20},
	})

	for _, group := range page.Items {
		first, _ := group.First()
		purchased := ""
		if !first.PurchaseTime.IsZero() {
			purchased = first.PurchaseTime.Format("2006-01-02 15:04")
		}
		status := "pending"
		if group.IsFullyPaid() {
			status = "paid"
		}
		if group.Incomplete() {
			status += " (incomplete)"
		}
		t.AppendRow(table.Row{
			group.Key,
			first.Title,
			first.RoomNumber,
			strings.Join(group.SeatNames(), ", "),
			fmt.Sprintf("%.0f", group.TotalPrice()),
			purchased,
			status,
		})
	}
	t.Render()

	pages := (page.TotalItems + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	fmt.Printf("Page %d/%d • %d booking(s)\n", pageNumber, pages, page.TotalItems)
}
