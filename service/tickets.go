package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"galaxy-cinema-cli/model"
)

// CreateTicket books one seat on a projection. Checkout calls this once
// per selected seat; the backend assigns the transaction id.
func (c *Client) CreateTicket(ctx context.Context, req model.CreateTicketRequest) error {
	if req.ProjectionId == "" || req.SeatId == "" {
		return errors.New("projection id and seat id are required")
	}
	endpoint := fmt.Sprintf("%s/Ticket/CreateTicket", c.baseURL)
	return c.postJSON(ctx, endpoint, req, nil)
}

// GetMyTickets returns one page of the authenticated user's tickets.
func (c *Client) GetMyTickets(ctx context.Context, page int, pageSize int) (model.Page[model.Ticket], error) {
	if page < 1 || pageSize < 1 {
		return model.Page[model.Ticket]{}, errors.New("page and page size must be positive")
	}
	endpoint := fmt.Sprintf("%s/Ticket/GetTicket/getallmyticket/%d/%d", c.baseURL, page, pageSize)
	var result model.Page[model.Ticket]
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return model.Page[model.Ticket]{}, err
	}
	return result, nil
}

// GetTicketsByUser returns one page of a user's tickets (staff only).
func (c *Client) GetTicketsByUser(ctx context.Context, userID string, page int, pageSize int) (model.Page[model.Ticket], error) {
	if userID == "" {
		return model.Page[model.Ticket]{}, errors.New("user id is required")
	}
	if page < 1 || pageSize < 1 {
		return model.Page[model.Ticket]{}, errors.New("page and page size must be positive")
	}
	endpoint := fmt.Sprintf("%s/Ticket/GetTicketByUserId/getallticketbyuserid/%s/%d/%d",
		c.baseURL, url.PathEscape(userID), page, pageSize)
	var result model.Page[model.Ticket]
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return model.Page[model.Ticket]{}, err
	}
	return result, nil
}

// GetAllTickets returns one page of every ticket in the system (staff
// only).
func (c *Client) GetAllTickets(ctx context.Context, page int, pageSize int) (model.Page[model.Ticket], error) {
	if page < 1 || pageSize < 1 {
		return model.Page[model.Ticket]{}, errors.New("page and page size must be positive")
	}
	endpoint := fmt.Sprintf("%s/Ticket/GetTickets/getallticketlist/%d/%d", c.baseURL, page, pageSize)
	var result model.Page[model.Ticket]
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return model.Page[model.Ticket]{}, err
	}
	return result, nil
}

func (c *Client) GetTicket(ctx context.Context, ticketID string) (model.Ticket, error) {
	if ticketID == "" {
		return model.Ticket{}, errors.New("ticket id is required")
	}
	endpoint := fmt.Sprintf("%s/Ticket/GetTicketById/%s", c.baseURL, url.PathEscape(ticketID))
	var ticket model.Ticket
	if err := c.getJSON(ctx, endpoint, &ticket); err != nil {
		return model.Ticket{}, err
	}
	return ticket, nil
}

// GetCurrentTransactionTickets returns the tickets created by the most
// recent checkout, used by the payment callback screen.
func (c *Client) GetCurrentTransactionTickets(ctx context.Context) ([]model.Ticket, error) {
	endpoint := fmt.Sprintf("%s/Ticket/GetTicketByCurrentAppTransId/geticketbycurrentapptransid", c.baseURL)
	var groups []struct {
		AppTransId string         `json:"appTransId"`
		Tickets    []model.Ticket `json:"tickets"`
	}
	if err := c.getJSON(ctx, endpoint, &groups); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups[0].Tickets, nil
}

type deleteTicketRequest struct {
	Id string `json:"id"`
}

type deleteBookingRequest struct {
	AppTransId string `json:"appTransId"`
}

// DeleteTicket removes one ticket by id.
func (c *Client) DeleteTicket(ctx context.Context, ticketID string) error {
	if ticketID == "" {
		return errors.New("ticket id is required")
	}
	endpoint := fmt.Sprintf("%s/Ticket/DeleteTicketById", c.baseURL)
	return c.deleteJSON(ctx, endpoint, deleteTicketRequest{Id: ticketID})
}

// DeleteBooking removes a whole booking. With ticket ids in hand it fans
// out to per-ticket deletes and stops at the first failure; without them
// it falls back to deleting by transaction id. Either way the caller must
// re-fetch the ticket list afterwards.
func (c *Client) DeleteBooking(ctx context.Context, appTransID string, ticketIDs []string) error {
	if len(ticketIDs) > 0 {
		for _, ticketID := range ticketIDs {
			if err := c.DeleteTicket(ctx, ticketID); err != nil {
				return fmt.Errorf("delete ticket %s: %w", ticketID, err)
			}
		}
		return nil
	}
	if appTransID == "" {
		return errors.New("transaction id or ticket ids are required")
	}
	endpoint := fmt.Sprintf("%s/Ticket/DeleteBooking", c.baseURL)
	return c.deleteJSON(ctx, endpoint, deleteBookingRequest{AppTransId: appTransID})
}
