package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"galaxy-cinema-cli/model"
)

// GetSeats returns the seats of a projection's room with their
// availability for that projection.
func (c *Client) GetSeats(ctx context.Context, projectionID string) ([]model.Seat, error) {
	if projectionID == "" {
		return nil, errors.New("projection id is required")
	}
	endpoint := fmt.Sprintf("%s/api/seat?showTimeId=%s", c.baseURL, url.QueryEscape(projectionID))
	var seats []model.Seat
	if err := c.getJSON(ctx, endpoint, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// GetRoom fetches a room including its fixed seat layout.
func (c *Client) GetRoom(ctx context.Context, roomID string) (model.Room, error) {
	if roomID == "" {
		return model.Room{}, errors.New("room id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Room/%s", c.baseURL, url.PathEscape(roomID))
	var room model.Room
	if err := c.getJSON(ctx, endpoint, &room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (c *Client) GetRooms(ctx context.Context) ([]model.Room, error) {
	endpoint := fmt.Sprintf("%s/api/Room", c.baseURL)
	var rooms []model.Room
	if err := c.getJSON(ctx, endpoint, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
