package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"galaxy-cinema-cli/model"
)

func (c *Client) GetProjections(ctx context.Context) ([]model.Projection, error) {
	endpoint := fmt.Sprintf("%s/api/Projection", c.baseURL)
	var projections []model.Projection
	if err := c.getJSON(ctx, endpoint, &projections); err != nil {
		return nil, err
	}
	return projections, nil
}

func (c *Client) GetProjection(ctx context.Context, projectionID string) (model.Projection, error) {
	if projectionID == "" {
		return model.Projection{}, errors.New("projection id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Projection/%s", c.baseURL, url.PathEscape(projectionID))
	var projection model.Projection
	if err := c.getJSON(ctx, endpoint, &projection); err != nil {
		return model.Projection{}, err
	}
	return projection, nil
}

// GetProjectionsByFilm returns the showtimes for a film, with room
// details embedded.
func (c *Client) GetProjectionsByFilm(ctx context.Context, filmID string) ([]model.Projection, error) {
	if filmID == "" {
		return nil, errors.New("film id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Projection/by-film/%s", c.baseURL, url.PathEscape(filmID))
	var projections []model.Projection
	if err := c.getJSON(ctx, endpoint, &projections); err != nil {
		return nil, err
	}
	return projections, nil
}

func (c *Client) GetProjectionsByRoom(ctx context.Context, roomID string) ([]model.Projection, error) {
	if roomID == "" {
		return nil, errors.New("room id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Projection/by-room/%s", c.baseURL, url.PathEscape(roomID))
	var projections []model.Projection
	if err := c.getJSON(ctx, endpoint, &projections); err != nil {
		return nil, err
	}
	return projections, nil
}

func (c *Client) CreateProjection(ctx context.Context, projection model.Projection) (model.Projection, error) {
	endpoint := fmt.Sprintf("%s/api/Projection", c.baseURL)
	var created model.Projection
	if err := c.postJSON(ctx, endpoint, projection, &created); err != nil {
		return model.Projection{}, err
	}
	return created, nil
}

func (c *Client) UpdateProjection(ctx context.Context, projectionID string, projection model.Projection) error {
	if projectionID == "" {
		return errors.New("projection id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Projection/%s", c.baseURL, url.PathEscape(projectionID))
	return c.putJSON(ctx, endpoint, projection, nil)
}

func (c *Client) DeleteProjection(ctx context.Context, projectionID string) error {
	if projectionID == "" {
		return errors.New("projection id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Projection/%s", c.baseURL, url.PathEscape(projectionID))
	return c.deleteJSON(ctx, endpoint, nil)
}
