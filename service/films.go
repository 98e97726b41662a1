package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"galaxy-cinema-cli/model"
)

// GetFilms returns the full film catalog.
func (c *Client) GetFilms(ctx context.Context) ([]model.Film, error) {
	endpoint := fmt.Sprintf("%s/api/Film", c.baseURL)
	var films []model.Film
	if err := c.getJSON(ctx, endpoint, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// GetFilm fetches one film by id.
func (c *Client) GetFilm(ctx context.Context, filmID string) (model.Film, error) {
	if filmID == "" {
		return model.Film{}, errors.New("film id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Film/%s", c.baseURL, url.PathEscape(filmID))
	var film model.Film
	if err := c.getJSON(ctx, endpoint, &film); err != nil {
		return model.Film{}, err
	}
	return film, nil
}

// GetNowPlaying returns films released on or before the reference date.
func (c *Client) GetNowPlaying(ctx context.Context, ref time.Time) ([]model.Film, error) {
	endpoint := fmt.Sprintf("%s/api/Film?releaseDate_lte=%s", c.baseURL, ref.Format(time.DateOnly))
	var films []model.Film
	if err := c.getJSON(ctx, endpoint, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// GetUpcoming returns films released after the reference date.
func (c *Client) GetUpcoming(ctx context.Context, ref time.Time) ([]model.Film, error) {
	endpoint := fmt.Sprintf("%s/api/Film?releaseDate_gt=%s", c.baseURL, ref.Format(time.DateOnly))
	var films []model.Film
	if err := c.getJSON(ctx, endpoint, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// CreateFilm adds a film to the catalog (staff only).
func (c *Client) CreateFilm(ctx context.Context, film model.Film) (model.Film, error) {
	endpoint := fmt.Sprintf("%s/api/Film", c.baseURL)
	var created model.Film
	if err := c.postJSON(ctx, endpoint, film, &created); err != nil {
		return model.Film{}, err
	}
	return created, nil
}

// UpdateFilm replaces a film (staff only).
func (c *Client) UpdateFilm(ctx context.Context, filmID string, film model.Film) error {
	if filmID == "" {
		return errors.New("film id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Film/%s", c.baseURL, url.PathEscape(filmID))
	return c.putJSON(ctx, endpoint, film, nil)
}

// DeleteFilm removes a film (staff only).
func (c *Client) DeleteFilm(ctx context.Context, filmID string) error {
	if filmID == "" {
		return errors.New("film id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Film/%s", c.baseURL, url.PathEscape(filmID))
	return c.deleteJSON(ctx, endpoint, nil)
}
