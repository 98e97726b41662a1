package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"galaxy-cinema-cli/model"
)

func (c *Client) GetGenres(ctx context.Context) ([]model.Genre, error) {
	endpoint := fmt.Sprintf("%s/api/Genre", c.baseURL)
	var genres []model.Genre
	if err := c.getJSON(ctx, endpoint, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) GetGenre(ctx context.Context, genreID string) (model.Genre, error) {
	if genreID == "" {
		return model.Genre{}, errors.New("genre id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Genre/%s", c.baseURL, url.PathEscape(genreID))
	var genre model.Genre
	if err := c.getJSON(ctx, endpoint, &genre); err != nil {
		return model.Genre{}, err
	}
	return genre, nil
}

func (c *Client) CreateGenre(ctx context.Context, genre model.Genre) (model.Genre, error) {
	endpoint := fmt.Sprintf("%s/api/Genre", c.baseURL)
	var created model.Genre
	if err := c.postJSON(ctx, endpoint, genre, &created); err != nil {
		return model.Genre{}, err
	}
	return created, nil
}

func (c *Client) UpdateGenre(ctx context.Context, genreID string, genre model.Genre) error {
	if genreID == "" {
		return errors.New("genre id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Genre/%s", c.baseURL, url.PathEscape(genreID))
	return c.putJSON(ctx, endpoint, genre, nil)
}

func (c *Client) DeleteGenre(ctx context.Context, genreID string) error {
	if genreID == "" {
		return errors.New("genre id is required")
	}
	endpoint := fmt.Sprintf("%s/api/Genre/%s", c.baseURL, url.PathEscape(genreID))
	return c.deleteJSON(ctx, endpoint, nil)
}

// GetFilmGenres returns every film-genre link; the genres screen joins
// them against the genre list to show per-genre film counts.
func (c *Client) GetFilmGenres(ctx context.Context) ([]model.FilmGenre, error) {
	endpoint := fmt.Sprintf("%s/api/FilmGenre", c.baseURL)
	var links []model.FilmGenre
	if err := c.getJSON(ctx, endpoint, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// GetFilmGenresByFilm returns the genre links for one film.
func (c *Client) GetFilmGenresByFilm(ctx context.Context, filmID string) ([]model.FilmGenre, error) {
	if filmID == "" {
		return nil, errors.New("film id is required")
	}
	endpoint := fmt.Sprintf("%s/api/FilmGenre/by-film/%s", c.baseURL, url.PathEscape(filmID))
	var links []model.FilmGenre
	if err := c.getJSON(ctx, endpoint, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) CreateFilmGenre(ctx context.Context, link model.FilmGenre) (model.FilmGenre, error) {
	endpoint := fmt.Sprintf("%s/api/FilmGenre", c.baseURL)
	var created model.FilmGenre
	if err := c.postJSON(ctx, endpoint, link, &created); err != nil {
		return model.FilmGenre{}, err
	}
	return created, nil
}

func (c *Client) DeleteFilmGenre(ctx context.Context, linkID string) error {
	if linkID == "" {
		return errors.New("film genre id is required")
	}
	endpoint := fmt.Sprintf("%s/api/FilmGenre/%s", c.baseURL, url.PathEscape(linkID))
	return c.deleteJSON(ctx, endpoint, nil)
}
