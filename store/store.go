// Package store keeps the client's local files: the session under the
// user config dir and short-lived API caches under the user cache dir.
// Session state is loaded and passed around explicitly; nothing reads it
// behind the caller's back.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"galaxy-cinema-cli/model"
)

const (
	filmCacheTTL   = time.Hour
	genreCacheTTL  = 24 * time.Hour
	maxRecentFilms = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// Session is the stored login state: the bearer token plus the profile
// fields the screens need without refetching.
type Session struct {
	Token    string `json:"token"`
	UserId   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Role     int    `json:"role"`
}

func (s Session) IsStaff() bool {
	return s.Role == model.RoleStaff
}

// LoadSession returns the stored session, or ok=false when nobody is
// logged in.
func LoadSession() (Session, bool, error) {
	path, err := configPath("session.json")
	if err != nil {
		return Session{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, false, errors.New("invalid session format")
	}
	if strings.TrimSpace(session.Token) == "" {
		return Session{}, false, nil
	}
	return session, true, nil
}

func SaveSession(session Session) error {
	if strings.TrimSpace(session.Token) == "" {
		return errors.New("session token is required")
	}
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	// The token is a credential; keep the file owner-only.
	return os.WriteFile(path, payload, 0o600)
}

// ClearSession logs out locally. A missing session file is not an error.
func ClearSession() error {
	path, err := configPath("session.json")
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func LoadFilmCache() ([]model.Film, bool, error) {
	path, err := cachePath("films.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Film](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= filmCacheTTL, nil
}

func SaveFilmCache(films []model.Film) error {
	path, err := cachePath("films.json")
	if err != nil {
		return err
	}
	return saveCache(path, films)
}

func LoadGenreCache() ([]model.Genre, bool, error) {
	path, err := cachePath("genres.json")
	if err != nil {
		return nil, false, err
	}
	cache, err := loadCache[[]model.Genre](path)
	if err != nil {
		return nil, false, err
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= genreCacheTTL, nil
}

func SaveGenreCache(genres []model.Genre) error {
	path, err := cachePath("genres.json")
	if err != nil {
		return err
	}
	return saveCache(path, genres)
}

// RecentFilm is one entry of the recently viewed list shown at the top
// of the film picker.
type RecentFilm struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type filmHistory struct {
	Films []RecentFilm `json:"films"`
}

func LoadRecentFilms() ([]RecentFilm, error) {
	path, err := configPath("history.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history filmHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid film history format")
	}
	return history.Films, nil
}

// RememberFilm moves the film to the front of the recent list, dropping
// duplicates and anything beyond the cap.
func RememberFilm(film model.Film) error {
	history, _ := LoadRecentFilms()
	next := []RecentFilm{{ID: film.Id, Title: film.Title}}

	for _, existing := range history {
		if existing.ID == film.Id && existing.ID != "" {
			continue
		}
		if existing.Title != "" && strings.EqualFold(existing.Title, film.Title) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentFilms {
			break
		}
	}

	path, err := configPath("history.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(filmHistory{Films: next}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "galaxy-cinema-cli", name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "galaxy-cinema-cli", name), nil
}
