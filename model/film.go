package model

import (
	"encoding/json"
	"strings"
)

const FilmStatusShowing = 1

type Film struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Director    string     `json:"director"`
	Duration    int        `json:"duration"`
	Status      int        `json:"status"`
	ReleaseDate Timestamp  `json:"releaseDate"`
	PosterUrl   string     `json:"posterUrl"`
	TrailerUrl  string     `json:"trailerUrl"`
	FilmGenres  GenreNames `json:"filmGenres"`
}

// IsShowing reports whether the film is currently in theaters.
func (f Film) IsShowing() bool {
	return f.Status == FilmStatusShowing
}

type Genre struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// FilmGenre links a film to a genre. The nested Genre is present on some
// endpoints and nil on others.
type FilmGenre struct {
	Id      string `json:"id"`
	FilmId  string `json:"filmId"`
	GenreId string `json:"genreId"`
	Genre   *Genre `json:"genre"`
}

// GenreNames absorbs the API's two historical shapes for a film's genres:
// a comma-separated string and an array of film-genre objects. Either way
// the decoded value is a flat list of genre names.
type GenreNames []string

func (g *GenreNames) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*g = nil
		return nil
	}

	if trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*g = splitGenreNames(joined)
		return nil
	}

	var links []FilmGenre
	if err := json.Unmarshal(data, &links); err == nil {
		names := make(GenreNames, 0, len(links))
		for _, link := range links {
			if link.Genre != nil && link.Genre.Name != "" {
				names = append(names, link.Genre.Name)
			}
		}
		*g = names
		return nil
	}

	var plain []string
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	*g = plain
	return nil
}

func (g GenreNames) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(g))
}

func splitGenreNames(joined string) GenreNames {
	var names GenreNames
	for _, part := range strings.Split(joined, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
