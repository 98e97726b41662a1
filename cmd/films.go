package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"galaxy-cinema-cli/model"
	"galaxy-cinema-cli/service"
	"galaxy-cinema-cli/store"
)

var filmsCmd = &cobra.Command{
	Use:   "films",
	Short: "List films",
	RunE: func(cmd *cobra.Command, args []string) error {
		nowPlaying, _ := cmd.Flags().GetBool("now-playing")
		upcoming, _ := cmd.Flags().GetBool("upcoming")
		refresh, _ := cmd.Flags().GetBool("refresh")

		client, _ := newClient()
		ctx := cmdContext(cmd)

		var films []model.Film
		var err error
		switch {
		case nowPlaying:
			films, err = client.GetNowPlaying(ctx, time.Now())
		case upcoming:
			films, err = client.GetUpcoming(ctx, time.Now())
		default:
			films, err = loadFilms(ctx, client, refresh)
		}
		if err != nil {
			return err
		}

		renderFilmTable(films)
		return nil
	},
}

func loadFilms(ctx context.Context, client *service.Client, refresh bool) ([]model.Film, error) {
	if !refresh {
		if cached, fresh, err := store.LoadFilmCache(); err == nil && fresh && len(cached) > 0 {
			return cached, nil
		}
	}
	films, err := client.GetFilms(ctx)
	if err != nil {
		return nil, err
	}
	if len(films) > 0 {
		_ = store.SaveFilmCache(films)
	}
	return films, nil
}

func renderFilmTable(films []model.Film) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Genres", "Duration", "Release", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 30},
		{Number: 2, WidthMax: 30},
	})

	for _, film := range films {
		status := "upcoming"
		if film.IsShowing() {
			status = "showing"
		}
		release := ""
		if !film.ReleaseDate.IsZero() {
			release = film.ReleaseDate.Format(time.DateOnly)
		}
		t.AppendRow(table.Row{
			film.Title,
			strings.Join(film.FilmGenres, ", "),
			film.Duration,
			release,
			status,
		})
	}
	t.Render()
}
