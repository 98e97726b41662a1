package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"galaxy-cinema-cli/model"
)

var projectionsCmd = &cobra.Command{
	Use:   "projections",
	Short: "List showtimes for a film",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		ctx := cmdContext(cmd)

		filmID, _ := cmd.Flags().GetString("film")
		if filmID == "" {
			refresh := false
			films, err := loadFilms(ctx, client, refresh)
			if err != nil {
				return err
			}
			filmID, err = promptSelectFilm(films)
			if err != nil {
				return err
			}
		}

		projections, err := client.GetProjectionsByFilm(ctx, filmID)
		if err != nil {
			return err
		}
		sort.Slice(projections, func(i, j int) bool {
			return projections[i].StartTime.Before(projections[j].StartTime.Time)
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Start", "End", "Room", "Price", "Id"})
		for _, projection := range projections {
			room := ""
			if projection.Room != nil {
				room = projection.Room.RoomNumber
				if projection.Room.RoomType != "" {
					room += " (" + projection.Room.RoomType + ")"
				}
			}
			t.AppendRow(table.Row{
				projection.StartTime.Format("2006-01-02 15:04"),
				projection.EndTime.Format("15:04"),
				room,
				fmt.Sprintf("%.0f", projection.Price),
				projection.Id,
			})
		}
		t.Render()
		return nil
	},
}

func promptSelectFilm(films []model.Film) (string, error) {
	if len(films) == 0 {
		return "", fmt.Errorf("no films available")
	}

	filmIDByTitle := make(map[string]string)
	for _, film := range films {
		filmIDByTitle[film.Title] = film.Id
	}

	titles := maps.Keys(filmIDByTitle)
	sort.Strings(titles)

	selectFilm := promptui.Select{
		Label: "Select Film",
		Items: titles,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(titles[index]), strings.ToLower(input))
		},
	}

	_, title, err := selectFilm.Run()
	if err != nil {
		return "", err
	}
	filmID, ok := filmIDByTitle[title]
	if !ok {
		return "", fmt.Errorf("invalid film")
	}
	return filmID, nil
}
