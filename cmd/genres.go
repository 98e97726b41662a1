package cmd

import (
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"galaxy-cinema-cli/store"
)

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List genres and how many films carry each",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		ctx := cmdContext(cmd)

		genres, fresh, err := store.LoadGenreCache()
		if err != nil || !fresh || len(genres) == 0 {
			genres, err = client.GetGenres(ctx)
			if err != nil {
				return err
			}
			_ = store.SaveGenreCache(genres)
		}

		links, err := client.GetFilmGenres(ctx)
		if err != nil {
			return err
		}

		filmCount := map[string]int{}
		for _, link := range links {
			filmCount[link.GenreId]++
		}

		nameByID := map[string]string{}
		for _, genre := range genres {
			nameByID[genre.Id] = genre.Name
		}

		ids := maps.Keys(nameByID)
		sort.Slice(ids, func(i, j int) bool {
			return nameByID[ids[i]] < nameByID[ids[j]]
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Genre", "Films"})
		for _, id := range ids {
			t.AppendRow(table.Row{nameByID[id], filmCount[id]})
		}
		t.Render()
		return nil
	},
}
