package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"galaxy-cinema-cli/config"
	"galaxy-cinema-cli/service"
	"galaxy-cinema-cli/store"
	"galaxy-cinema-cli/tui"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Galaxy Cinema CLI",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("galaxy-cinema-cli %s\n", version)
	},
}

var rootCmd = &cobra.Command{
	Use:   "galaxy",
	Short: "Galaxy Cinema CLI",
	Long:  `Browse films, pick seats and manage bookings from the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := tea.NewProgram(tui.New(), tea.WithAltScreen()).Run()
		return err
	},
}

func Execute() {
	rootCmd.AddCommand(
		versionCmd,
		loginCmd,
		logoutCmd,
		whoamiCmd,
		filmsCmd,
		genresCmd,
		projectionsCmd,
		bookingsCmd,
		dashboardCmd,
	)

	filmsCmd.Flags().Bool("now-playing", false, "only films already released")
	filmsCmd.Flags().Bool("upcoming", false, "only films not yet released")
	filmsCmd.Flags().Bool("refresh", false, "bypass the local film cache")
	projectionsCmd.Flags().String("film", "", "film id to list showtimes for")
	bookingsCmd.Flags().String("search", "", "match against booking id, film, room or seats")
	bookingsCmd.Flags().String("from", "", "start of the purchase date range (YYYY-MM-DD)")
	bookingsCmd.Flags().String("to", "", "end of the purchase date range (YYYY-MM-DD)")
	bookingsCmd.Flags().Int("page", 1, "page number")
	bookingsCmd.Flags().Int("page-size", 0, "bookings per page")
	bookingsCmd.Flags().Bool("all", false, "list every user's bookings (staff only)")
	bookingsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	bookingsCmd.AddCommand(bookingsDeleteCmd)
	dashboardCmd.Flags().Int("days", 30, "reporting window in days")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds an API client from the environment config and installs
// the saved session token when one exists.
func newClient() (*service.Client, config.Config) {
	cfg := config.Load()
	client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout})
	client.SetBaseURL(cfg.BaseURL)
	if session, ok, err := store.LoadSession(); err == nil && ok {
		client.SetToken(session.Token)
	}
	return client, cfg
}

func requireSession() (store.Session, error) {
	session, ok, err := store.LoadSession()
	if err != nil {
		return store.Session{}, err
	}
	if !ok {
		return store.Session{}, fmt.Errorf("not signed in, run \"galaxy login\" first")
	}
	return session, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
