package commands

import (
	"io"
	"os"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/riskibarqy/fbref-fixtures/internal/app"
	"github.com/riskibarqy/fbref-fixtures/internal/config"
	"github.com/riskibarqy/fbref-fixtures/internal/domain/fixture"
	"github.com/riskibarqy/fbref-fixtures/internal/interfaces/calendar"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/spf13/cobra"
)

var scrapeFlags = struct {
	JSON    bool
	ICS     bool
	Verbose bool
}{}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <season>",
	Short: "Fetch a season's fixtures, e.g. fbref-cli scrape 2023-2024",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		level := logging.LevelWarn
		if scrapeFlags.Verbose {
			level = logging.LevelDebug
		}
		logger := logging.NewConsole(cmd.ErrOrStderr(), level)
		defer func() { _ = logger.Sync() }()

		svc, err := app.NewScheduleService(cfg, logger, nil)
		if err != nil {
			return err
		}

		fixtures, err := svc.ScrapeSeasonSchedule(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		season := strings.TrimSpace(args[0])
		switch {
		case scrapeFlags.ICS:
			feed, _ := calendar.Encode(season, fixtures, time.Now())
			_, err := io.WriteString(cmd.OutOrStdout(), feed)
			return err
		case scrapeFlags.JSON:
			return writeFixturesJSON(cmd.OutOrStdout(), season, fixtures)
		}
		writeFixturesTable(cmd.OutOrStdout(), fixtures)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeFlags.JSON, "json", false, "print fixtures as JSON")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.ICS, "ics", false, "print fixtures as an iCalendar feed")
	scrapeCmd.MarkFlagsMutuallyExclusive("json", "ics")
	scrapeCmd.Flags().BoolVarP(&scrapeFlags.Verbose, "verbose", "v", false, "log fetch attempts to stderr")
	rootCmd.AddCommand(scrapeCmd)
}

func writeFixturesJSON(w io.Writer, season string, fixtures []fixture.Fixture) error {
	if fixtures == nil {
		fixtures = []fixture.Fixture{}
	}
	return sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
		"season":   season,
		"fixtures": fixtures,
	})
}

func writeFixturesTable(w io.Writer, fixtures []fixture.Fixture) {
	if w == nil {
		w = os.Stdout
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Round", "Home", "Score", "Away", "Venue"})

	rows := make([]table.Row, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, table.Row{f.Date, f.Round, f.Home, f.Score, f.Away, f.Venue})
	}
	t.AppendRows(rows)
	t.AppendFooter(table.Row{"", "", "", "", "Fixtures", len(fixtures)})
	t.Render()
}
