package commands

import (
	"fmt"

	"github.com/riskibarqy/fbref-fixtures/internal/app"
	"github.com/riskibarqy/fbref-fixtures/internal/config"
	"github.com/riskibarqy/fbref-fixtures/internal/platform/logging"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <season>",
	Short: "Print the schedule page URL for a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := app.NewFBrefClient(cfg, logging.NewNop(), nil)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), client.ScheduleURL(args[0]))
		return err
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
