package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shreekundli/panchang-cli/internal/schedule"
	"github.com/shreekundli/panchang-cli/internal/slug"
)

var choghadiyaDate string

var choghadiyaCmd = &cobra.Command{
	Use:   "choghadiya <slug>",
	Short: "Fetch the day and night choghadiya periods for a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		client := newEngineClient()
		res, closeCache, err := newResolver(client, reg)
		if err != nil {
			return err
		}
		defer closeCache()

		loc := res.ResolveSlug(cmd.Context(), slug.ToSlug(args[0]), cfg.Shreeng.PriorityCountry)
		if loc == nil {
			fmt.Fprintln(os.Stderr, "No match.")
			os.Exit(1)
		}

		datetime, err := datetimeArg(choghadiyaDate)
		if err != nil {
			return err
		}

		ch, err := client.Choghadiya(cmd.Context(), loc.ID, datetime)
		if err != nil {
			return err
		}
		schedule.AnnotateChoghadiya(ch, time.Now())

		return printJSON(ch)
	},
}

func init() {
	choghadiyaCmd.Flags().StringVar(&choghadiyaDate, "date", "", "date (YYYY-MM-DD) or datetime (YYYY-MM-DDTHH:MM:SS), default now")
	rootCmd.AddCommand(choghadiyaCmd)
}
