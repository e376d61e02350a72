package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shreekundli/panchang-cli/internal/aggregate"
	"github.com/shreekundli/panchang-cli/internal/slug"
)

var dailyDate string

var dailyCmd = &cobra.Command{
	Use:   "daily <slug>",
	Short: "Fetch the daily panchang, astronomical and muhurta data for a city",
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

		datetime, err := datetimeArg(dailyDate)
		if err != nil {
			return err
		}

		data, err := aggregate.New(client).DailyAnnotated(cmd.Context(), loc.ID, datetime, time.Now())
		if err != nil {
			return err
		}

		return printJSON(struct {
			Location any    `json:"location"`
			Datetime string `json:"datetime"`
			*aggregate.DailyData
		}{Location: loc, Datetime: datetime, DailyData: data})
	},
}

func init() {
	dailyCmd.Flags().StringVar(&dailyDate, "date", "", "date (YYYY-MM-DD) or datetime (YYYY-MM-DDTHH:MM:SS), default now")
	rootCmd.AddCommand(dailyCmd)
}
