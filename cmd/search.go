package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreekundli/panchang-cli/internal/match"
	"github.com/shreekundli/panchang-cli/pkg/shreeng"
)

var (
	searchLimit  int
	searchRemote bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search cities by name",
	Long:  "Searches the local registry first; falls back to the engine's geocode index when the registry has no match (or with --remote).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		if !searchRemote {
			places := match.New(reg, cfg.Match).Search(args[0], searchLimit)
			if len(places) > 0 {
				return printJSON(places)
			}
		}

		res, closeCache, err := newResolver(newEngineClient(), reg)
		if err != nil {
			return err
		}
		defer closeCache()

		results, err := res.Search(cmd.Context(), args[0], shreeng.SearchOptions{
			PriorityCountry: cfg.Shreeng.PriorityCountry,
			Limit:           searchLimit,
		})
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No matches.")
			return nil
		}
		return printJSON(results)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default from config)")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "skip the local registry and query the engine directly")
	rootCmd.AddCommand(searchCmd)
}
