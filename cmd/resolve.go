package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreekundli/panchang-cli/internal/slug"
)

var resolveCountry string

var resolveCmd = &cobra.Command{
	Use:   "resolve <slug>",
	Short: "Resolve a city slug to a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		res, closeCache, err := newResolver(newEngineClient(), reg)
		if err != nil {
			return err
		}
		defer closeCache()

		country := resolveCountry
		if country == "" {
			country = cfg.Shreeng.PriorityCountry
		}

		loc := res.ResolveSlug(cmd.Context(), slug.ToSlug(args[0]), country)
		if loc == nil {
			fmt.Fprintln(os.Stderr, "No match.")
			os.Exit(1)
		}
		return printJSON(loc)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveCountry, "country", "", "priority country for ranking (default from config)")
	rootCmd.AddCommand(resolveCmd)
}
