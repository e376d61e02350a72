package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreekundli/panchang-cli/internal/geo"
	"github.com/shreekundli/panchang-cli/internal/slug"
)

var (
	nearbyMaxKM float64
	nearbyLimit int
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby <slug>",
	Short: "List registry cities near a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		p, ok := reg.BySlug(slug.ToSlug(args[0]))
		if !ok {
			return fmt.Errorf("unknown city %q", args[0])
		}

		return printJSON(geo.NewIndex(reg).Nearby(p, nearbyMaxKM, nearbyLimit))
	},
}

func init() {
	nearbyCmd.Flags().Float64Var(&nearbyMaxKM, "max-km", 0, "maximum distance in kilometers (default 100)")
	nearbyCmd.Flags().IntVar(&nearbyLimit, "limit", 0, "maximum results (default 5)")
	rootCmd.AddCommand(nearbyCmd)
}
