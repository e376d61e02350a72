package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shreekundli/panchang-cli/internal/sitemap"
)

var (
	sitemapOut     string
	sitemapSiteURL string
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate sitemap XML files for the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		out := sitemapOut
		if out == "" {
			out = cfg.Sitemap.OutDir
		}
		siteURL := sitemapSiteURL
		if siteURL == "" {
			siteURL = cfg.Sitemap.SiteURL
		}

		if err := sitemap.New(reg, siteURL).WriteFiles(out); err != nil {
			return err
		}
		zap.L().Info("sitemaps written", zap.String("dir", out), zap.Int("cities", reg.Len()))
		return nil
	},
}

func init() {
	sitemapCmd.Flags().StringVar(&sitemapOut, "out", "", "output directory (default from config)")
	sitemapCmd.Flags().StringVar(&sitemapSiteURL, "site-url", "", "canonical site origin (default from config)")
	rootCmd.AddCommand(sitemapCmd)
}
