// Package sitemap generates sitemap XML for the site: core pages plus
// per-city panchang pages in both languages, with a sitemap index tying the
// files together.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/shreekundli/panchang-cli/internal/registry"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one <url> entry in a urlset.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// URLSet is a sitemap <urlset> document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// IndexEntry is one <sitemap> entry in a sitemapindex.
type IndexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Index is a <sitemapindex> document.
type Index struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []IndexEntry `xml:"sitemap"`
}

// corePages are the non-city pages, relative to the site root.
var corePages = []string{
	"/",
	"/panchang/",
	"/rahu-kaal/",
	"/choghadiya/",
	"/festivals/",
	"/kundli/",
}

// cityPages are the per-city page kinds under each city slug.
var cityPages = []string{
	"/panchang/%s/",
	"/rahu-kaal/%s/",
	"/choghadiya/%s/",
}

// langPrefixes covers the English root and the Hindi subtree.
var langPrefixes = []string{"", "/hi"}

// Generator builds sitemap documents for a site over the registry's cities.
type Generator struct {
	reg     *registry.Registry
	siteURL string
	now     func() time.Time
}

// New creates a Generator. siteURL is the canonical origin, without a
// trailing slash.
func New(reg *registry.Registry, siteURL string) *Generator {
	return &Generator{
		reg:     reg,
		siteURL: strings.TrimRight(siteURL, "/"),
		now:     time.Now,
	}
}

func (g *Generator) lastMod() string {
	return g.now().UTC().Format("2006-01-02")
}

// Core returns the urlset for the static site pages in both languages.
func (g *Generator) Core() *URLSet {
	mod := g.lastMod()
	set := &URLSet{Xmlns: xmlns}
	for _, prefix := range langPrefixes {
		for _, page := range corePages {
			set.URLs = append(set.URLs, URL{
				Loc:        g.siteURL + prefix + page,
				LastMod:    mod,
				ChangeFreq: "daily",
				Priority:   1.0,
			})
		}
	}
	return set
}

// Cities returns the urlset for every per-city page across all registry
// cities and both languages. Higher-tier cities get a higher priority.
func (g *Generator) Cities() *URLSet {
	mod := g.lastMod()
	set := &URLSet{Xmlns: xmlns}
	for _, prefix := range langPrefixes {
		for _, p := range g.reg.All() {
			priority := 0.8
			if p.Tier == 1 {
				priority = 0.9
			}
			for _, page := range cityPages {
				set.URLs = append(set.URLs, URL{
					Loc:        g.siteURL + prefix + fmt.Sprintf(page, p.Slug),
					LastMod:    mod,
					ChangeFreq: "daily",
					Priority:   priority,
				})
			}
		}
	}
	return set
}

// IndexDoc returns the sitemapindex pointing at the core and city sitemaps.
func (g *Generator) IndexDoc() *Index {
	mod := g.lastMod()
	return &Index{
		Xmlns: xmlns,
		Sitemaps: []IndexEntry{
			{Loc: g.siteURL + "/sitemap-core.xml", LastMod: mod},
			{Loc: g.siteURL + "/sitemap-cities.xml", LastMod: mod},
		},
	}
}

// Marshal renders a sitemap document with the XML declaration.
func Marshal(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "sitemap: marshal")
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// WriteFiles writes sitemap-index.xml, sitemap-core.xml and
// sitemap-cities.xml into dir, creating it if needed.
func (g *Generator) WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "sitemap: create %s", dir)
	}

	docs := map[string]any{
		"sitemap-index.xml":  g.IndexDoc(),
		"sitemap-core.xml":   g.Core(),
		"sitemap-cities.xml": g.Cities(),
	}
	for name, doc := range docs {
		b, err := Marshal(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			return eris.Wrapf(err, "sitemap: write %s", name)
		}
	}
	return nil
}
