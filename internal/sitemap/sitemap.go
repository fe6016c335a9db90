// Package sitemap renders sitemap.xml and robots.txt for a catalog.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
)

const defaultBaseURL = "http://localhost"

// Locale pairs a locale code with its parsed catalog.
type Locale struct {
	Code   string
	Result *catalog.Result
}

// Options configures sitemap rendering.
type Options struct {
	BaseURL string
	// DefaultLocale is served without a locale prefix.
	DefaultLocale string
	// LastModified is stamped on every entry when non-zero.
	LastModified time.Time
}

type entry struct {
	Location string
	LastMod  time.Time
}

// Routes lists the paths of a locale catalog: the locale root, then every
// category and subcategory, then every app.
func Routes(locale, defaultLocale string, result *catalog.Result) []string {
	prefix := ""
	if code := strings.TrimSpace(locale); code != "" && !strings.EqualFold(code, defaultLocale) {
		prefix = "/" + code
	}
	routes := []string{prefix + "/"}
	if result == nil {
		return routes
	}
	result.Walk(func(c *catalog.Category) bool {
		routes = append(routes, prefix+"/category/"+c.Slug)
		return true
	})
	for _, app := range result.Apps {
		routes = append(routes, prefix+"/app/"+app.Slug)
	}
	return routes
}

// Build renders sitemap.xml covering every locale. Locations are
// deduplicated and sorted.
func Build(opts Options, locales []Locale) string {
	base := baseURL(opts.BaseURL)

	var entries []entry
	seen := map[string]struct{}{}
	for _, locale := range locales {
		for _, route := range Routes(locale.Code, opts.DefaultLocale, locale.Result) {
			location := base + route
			if _, ok := seen[location]; ok {
				continue
			}
			seen[location] = struct{}{}
			entries = append(entries, entry{Location: location, LastMod: opts.LastModified})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Location < entries[j].Location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, e := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escape(e.Location)))
		if !e.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", e.LastMod.UTC().Format(time.RFC3339)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

// Robots renders robots.txt, optionally pointing at the sitemap.
func Robots(base string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", baseURL(base)))
	}
	return builder.String()
}

// Write stores sitemap.xml, and robots.txt when robots is set, under dir.
func Write(dir string, opts Options, locales []Locale, robots bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sitemap: create %s: %w", dir, err)
	}
	files := map[string]string{"sitemap.xml": Build(opts, locales)}
	if robots {
		files["robots.txt"] = Robots(opts.BaseURL, true)
	}

	var written []string
	for _, name := range []string{"sitemap.xml", "robots.txt"} {
		body, ok := files[name]
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return written, fmt.Errorf("sitemap: write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func baseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func escape(value string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(value))
	return buf.String()
}
