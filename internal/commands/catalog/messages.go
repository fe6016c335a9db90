package catalogcmd

import (
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	buildCatalogMessageType = "awesome.catalog.build"
	writeSitemapMessageType = "awesome.catalog.write_sitemap"
)

// BuildCatalogCommand parses every README under SourceDir into locale
// catalogs and persists them.
type BuildCatalogCommand struct {
	// SourceDir is the directory holding README documents.
	SourceDir string `json:"source_dir"`
	// Locales restricts the build to the listed locales.
	Locales []string `json:"locales,omitempty"`
	// DataDir receives one JSON data file per locale when set.
	DataDir string `json:"data_dir,omitempty"`
	// FallbackToCache serves the stored snapshot of a locale whose document fails to parse.
	FallbackToCache bool `json:"fallback_to_cache,omitempty"`
	// Diff compares each catalog with its stored snapshot.
	Diff bool `json:"diff,omitempty"`
}

// Type implements command.Message.
func (BuildCatalogCommand) Type() string { return buildCatalogMessageType }

// Validate ensures the source directory is present before handlers execute.
func (cmd BuildCatalogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SourceDir, validation.Required, validation.By(notBlank("awesome.catalog.build.source_dir_required", "source directory is required"))),
		validation.Field(&cmd.Locales, validation.Each(validation.By(notBlank("awesome.catalog.build.locale_blank", "locale cannot be blank")))),
	)
}

// WriteSitemapCommand renders sitemap.xml, and optionally robots.txt, from
// the stored snapshots.
type WriteSitemapCommand struct {
	OutputDir     string `json:"output_dir"`
	BaseURL       string `json:"base_url"`
	DefaultLocale string `json:"default_locale,omitempty"`
	Robots        bool   `json:"robots,omitempty"`
}

// Type implements command.Message.
func (WriteSitemapCommand) Type() string { return writeSitemapMessageType }

// Validate ensures an output directory and an absolute base url.
func (cmd WriteSitemapCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OutputDir, validation.Required, validation.By(notBlank("awesome.catalog.sitemap.output_dir_required", "output directory is required"))),
		validation.Field(&cmd.BaseURL, validation.Required, validation.By(absoluteURL)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("awesome.catalog.sitemap.base_url_invalid", "base url must be an absolute http(s) url")
	}
	return nil
}
