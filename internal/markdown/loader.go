package markdown

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// LoaderConfig configures document discovery.
type LoaderConfig struct {
	// Pattern selects candidate files by base name. Defaults to "README*.md".
	Pattern string
	// DefaultLocale is assigned to documents without a locale marker.
	DefaultLocale string
	// Locales restricts loading to the listed locales when non-empty.
	Locales []string
	// LocalePatterns maps a locale to a glob matched against the relative path.
	LocalePatterns map[string]string
	// Recursive walks sub-directories, which enables <locale>/README.md layouts.
	Recursive bool
}

// Loader reads locale documents from a filesystem.
type Loader struct {
	fs  fs.FS
	cfg LoaderConfig
}

var _ interfaces.SourceLoader = (*Loader)(nil)

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "README*.md"
	}
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		cfg.DefaultLocale = "en"
	}
	return &Loader{fs: filesystem, cfg: cfg}
}

// Load returns one document per discovered file, ordered by locale.
func (l *Loader) Load(ctx context.Context) ([]interfaces.SourceDocument, error) {
	var docs []interfaces.SourceDocument
	seen := map[string]string{}

	err := fs.WalkDir(l.fs, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && !l.cfg.Recursive {
				return fs.SkipDir
			}
			return nil
		}
		if ok, _ := path.Match(l.cfg.Pattern, path.Base(p)); !ok {
			return nil
		}

		doc, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if !l.wanted(doc.Locale) {
			return nil
		}
		if prev, dup := seen[doc.Locale]; dup {
			return fmt.Errorf("markdown loader: locale %s provided by %s and %s", doc.Locale, prev, p)
		}
		seen[doc.Locale] = p
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Locale < docs[j].Locale })
	return docs, nil
}

// LoadFile reads a single document. Frontmatter keys "locale" and "title"
// override the values inferred from the path.
func (l *Loader) LoadFile(p string) (interfaces.SourceDocument, error) {
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return interfaces.SourceDocument{}, fmt.Errorf("markdown loader read %s: %w", p, err)
	}

	var meta struct {
		Locale string `yaml:"locale" toml:"locale"`
		Title  string `yaml:"title" toml:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return interfaces.SourceDocument{}, fmt.Errorf("markdown loader frontmatter %s: %w", p, err)
	}

	locale := strings.TrimSpace(meta.Locale)
	if locale == "" {
		locale = l.detectLocale(p)
	}
	sum := sha256.Sum256(data)

	return interfaces.SourceDocument{
		Path:     p,
		Locale:   locale,
		Title:    strings.TrimSpace(meta.Title),
		Body:     body,
		Checksum: sum[:],
	}, nil
}

func (l *Loader) wanted(locale string) bool {
	if len(l.cfg.Locales) == 0 {
		return true
	}
	for _, candidate := range l.cfg.Locales {
		if strings.EqualFold(strings.TrimSpace(candidate), locale) {
			return true
		}
	}
	return false
}

// detectLocale resolves, in order: configured patterns, a locale suffix on
// the file name (README-zh.md, README.zh-TW.md), a locale directory
// (zh/README.md), and finally the default locale.
func (l *Loader) detectLocale(p string) string {
	keys := make([]string, 0, len(l.cfg.LocalePatterns))
	for locale := range l.cfg.LocalePatterns {
		keys = append(keys, locale)
	}
	sort.Strings(keys)
	for _, locale := range keys {
		if ok, _ := path.Match(l.cfg.LocalePatterns[locale], p); ok {
			return locale
		}
	}

	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if i := strings.IndexAny(name, "-._"); i > 0 {
		if suffix := name[i+1:]; suffix != "" {
			return suffix
		}
	}

	if dir := path.Dir(p); dir != "." {
		return strings.SplitN(dir, "/", 2)[0]
	}
	return l.cfg.DefaultLocale
}
