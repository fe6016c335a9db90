package catalog

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases value, drops everything outside [a-z0-9], whitespace,
// hyphen and underscore, turns whitespace and underscore runs into a single
// hyphen and trims hyphens from both ends.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

// foldMarks strips combining marks so accented latin letters survive
// Slugify as their base letter.
func foldMarks(value string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), value)
	if err != nil {
		return value
	}
	return folded
}

// nameSlug slugifies name after folding diacritics. Names that still yield
// nothing go through the go-slug normalizer.
func nameSlug(name string) string {
	if s := Slugify(foldMarks(name)); s != "" {
		return s
	}
	if normalized, err := slug.Normalize(name); err == nil {
		return Slugify(normalized)
	}
	return ""
}

// slugFor resolves a slug for a human readable name, falling back to a
// stable hash of the name when nameSlug yields nothing usable.
func slugFor(name, prefix string) string {
	if s := nameSlug(name); s != "" {
		return s
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return hashSlug(prefix, trimmed)
}

// appSlugFor prefers the name and falls back to the url host and path.
func appSlugFor(name, rawURL string) string {
	if s := nameSlug(name); s != "" {
		return s
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Hostname(), "www.")
		if s := Slugify(strings.NewReplacer(".", " ", "/", " ").Replace(host + u.Path)); s != "" {
			return s
		}
	}
	return hashSlug("app", strings.TrimSpace(name)+rawURL)
}

func hashSlug(prefix, value string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(value))
	return fmt.Sprintf("%s-%08x", prefix, h.Sum32())
}

// registry allocates app slugs for a single parse invocation. Collisions
// get a numeric suffix starting at 2 in first-seen order.
type registry struct {
	taken map[string]struct{}
}

func newRegistry() *registry {
	return &registry{taken: map[string]struct{}{}}
}

func (r *registry) claim(base string) string {
	candidate := base
	for n := 2; ; n++ {
		if _, exists := r.taken[candidate]; !exists {
			break
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
	r.taken[candidate] = struct{}{}
	return candidate
}

func (r *registry) size() int {
	return len(r.taken)
}
