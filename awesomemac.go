// Package awesomemac parses awesome-mac style README documents into a
// catalog of categories and apps.
//
// Parse consumes an already tokenized node sequence; ParseMarkdown tokenizes
// README source with goldmark first. Both return a fully linked Result or an
// error, never a partial catalog.
package awesomemac

import (
	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/internal/markdown"
	"github.com/goliatone/go-awesome-mac/internal/query"
	"github.com/goliatone/go-awesome-mac/pkg/ast"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// Category exports the catalog category record.
type Category = catalog.Category

// App exports the catalog app record.
type App = catalog.App

// Result exports the parsed catalog.
type Result = catalog.Result

// Diagnostic exports a recovered parse problem.
type Diagnostic = catalog.Diagnostic

// Catalog exports the query layer over a Result.
type Catalog = query.Catalog

// Error sentinels, usable with errors.Is.
var (
	ErrMalformedHeading  = catalog.ErrMalformedHeading
	ErrMissingURL        = catalog.ErrMissingURL
	ErrMissingName       = catalog.ErrMissingName
	ErrOrphanItem        = catalog.ErrOrphanItem
	ErrOrphanSubcategory = catalog.ErrOrphanSubcategory
	ErrDuplicateKey      = catalog.ErrDuplicateKey
)

// Options configures ParseMarkdown.
type Options struct {
	// SkipSections lists depth 2 headings whose content is ignored.
	// Defaults to "Contents".
	SkipSections []string
	// Logger receives recovered diagnostics.
	Logger interfaces.Logger
}

// Parse builds a catalog from a tokenized node sequence.
func Parse(nodes []ast.Node) (*Result, error) {
	return catalog.Parse(nodes)
}

// ParseMarkdown tokenizes README source and builds its catalog.
func ParseMarkdown(source []byte, opts Options) (*Result, error) {
	skip := opts.SkipSections
	if skip == nil {
		skip = []string{"Contents"}
	}
	nodes, err := markdown.NewGoldmarkTokenizer(markdown.TokenizerOptions{SkipSections: skip}).Tokenize(source)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return catalog.Parse(nodes, catalog.WithLogger(logger))
}

// DecodeAST decodes an mdast style JSON node sequence, as produced by other
// markdown toolchains, for use with Parse.
func DecodeAST(data []byte) ([]ast.Node, error) {
	return ast.Decode(data)
}

// Query wraps result with lookup, filter and search helpers.
func Query(result *Result) *Catalog {
	return query.New(result)
}
