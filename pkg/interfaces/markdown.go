package interfaces

import (
	"context"

	"github.com/goliatone/go-awesome-mac/pkg/ast"
)

// Tokenizer converts a markdown source document into the node sequence
// consumed by the catalog parser.
type Tokenizer interface {
	Tokenize(source []byte) ([]ast.Node, error)
}

// SourceDocument is a locale specific awesome list document.
type SourceDocument struct {
	Path     string
	Locale   string
	Title    string
	Body     []byte
	Checksum []byte
}

// SourceLoader discovers the locale documents feeding a catalog build.
type SourceLoader interface {
	Load(ctx context.Context) ([]SourceDocument, error)
}
