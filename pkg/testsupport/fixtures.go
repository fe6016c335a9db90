package testsupport

import (
	_ "embed"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/markdown"
)

//go:embed testdata/README.md
var sampleReadme []byte

// SampleReadme returns a small awesome-mac style README.
//
// It yields two categories, two subcategories and eight apps; Brackets is
// struck through and never becomes an app.
func SampleReadme() []byte {
	out := make([]byte, len(sampleReadme))
	copy(out, sampleReadme)
	return out
}

// SampleTokenizer returns the tokenizer configuration used with SampleReadme.
func SampleTokenizer() *markdown.GoldmarkTokenizer {
	return markdown.NewGoldmarkTokenizer(markdown.TokenizerOptions{SkipSections: []string{"Contents"}})
}

// SampleCatalog tokenizes and parses SampleReadme.
func SampleCatalog() (*catalog.Result, error) {
	nodes, err := SampleTokenizer().Tokenize(sampleReadme)
	if err != nil {
		return nil, err
	}
	return catalog.Parse(nodes)
}
