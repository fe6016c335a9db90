package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedHeading  = errors.New("catalog: heading has no extractable text")
	ErrMissingURL        = errors.New("catalog: list item has no url")
	ErrMissingName       = errors.New("catalog: list item has no name")
	ErrOrphanItem        = errors.New("catalog: list item outside of any category")
	ErrOrphanSubcategory = fmt.Errorf("%w: subcategory heading before any category", ErrOrphanItem)
	ErrDuplicateKey      = errors.New("catalog: duplicate index key")
)

// MalformedHeadingError reports a structural heading that yielded no name or slug.
type MalformedHeadingError struct {
	Index int
	Depth int
}

func (e *MalformedHeadingError) Error() string {
	if e == nil {
		return ErrMalformedHeading.Error()
	}
	return fmt.Sprintf("%s: node=%d depth=%d", ErrMalformedHeading.Error(), e.Index, e.Depth)
}

func (e *MalformedHeadingError) Unwrap() error {
	return ErrMalformedHeading
}

// MissingURLError reports a list item without mark or link url.
type MissingURLError struct {
	Index int
	Name  string
}

func (e *MissingURLError) Error() string {
	if e == nil {
		return ErrMissingURL.Error()
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: node=%d name=%q", ErrMissingURL.Error(), e.Index, e.Name)
	}
	return fmt.Sprintf("%s: node=%d", ErrMissingURL.Error(), e.Index)
}

func (e *MissingURLError) Unwrap() error {
	return ErrMissingURL
}

// MissingNameError reports a list item whose name could not be derived from
// the mark, the link text or the url host.
type MissingNameError struct {
	Index int
	URL   string
}

func (e *MissingNameError) Error() string {
	if e == nil {
		return ErrMissingName.Error()
	}
	return fmt.Sprintf("%s: node=%d url=%q", ErrMissingName.Error(), e.Index, e.URL)
}

func (e *MissingNameError) Unwrap() error {
	return ErrMissingName
}

// OrphanItemError reports content with no enclosing category. Before the
// first category heading it is fatal for the parse invocation; after a
// malformed category heading it is recorded as a CodeOrphanItem diagnostic.
type OrphanItemError struct {
	Index       int
	Name        string
	Subcategory bool
}

func (e *OrphanItemError) Error() string {
	if e == nil {
		return ErrOrphanItem.Error()
	}
	base := ErrOrphanItem
	if e.Subcategory {
		base = ErrOrphanSubcategory
	}
	if e.Name != "" {
		return fmt.Sprintf("%s: node=%d name=%q", base.Error(), e.Index, e.Name)
	}
	return fmt.Sprintf("%s: node=%d", base.Error(), e.Index)
}

func (e *OrphanItemError) Unwrap() error {
	if e != nil && e.Subcategory {
		return ErrOrphanSubcategory
	}
	return ErrOrphanItem
}

// DuplicateKeyError reports an index key claimed by two different entries.
type DuplicateKeyError struct {
	Namespace string
	Key       string
}

func (e *DuplicateKeyError) Error() string {
	if e == nil {
		return ErrDuplicateKey.Error()
	}
	return fmt.Sprintf("%s: namespace=%s key=%s", ErrDuplicateKey.Error(), e.Namespace, e.Key)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// Code classifies a recovered diagnostic.
type Code string

const (
	CodeMalformedHeading Code = "malformed_heading"
	CodeMissingURL       Code = "missing_url"
	CodeMissingName      Code = "missing_name"
	CodeOrphanItem       Code = "orphan_item"
)

// Diagnostic records a node dropped during parsing. Index is the position of
// the top-level node that contained the offending content. Name is empty
// when the dropped node had no recoverable name.
type Diagnostic struct {
	Code  Code
	Index int
	Name  string
	Err   error
}

func (d Diagnostic) String() string {
	if d.Err == nil {
		return string(d.Code)
	}
	return d.Err.Error()
}
