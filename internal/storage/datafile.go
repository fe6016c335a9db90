package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/validation"
)

// ErrDataFileInconsistent indicates a category references an app that is
// missing from the flat app list.
var ErrDataFileInconsistent = errors.New("storage: data file references unknown app")

// DataFile is the on-disk form of a locale catalog. The lookup maps are not
// stored; they are rebuilt on read.
type DataFile struct {
	Locale      string              `json:"locale"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Categories  []*catalog.Category `json:"categories"`
	Apps        []*catalog.App      `json:"apps"`
}

// NewDataFile captures result for locale.
func NewDataFile(locale string, result *catalog.Result, generatedAt time.Time) DataFile {
	df := DataFile{
		Locale:      locale,
		GeneratedAt: generatedAt.UTC(),
		Categories:  []*catalog.Category{},
		Apps:        []*catalog.App{},
	}
	if result != nil {
		if result.Categories != nil {
			df.Categories = result.Categories
		}
		if result.Apps != nil {
			df.Apps = result.Apps
		}
	}
	return df
}

// EncodeDataFile serialises df, indented when pretty is set.
func EncodeDataFile(df DataFile, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(df, "", "  ")
	} else {
		data, err = json.Marshal(df)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: encode data file: %w", err)
	}
	return data, nil
}

// DecodeDataFile validates data against the data file schema and rebuilds
// the catalog. Category app lists are relinked to the instances of the flat
// app list so both views share the same pointers, as after a parse.
func DecodeDataFile(data []byte) (DataFile, *catalog.Result, error) {
	if err := validation.ValidateDataFile(data); err != nil {
		return DataFile{}, nil, fmt.Errorf("storage: invalid data file: %w", err)
	}
	var df DataFile
	if err := json.Unmarshal(data, &df); err != nil {
		return DataFile{}, nil, fmt.Errorf("storage: decode data file: %w", err)
	}
	result, err := df.Catalog()
	if err != nil {
		return DataFile{}, nil, err
	}
	return df, result, nil
}

// Catalog rebuilds the parse result held by df.
func (df DataFile) Catalog() (*catalog.Result, error) {
	byID := make(map[string]*catalog.App, len(df.Apps))
	for _, app := range df.Apps {
		byID[app.ID] = app
	}

	var relink func([]*catalog.Category) error
	relink = func(list []*catalog.Category) error {
		for _, c := range list {
			if c.Apps == nil {
				c.Apps = []*catalog.App{}
			}
			if c.Subcategories == nil {
				c.Subcategories = []*catalog.Category{}
			}
			for i, app := range c.Apps {
				shared, ok := byID[app.ID]
				if !ok {
					return fmt.Errorf("%w: %s in %s", ErrDataFileInconsistent, app.ID, c.ID)
				}
				c.Apps[i] = shared
			}
			if err := relink(c.Subcategories); err != nil {
				return err
			}
		}
		return nil
	}
	if err := relink(df.Categories); err != nil {
		return nil, err
	}
	return catalog.Assemble(df.Categories, df.Apps)
}

// DataFilePath returns the data file location of locale under dir.
func DataFilePath(dir, locale string) string {
	return filepath.Join(dir, strings.TrimSpace(locale)+".json")
}

// WriteDataFile writes the data file of locale under dir and returns its path.
func WriteDataFile(dir string, df DataFile, pretty bool) (string, error) {
	if _, err := normalizeLocale(df.Locale); err != nil {
		return "", err
	}
	data, err := EncodeDataFile(df, pretty)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create %s: %w", dir, err)
	}
	path := DataFilePath(dir, df.Locale)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("storage: replace %s: %w", path, err)
	}
	return path, nil
}

// ReadDataFile loads and validates a data file.
func ReadDataFile(path string) (DataFile, *catalog.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DataFile{}, nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return DecodeDataFile(data)
}
