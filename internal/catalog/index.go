package catalog

const (
	namespaceCategory = "category"
	namespaceApp      = "app"
)

// Assemble builds a Result and its lookup maps from already materialized
// categories and apps. Every category reachable from categories is indexed
// under its slug and id, as is every app. A key shared by two distinct
// entries of the same namespace fails with a DuplicateKeyError.
func Assemble(categories []*Category, apps []*App) (*Result, error) {
	if categories == nil {
		categories = []*Category{}
	}
	if apps == nil {
		apps = []*App{}
	}
	result := &Result{
		Categories:  categories,
		Apps:        apps,
		CategoryMap: map[string]*Category{},
		AppMap:      map[string]*App{},
	}

	var register func([]*Category) error
	register = func(list []*Category) error {
		for _, c := range list {
			for _, key := range []string{c.Slug, c.ID} {
				if err := put(result.CategoryMap, namespaceCategory, key, c); err != nil {
					return err
				}
			}
			if err := register(c.Subcategories); err != nil {
				return err
			}
		}
		return nil
	}
	if err := register(categories); err != nil {
		return nil, err
	}

	for _, a := range apps {
		for _, key := range []string{a.Slug, a.ID} {
			if err := put(result.AppMap, namespaceApp, key, a); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func put[T any](index map[string]*T, namespace, key string, value *T) error {
	if existing, ok := index[key]; ok && existing != value {
		return &DuplicateKeyError{Namespace: namespace, Key: key}
	}
	index[key] = value
	return nil
}
