package schemafile

import (
	"fmt"
	"io/fs"
	"sort"
)

// Store holds every form found in a directory, keyed by document name.
type Store struct {
	documents map[string]Document
}

// LoadDir walks fsys and loads every JSON/YAML file. When fsys is nil or
// holds no schema files the returned store is empty.
func LoadDir(fsys fs.FS, opts ...Option) (*Store, error) {
	store := &Store{documents: make(map[string]Document)}
	if fsys == nil {
		return store, nil
	}

	l := newLoader(opts)
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", name, err)
		}
		doc, err := l.load(data, name)
		if err != nil {
			return err
		}
		if existing, exists := store.documents[doc.Name]; exists {
			return fmt.Errorf("schemafile: duplicate form %q (files %s and %s)", doc.Name, existing.Source, name)
		}
		store.documents[doc.Name] = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Document returns the form registered under name.
func (s *Store) Document(name string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.documents[name]
	return doc, ok
}

// Names lists the loaded forms in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.documents) == 0
}
