// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"ormtutor/internal/section"
)

//go:embed curriculum/*.yaml
var curriculumFS embed.FS

// Library is an in-memory set of section documents, one per section.
type Library struct {
	views section.Views[*Section]
}

// Load parses every *.yaml file at the root of fsys. Each section must
// appear exactly once and all sections must be present.
func Load(fsys fs.FS) (*Library, error) {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list curriculum: %w", err)
	}

	lib := &Library{}
	seen := make(map[section.ID]string, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if prev, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%s: section %s already defined in %s", name, s.ID, prev)
		}
		seen[s.ID] = name
		lib.views.Set(s.ID, s)
	}

	for _, id := range section.All() {
		if _, ok := seen[id]; !ok {
			return nil, fmt.Errorf("curriculum: missing section %s", id)
		}
	}
	return lib, nil
}

var embedded = sync.OnceValues(func() (*Library, error) {
	sub, err := fs.Sub(curriculumFS, "curriculum")
	if err != nil {
		return nil, err
	}
	return Load(sub)
})

// Embedded returns the curriculum compiled into the binary. It is parsed
// once and shared; callers must not mutate the returned sections.
func Embedded() (*Library, error) {
	return embedded()
}

// EmbeddedDocuments returns the raw YAML of every embedded section,
// keyed by section. Used to seed the database store.
func EmbeddedDocuments() (map[section.ID][]byte, error) {
	lib, err := Embedded()
	if err != nil {
		return nil, err
	}
	out := make(map[section.ID][]byte, len(section.All()))
	for _, id := range section.All() {
		name := path.Join("curriculum", id.String()+".yaml")
		data, err := curriculumFS.ReadFile(name)
		if err != nil {
			// File names are a convention; fall back to re-encoding.
			s, _ := lib.Section(context.Background(), id)
			if data, err = Marshal(s); err != nil {
				return nil, err
			}
		}
		out[id] = data
	}
	return out, nil
}

// Section returns the document for id. Ids outside the closed set get
// the Theory document.
func (l *Library) Section(_ context.Context, id section.ID) (*Section, error) {
	s := l.views.For(id)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Sections returns all documents in tab order.
func (l *Library) Sections() []*Section {
	out := make([]*Section, 0, len(section.All()))
	for _, id := range section.All() {
		if s := l.views.For(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}
