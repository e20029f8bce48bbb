// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package section defines the closed set of tutorial sections, the
// router that tracks which one is selected, and the single dispatch
// point that maps a section to its view.
package section

import "fmt"

// ID identifies one of the four tutorial sections. The zero value is
// Theory, the section shown on first load.
type ID uint8

const (
	Theory ID = iota
	Setup
	CRUD
	Advanced

	count // number of sections; keep last
)

// Default is the section shown before the reader selects anything.
const Default = Theory

var slugs = [count]string{
	Theory:   "theory",
	Setup:    "setup",
	CRUD:     "crud",
	Advanced: "advanced",
}

var labels = [count]string{
	Theory:   "Theory",
	Setup:    "Setup",
	CRUD:     "CRUD",
	Advanced: "Advanced",
}

// All returns every section in tab order.
func All() []ID {
	return []ID{Theory, Setup, CRUD, Advanced}
}

// Valid reports whether id belongs to the closed set.
func (id ID) Valid() bool {
	return id < count
}

// String returns the URL slug ("theory", "setup", ...).
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("section(%d)", uint8(id))
	}
	return slugs[id]
}

// Label returns the tab caption.
func (id ID) Label() string {
	if !id.Valid() {
		return labels[Default]
	}
	return labels[id]
}

// Parse maps a slug to its ID. The second result is false for slugs
// outside the closed set.
func Parse(slug string) (ID, bool) {
	for i, s := range slugs {
		if s == slug {
			return ID(i), true
		}
	}
	return Default, false
}

// ParseOrDefault is Parse with the permissive fallback used by the
// HTTP surface: anything unknown shows the first section.
func ParseOrDefault(slug string) ID {
	id, _ := Parse(slug)
	return id
}

// MarshalText implements encoding.TextMarshaler so IDs serialize as
// their slug in JSON and YAML.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("section: invalid id %d", uint8(id))
	}
	return []byte(slugs[id]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, ok := Parse(string(b))
	if !ok {
		return fmt.Errorf("section: unknown section %q", string(b))
	}
	*id = parsed
	return nil
}
