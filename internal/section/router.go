// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package section

import "fmt"

// Router is the single state cell holding the selected section. It is
// owned by whoever sits at the top of the view tree and handed down as
// a value plus the Select setter.
//
// The zero Router has Default selected.
type Router struct {
	current ID
}

// NewRouter returns a Router with initial selected. It panics if
// initial is outside the closed set.
func NewRouter(initial ID) Router {
	mustValid(initial)
	return Router{current: initial}
}

// Current returns the selected section.
func (r *Router) Current() ID {
	return r.current
}

// Select makes id the selected section and reports whether the
// selection changed. Selecting the current section again is a no-op.
// An id outside the closed set is a programming error and panics.
func (r *Router) Select(id ID) bool {
	mustValid(id)
	if r.current == id {
		return false
	}
	r.current = id
	return true
}

// Next selects the section after the current one, wrapping around.
func (r *Router) Next() bool {
	return r.Select((r.current + 1) % count)
}

// Prev selects the section before the current one, wrapping around.
func (r *Router) Prev() bool {
	return r.Select((r.current + count - 1) % count)
}

func mustValid(id ID) {
	if !id.Valid() {
		panic(fmt.Sprintf("section: select of unknown section %d", uint8(id)))
	}
}
