// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package section

// Views holds one view per section. It is the only place where a
// section is turned into something to display.
type Views[V any] struct {
	Theory   V
	Setup    V
	CRUD     V
	Advanced V
}

// For returns the view for id. Unknown ids get the Theory view.
func (v Views[V]) For(id ID) V {
	switch id {
	case Theory:
		return v.Theory
	case Setup:
		return v.Setup
	case CRUD:
		return v.CRUD
	case Advanced:
		return v.Advanced
	default:
		return v.Theory
	}
}

// Set replaces the view for id. It panics on an unknown id.
func (v *Views[V]) Set(id ID, view V) {
	mustValid(id)
	switch id {
	case Theory:
		v.Theory = view
	case Setup:
		v.Setup = view
	case CRUD:
		v.CRUD = view
	case Advanced:
		v.Advanced = view
	}
}
