// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns card titles into fragment anchors
// ("Step 1: Better Validation" → "step-1-better-validation").
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// fold maps accented Latin letters to their base letter. Anything not
// listed and not ASCII alphanumeric acts as a separator.
var fold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ñ': 'n', 'ç': 'c',
}

// Generate lowercases s, folds accents and joins the remaining runs of
// letters and digits with single hyphens.
func Generate(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if f, ok := fold[r]; ok {
			r = f
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// Set hands out anchors that are unique within one page. The zero
// value is ready to use.
type Set struct {
	seen map[string]int
}

// Unique returns Generate(s), suffixed with -2, -3, ... when the same
// anchor was already handed out. Empty results become "section".
func (set *Set) Unique(s string) string {
	if set.seen == nil {
		set.seen = make(map[string]int)
	}
	base := Generate(s)
	if base == "" {
		base = "section"
	}
	set.seen[base]++
	n := set.seen[base]
	if n == 1 {
		return base
	}
	candidate := base + "-" + strconv.Itoa(n)
	for set.seen[candidate] > 0 {
		n++
		set.seen[base] = n
		candidate = base + "-" + strconv.Itoa(n)
	}
	set.seen[candidate]++
	return candidate
}
