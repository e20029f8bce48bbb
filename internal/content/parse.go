// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingID reports a document without an id key. The zero ID is
// theory, so such a document would otherwise replace the theory section.
var ErrMissingID = errors.New("section: id is required")

// Parse decodes and validates one section document. Unknown keys are
// rejected so that typos in authored content fail loudly.
func Parse(data []byte) (*Section, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Section
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode section: %w", err)
	}

	var head struct {
		ID *yaml.Node `yaml:"id"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode section: %w", err)
	}
	if head.ID == nil || head.ID.Kind != yaml.ScalarNode || head.ID.Tag == "!!null" {
		return nil, ErrMissingID
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes s as a YAML document that Parse accepts.
func Marshal(s *Section) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode section %s: %w", s.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode section %s: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

// Canonical parses data and re-encodes it with Marshal. Stored
// documents are kept in this form so that byte comparison tells whether
// two documents describe the same section.
func Canonical(data []byte) ([]byte, error) {
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Marshal(s)
}

// Validate checks the structural rules Parse enforces.
func (s *Section) Validate() error {
	if !s.ID.Valid() {
		return fmt.Errorf("section: invalid id %d", uint8(s.ID))
	}
	if s.Title == "" {
		return fmt.Errorf("section %s: title is required", s.ID)
	}
	if len(s.Cards) == 0 {
		return fmt.Errorf("section %s: at least one card is required", s.ID)
	}

	var errs []error
	for i, c := range s.Cards {
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("card %d: title is required", i))
		}
		if !c.Variant.Valid() {
			errs = append(errs, fmt.Errorf("card %q: unknown variant %q", c.Title, c.Variant))
		}
		if len(c.Blocks) == 0 {
			errs = append(errs, fmt.Errorf("card %q: no blocks", c.Title))
		}
		if err := validateBlocks(c.Blocks, true); err != nil {
			errs = append(errs, fmt.Errorf("card %q: %w", c.Title, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("section %s: %w", s.ID, err)
	}
	return nil
}

func validateBlocks(blocks []Block, allowColumns bool) error {
	for i, b := range blocks {
		switch b.Kind() {
		case KindInvalid:
			return fmt.Errorf("block %d: exactly one of heading, paragraph, list, snippet or columns must be set", i)
		case KindColumns:
			if !allowColumns {
				return fmt.Errorf("block %d: columns cannot be nested", i)
			}
			for j, col := range b.Columns {
				if len(col) == 0 {
					return fmt.Errorf("block %d: column %d is empty", i, j)
				}
				if err := validateBlocks(col, false); err != nil {
					return fmt.Errorf("block %d column %d: %w", i, j, err)
				}
			}
		}
	}
	return nil
}
