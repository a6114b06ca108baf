// Package hash computes the cbuf struct fingerprint (§4.6): a canonical
// textual encoding of a struct's shape, reduced to a 64-bit integer with a
// djb2-style rolling hash. Struct hashes are computed recursively — a
// struct's canonical text embeds the decimal hash of every nested struct it
// references — so this package also owns cycle detection over the
// struct-reference graph.
package hash

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verdant-robotics/cbuf/internal/schema"
)

// Digest implements the djb2-style 64-bit rolling hash of §4.6:
//
//	hash := 5381
//	for each char c in text:
//	    hash := ((hash << 5) + hash + code(c)) mod 2^64
//
// Go's uint64 arithmetic wraps on overflow exactly as "mod 2^64" requires.
func Digest(text string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(text); i++ {
		h = (h << 5) + h + uint64(text[i])
	}
	return h
}

// ComputeAll fills HashValue on every struct entity in byName, recursively
// resolving nested struct references. Enums are left at HashValue==0.
// Entities already carrying a non-zero HashValue (e.g. a caller re-running
// this over a partially hashed set) are recomputed unconditionally, since
// hashing is pure and idempotent.
func ComputeAll(byName map[string]*schema.Entity) error {
	done := make(map[string]uint64, len(byName))
	visiting := make(map[string]bool, len(byName))
	for name, e := range byName {
		if e.IsEnum {
			continue
		}
		if _, err := computeOne(name, byName, visiting, done); err != nil {
			return err
		}
	}
	for name, e := range byName {
		if e.IsEnum {
			continue
		}
		e.HashValue = done[name]
	}
	return nil
}

// Compute resolves typeName from namespaces via the namespace walk (§4.4,
// §9) against index and returns its hash, always computing it (and anything
// it depends on) from the canonical text. HashValue fields already stored on
// the entities are neither read nor updated.
func Compute(index *schema.Index, namespaces []string, typeName string) (uint64, error) {
	e, ok := index.Resolve(namespaces, typeName)
	if !ok {
		return 0, schema.UnknownTypeError{TypeName: typeName}
	}
	if e.IsEnum {
		return 0, nil
	}
	byName := make(map[string]*schema.Entity)
	for _, ent := range index.Entities() {
		byName[ent.QualifiedName] = ent
	}
	done := make(map[string]uint64)
	visiting := make(map[string]bool)
	return computeOne(e.QualifiedName, byName, visiting, done)
}

func computeOne(
	name string,
	byName map[string]*schema.Entity,
	visiting map[string]bool,
	done map[string]uint64,
) (uint64, error) {
	if h, ok := done[name]; ok {
		return h, nil
	}
	if visiting[name] {
		return 0, schema.CyclicSchemaError{QualifiedName: name}
	}
	e, ok := byName[name]
	if !ok {
		return 0, schema.UnknownTypeError{TypeName: name}
	}
	if e.IsEnum {
		done[name] = 0
		return 0, nil
	}
	visiting[name] = true
	text, err := canonicalText(e, byName, visiting, done)
	visiting[name] = false
	if err != nil {
		return 0, err
	}
	h := Digest(text)
	done[name] = h
	return h, nil
}

// canonicalText builds the exact textual form hashed for e, per §4.6. The
// trailing space before each newline is significant.
func canonicalText(
	e *schema.Entity,
	byName map[string]*schema.Entity,
	visiting map[string]bool,
	done map[string]uint64,
) (string, error) {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(e.Name)
	b.WriteString(" \n")
	for _, f := range e.Definitions {
		if f.IsArray {
			bound := f.ArrayLength
			fmt.Fprintf(&b, "[%d] ", bound)
		}
		elem, err := elementSpelling(f, byName, visiting, done)
		if err != nil {
			return "", err
		}
		b.WriteString(elem)
		b.WriteByte(' ')
		b.WriteString(f.Name)
		b.WriteString("; \n")
	}
	return b.String(), nil
}

func elementSpelling(
	f schema.Field,
	byName map[string]*schema.Entity,
	visiting map[string]bool,
	done map[string]uint64,
) (string, error) {
	if !f.IsComplex {
		return f.Type.CSpelling(f.UpperBound), nil
	}
	h, err := computeOne(f.ComplexType, byName, visiting, done)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(h, 10), nil
}
