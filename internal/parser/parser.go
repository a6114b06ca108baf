// Package parser is the public entry point for turning cbuf schema source
// text into a fully resolved, hashed list of struct/enum entities: it runs
// the grammar (internal/lang), then the semantic analyzer described in
// §4.3-§4.4 of the specification, then the hasher (internal/hash).
package parser

import (
	"github.com/verdant-robotics/cbuf/internal/hash"
	"github.com/verdant-robotics/cbuf/internal/lang"
	"github.com/verdant-robotics/cbuf/internal/schema"
)

var reservedWords = map[string]bool{ //nolint:gochecknoglobals
	"namespace": true, "const": true, "enum": true, "class": true,
	"struct": true, "naked": true, "compact": true, "true": true, "false": true,
}

// Parse runs the full pipeline: grammar parse, semantic analysis (namespace
// resolution, enum rewriting, default-value typing, duplicate detection),
// and hash computation. The returned entities are ready to be indexed with
// schema.BuildIndex and used by the codec.
func Parse(text string) ([]*schema.Entity, error) {
	doc, err := lang.Parse(text)
	if err != nil {
		return nil, err
	}

	a := newAnalyzer()
	if err := a.collect(doc.Decls, nil, 0); err != nil {
		return nil, err
	}

	index, err := schema.BuildIndex(a.entities)
	if err != nil {
		return nil, err
	}
	a.index = index

	for _, raw := range a.structs {
		if err := a.resolveStruct(raw); err != nil {
			return nil, err
		}
	}

	structCount := 0
	byName := make(map[string]*schema.Entity, len(a.entities))
	for _, e := range a.entities {
		byName[e.QualifiedName] = e
		if !e.IsEnum {
			structCount++
		}
	}
	if structCount == 0 {
		return nil, schema.NoStructsError{}
	}

	if err := hash.ComputeAll(byName); err != nil {
		return nil, err
	}

	return a.entities, nil
}
