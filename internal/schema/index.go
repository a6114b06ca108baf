package schema

import "strings"

// MetadataHash is the fixed wire hash of the ambient cbufmsg::metadata
// struct (§4.7), recognized by the codec even when absent from a schema's
// own index.
const MetadataHash uint64 = 0xBE6738D544AB72C6

// MetadataQualifiedName is the fully qualified name of the ambient metadata
// struct.
const MetadataQualifiedName = "cbufmsg::metadata"

// metadataEntity is the compile-time-constant definition of cbufmsg::metadata.
// It is never produced by the parser; callers recognize it by hash at decode
// time (Index.ByHash below, and by name via Index.ByName) regardless of what
// the schema source declared.
var metadataEntity = &Entity{ //nolint:gochecknoglobals
	Name:          "metadata",
	QualifiedName: MetadataQualifiedName,
	Namespaces:    []string{"cbufmsg"},
	HashValue:     MetadataHash,
	Definitions: []Field{
		{Name: "msg_hash", Type: Uint64},
		{Name: "msg_name", Type: String},
		{Name: "msg_meta", Type: String},
	},
}

// Metadata returns the ambient cbufmsg::metadata entity.
func Metadata() *Entity {
	return metadataEntity
}

// Index holds the two read-only lookup maps built once per parse result
// (§3, Schema index): name → entity (all entities) and hash → struct entity
// (enums excluded, since enums carry HashValue==0 and are not wire types).
type Index struct {
	byName map[string]*Entity
	byHash map[uint64]*Entity
}

// BuildIndex constructs an Index over a fully resolved entity list. The same
// *Entity values populate both maps.
func BuildIndex(entities []*Entity) (*Index, error) {
	idx := &Index{
		byName: make(map[string]*Entity, len(entities)),
		byHash: make(map[uint64]*Entity, len(entities)),
	}
	for _, e := range entities {
		if _, exists := idx.byName[e.QualifiedName]; exists {
			return nil, DuplicateEntityError{QualifiedName: e.QualifiedName}
		}
		idx.byName[e.QualifiedName] = e
		if !e.IsEnum {
			idx.byHash[e.HashValue] = e
		}
	}
	return idx, nil
}

// ByName looks up an entity by its fully qualified name.
func (idx *Index) ByName(qualifiedName string) (*Entity, bool) {
	if qualifiedName == MetadataQualifiedName {
		return metadataEntity, true
	}
	e, ok := idx.byName[qualifiedName]
	return e, ok
}

// ByHash looks up a struct entity by its wire hash, falling back to the
// ambient metadata definition (§4.7).
func (idx *Index) ByHash(hash uint64) (*Entity, bool) {
	if hash == MetadataHash {
		return metadataEntity, true
	}
	e, ok := idx.byHash[hash]
	return e, ok
}

// Resolve performs the namespace walk of §4.4: if typeName already contains
// "::" it is looked up directly; otherwise candidates are tried from the
// most-qualified (current namespace stack) down to the bare name. This is
// the single implementation of the unified behavior called for by the open
// question in §9, shared by the semantic analyzer and by hash.Compute.
func (idx *Index) Resolve(namespaces []string, typeName string) (*Entity, bool) {
	if strings.Contains(typeName, "::") {
		e, ok := idx.ByName(typeName)
		return e, ok
	}
	for i := len(namespaces); i >= 0; i-- {
		candidate := Qualify(namespaces[:i], typeName)
		if e, ok := idx.ByName(candidate); ok {
			return e, ok
		}
	}
	return nil, false
}

// Entities returns all entities registered by qualified name, in unspecified
// order. Useful for iterating a full schema after it has been indexed.
func (idx *Index) Entities() []*Entity {
	out := make([]*Entity, 0, len(idx.byName))
	for _, e := range idx.byName {
		out = append(out, e)
	}
	return out
}
