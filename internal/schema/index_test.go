package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/verdant-robotics/cbuf/internal/schema"
)

func buildIndex(t *testing.T, entities []*schema.Entity) *schema.Index {
	t.Helper()
	index, err := schema.BuildIndex(entities)
	require.NoError(t, err)
	return index
}

func TestBuildIndexRejectsDuplicateNames(t *testing.T) {
	a1 := &schema.Entity{Name: "a", QualifiedName: "a"}
	a2 := &schema.Entity{Name: "a", QualifiedName: "a"}
	_, err := schema.BuildIndex([]*schema.Entity{a1, a2})
	require.ErrorIs(t, err, schema.DuplicateEntityError{})
}

func TestByNameFallsBackToMetadata(t *testing.T) {
	index := buildIndex(t, nil)
	e, ok := index.ByName(schema.MetadataQualifiedName)
	require.True(t, ok)
	require.Equal(t, schema.Metadata(), e)
}

func TestByHashFallsBackToMetadata(t *testing.T) {
	index := buildIndex(t, nil)
	e, ok := index.ByHash(schema.MetadataHash)
	require.True(t, ok)
	require.Equal(t, schema.Metadata(), e)
}

func TestResolveBareNameWithinCurrentNamespace(t *testing.T) {
	inner := &schema.Entity{Name: "Inner", QualifiedName: "outer::Inner", Namespaces: []string{"outer"}}
	index := buildIndex(t, []*schema.Entity{inner})

	e, ok := index.Resolve([]string{"outer"}, "Inner")
	require.True(t, ok)
	require.Same(t, inner, e)
}

func TestResolveFallsBackToGlobalNamespace(t *testing.T) {
	global := &schema.Entity{Name: "Global", QualifiedName: "Global"}
	index := buildIndex(t, []*schema.Entity{global})

	e, ok := index.Resolve([]string{"outer"}, "Global")
	require.True(t, ok)
	require.Same(t, global, e)
}

func TestResolveQualifiedNameBypassesNamespaceWalk(t *testing.T) {
	inner := &schema.Entity{Name: "Inner", QualifiedName: "ns::Inner", Namespaces: []string{"ns"}}
	index := buildIndex(t, []*schema.Entity{inner})

	e, ok := index.Resolve(nil, "ns::Inner")
	require.True(t, ok)
	require.Same(t, inner, e)

	_, ok = index.Resolve(nil, "other::Inner")
	require.False(t, ok)
}

func TestResolveUnknownNameFails(t *testing.T) {
	index := buildIndex(t, nil)
	_, ok := index.Resolve([]string{"outer"}, "Missing")
	require.False(t, ok)
}

func TestByHashIndexesOnlyStructs(t *testing.T) {
	s := &schema.Entity{Name: "S", QualifiedName: "S", HashValue: 42}
	e := &schema.Entity{Name: "E", QualifiedName: "E", IsEnum: true, HashValue: 0}
	index := buildIndex(t, []*schema.Entity{s, e})

	got, ok := index.ByHash(42)
	require.True(t, ok)
	require.Same(t, s, got)

	_, ok = index.ByHash(0)
	require.False(t, ok)
}

func TestEntitiesReturnsEverythingRegistered(t *testing.T) {
	a := &schema.Entity{Name: "a", QualifiedName: "a"}
	b := &schema.Entity{Name: "b", QualifiedName: "b"}
	index := buildIndex(t, []*schema.Entity{a, b})
	require.Len(t, index.Entities(), 2)
}
