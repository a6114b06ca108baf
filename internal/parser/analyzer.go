package parser

import (
	"github.com/verdant-robotics/cbuf/internal/lang"
	"github.com/verdant-robotics/cbuf/internal/schema"
)

type rawStruct struct {
	entity *schema.Entity
	fields []*lang.FieldDecl
}

// analyzer implements §4.3: a single pass collects namespace-qualified
// entities (constants checked and discarded, enums fully built, struct
// skeletons registered) and a second pass, run after an Index exists over
// everything collected, resolves and rewrites struct fields.
type analyzer struct {
	entities []*schema.Entity
	structs  []rawStruct
	defined  map[string]bool // qualified names already taken, for DuplicateEntity
	index    *schema.Index
}

func newAnalyzer() *analyzer {
	return &analyzer{defined: make(map[string]bool)}
}

// collect walks decls in source order, tracking a namespace stack of depth
// at most one (§4.3). depth counts namespace nesting so a namespace block
// found while depth>0 is rejected as NestedNamespaceError.
func (a *analyzer) collect(decls []*lang.TopDecl, namespaces []string, depth int) error {
	for _, decl := range decls {
		switch {
		case decl.Namespace != nil:
			if depth > 0 {
				return schema.NestedNamespaceError{Name: decl.Namespace.Name}
			}
			if err := checkIdentifier(decl.Namespace.Name); err != nil {
				return err
			}
			next := append(append([]string{}, namespaces...), decl.Namespace.Name)
			if err := a.collect(decl.Namespace.Body, next, depth+1); err != nil {
				return err
			}
		case decl.Const != nil:
			if err := a.collectConst(decl.Const, namespaces); err != nil {
				return err
			}
		case decl.Enum != nil:
			if err := a.collectEnum(decl.Enum, namespaces); err != nil {
				return err
			}
		case decl.Struct != nil:
			if err := a.collectStruct(decl.Struct, namespaces); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *analyzer) claim(qualifiedName string) error {
	if a.defined[qualifiedName] {
		return schema.DuplicateEntityError{QualifiedName: qualifiedName}
	}
	a.defined[qualifiedName] = true
	return nil
}

// collectConst type-checks a constant's value and discards it: constants
// are compile-time-only and never appear in the returned schema (§4.3.2).
func (a *analyzer) collectConst(c *lang.ConstDecl, namespaces []string) error {
	if err := checkIdentifier(c.Name); err != nil {
		return err
	}
	qualifiedName := schema.Qualify(namespaces, c.Name)
	if err := a.claim(qualifiedName); err != nil {
		return err
	}
	prim, upperBound, ok := resolvePrimitiveSpelling(c.Type.Name())
	if !ok {
		return schema.UnknownTypeError{TypeName: c.Type.Name()}
	}
	_, err := literalToScalar(c.Value, prim, upperBound, c.Name)
	return err
}

func (a *analyzer) collectEnum(e *lang.EnumDecl, namespaces []string) error {
	if err := checkIdentifier(e.Name); err != nil {
		return err
	}
	qualifiedName := schema.Qualify(namespaces, e.Name)
	if err := a.claim(qualifiedName); err != nil {
		return err
	}

	entity := &schema.Entity{
		Name:          e.Name,
		QualifiedName: qualifiedName,
		Namespaces:    namespaces,
		IsEnum:        true,
		IsEnumClass:   e.IsClass,
	}

	var next int64
	for _, m := range e.Members {
		if err := checkIdentifier(m.Name); err != nil {
			return err
		}
		val := next
		if m.Value != nil {
			val = *m.Value
		}
		next = val + 1
		entity.Definitions = append(entity.Definitions, schema.Field{
			Name:       m.Name,
			Type:       schema.Uint32,
			IsConstant: true,
			Value:      val,
		})
	}

	a.entities = append(a.entities, entity)
	return nil
}

func (a *analyzer) collectStruct(s *lang.StructDecl, namespaces []string) error {
	if err := checkIdentifier(s.Name); err != nil {
		return err
	}
	qualifiedName := schema.Qualify(namespaces, s.Name)
	if err := a.claim(qualifiedName); err != nil {
		return err
	}

	entity := &schema.Entity{
		Name:          s.Name,
		QualifiedName: qualifiedName,
		Namespaces:    namespaces,
		IsNakedStruct: s.Naked,
	}
	a.entities = append(a.entities, entity)
	a.structs = append(a.structs, rawStruct{entity: entity, fields: s.Fields})
	return nil
}

// resolveStruct rewrites a struct's raw field declarations into schema.Field
// values (§4.3.4), using the index built over every entity already
// collected so that forward references to structs declared later in the
// source (scenario F) resolve correctly.
func (a *analyzer) resolveStruct(raw rawStruct) error {
	for _, fd := range raw.fields {
		if err := checkIdentifier(fd.Name); err != nil {
			return err
		}
		field, err := a.resolveField(fd, raw.entity.Namespaces)
		if err != nil {
			return err
		}
		raw.entity.Definitions = append(raw.entity.Definitions, field)
	}
	return nil
}

func (a *analyzer) resolveField(fd *lang.FieldDecl, namespaces []string) (schema.Field, error) {
	field := schema.Field{Name: fd.Name}

	typeName := fd.Type.Name()
	if prim, upperBound, ok := resolvePrimitiveSpelling(typeName); ok {
		field.Type = prim
		field.UpperBound = upperBound
	} else {
		target, ok := a.index.Resolve(namespaces, typeName)
		if !ok {
			return schema.Field{}, schema.UnknownTypeError{TypeName: typeName}
		}
		if target.IsEnum {
			field.Type = schema.Uint32
			if fd.Default != nil {
				val, err := resolveEnumDefault(target, fd.Default)
				if err != nil {
					return schema.Field{}, err
				}
				field.DefaultValue = val
				field.HasDefault = true
			}
		} else {
			field.IsComplex = true
			field.ComplexType = target.QualifiedName
			if fd.Default != nil {
				return schema.Field{}, schema.ComplexDefaultForbiddenError{FieldName: fd.Name}
			}
		}
	}

	if fd.Array != nil {
		field.IsArray = true
		if fd.Array.Length != nil {
			n := int(fd.Array.Length.Eval())
			if fd.Array.Compact {
				field.ArrayUpperBound = n
			} else {
				field.ArrayLength = n
			}
		}
	}

	// Primitive/array default values (enum defaults were handled above;
	// complex struct defaults are forbidden above).
	if fd.Default != nil && !field.IsComplex && field.Type != 0 && !field.HasDefault {
		val, err := fieldDefaultValue(field, fd.Default, fd.Name)
		if err != nil {
			return schema.Field{}, err
		}
		field.DefaultValue = val
		field.HasDefault = true
	}

	return field, nil
}

func resolveEnumDefault(enumEntity *schema.Entity, lit *lang.Literal) (int64, error) {
	if lit.Ident != nil {
		for _, m := range enumEntity.Definitions {
			if m.Name == *lit.Ident {
				return m.Value, nil
			}
		}
		return 0, schema.UnknownEnumValueError{EnumName: enumEntity.QualifiedName, ValueName: *lit.Ident}
	}
	if lit.Number != nil {
		return int64(lit.Number.Float64()), nil
	}
	return 0, schema.InvalidDefaultValueError{FieldName: enumEntity.Name, Reason: "expected enum member name or integer"}
}

func fieldDefaultValue(field schema.Field, lit *lang.Literal, fieldName string) (any, error) {
	if field.IsArray {
		if lit.Array == nil {
			return nil, schema.InvalidDefaultValueError{FieldName: fieldName, Reason: "array field requires array default"}
		}
		values := make([]any, 0, len(lit.Array.Elements))
		for _, elemLit := range lit.Array.Elements {
			v, err := literalToScalar(elemLit, field.Type, field.UpperBound, fieldName)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	}
	return literalToScalar(lit, field.Type, field.UpperBound, fieldName)
}

func checkIdentifier(name string) error {
	if reservedWords[name] || schema.IsReservedSpelling(name) {
		return lang.SyntaxError{Message: "reserved word used as identifier: " + name}
	}
	return nil
}

// resolvePrimitiveSpelling additionally expands the short_string sugar
// (§4.3): wherever short_string is written, the field is modeled as
// type=string, upperBound=16.
func resolvePrimitiveSpelling(name string) (schema.PrimitiveType, int, bool) {
	if name == "short_string" {
		return schema.String, 16, true
	}
	p, ok := schema.LookupPrimitive(name)
	return p, 0, ok
}
