package schema

import (
	"fmt"
	"sort"

	"github.com/BaSui01/structcast/types"
)

// TypeKind enumerates the variants of a StructuralType.
type TypeKind string

const (
	KindString  TypeKind = "string"
	KindInteger TypeKind = "integer"
	KindFloat   TypeKind = "float"
	KindBoolean TypeKind = "boolean"
	// KindNull is nullable-any: the schema declares no inner type for null,
	// so any value, including null, is accepted.
	KindNull   TypeKind = "null"
	KindArray  TypeKind = "array"
	KindObject TypeKind = "object"
	// KindAny is the untyped fallback for an object schema with no declared
	// properties or an array schema with no declared item schema.
	KindAny TypeKind = "any"
)

// StructuralType is a compiled, immutable description of an expected value
// shape. It is built once at configuration time and shared read-only.
type StructuralType struct {
	Kind TypeKind

	// Elem is the element type of an array. Set only for KindArray.
	Elem *StructuralType

	// Fields holds the declared fields of an object in a fixed order.
	// Set only for KindObject. Field names are unique.
	Fields []Field
}

// Field describes one declared field of an object type.
type Field struct {
	Name        string
	Type        *StructuralType
	Required    bool
	Description string
	Examples    []any
}

// Field returns the declared field with the given name.
func (t *StructuralType) Field(name string) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// Compile turns a schema document into a StructuralType tree.
//
// Mapping: string/integer/boolean map to their scalar kinds, number maps to
// KindFloat, null maps to nullable-any, array maps to KindArray of the
// compiled items schema (KindAny when items is absent), object maps to
// KindObject with required flags taken from the document's required list
// (KindAny when no properties are declared). A document with no type token
// is treated as an object. Any other token fails with an unsupported_type
// error carrying the offending token; there is no partial compilation.
//
// Compile is a pure function and the result is cacheable by the caller.
func Compile(doc *JSONSchema) (*StructuralType, error) {
	return compile(doc, nil)
}

func compile(doc *JSONSchema, path []*JSONSchema) (*StructuralType, error) {
	if doc == nil {
		return &StructuralType{Kind: KindAny}, nil
	}

	// Cyclic references cannot occur in a JSON-decoded document but can in a
	// hand-built one; fail instead of recursing forever.
	for _, seen := range path {
		if seen == doc {
			return nil, types.NewError(types.KindUnsupportedType, "cyclic schema reference")
		}
	}
	path = append(path, doc)

	switch doc.Type {
	case TypeString:
		return &StructuralType{Kind: KindString}, nil
	case TypeInteger:
		return &StructuralType{Kind: KindInteger}, nil
	case TypeNumber:
		return &StructuralType{Kind: KindFloat}, nil
	case TypeBoolean:
		return &StructuralType{Kind: KindBoolean}, nil
	case TypeNull:
		return &StructuralType{Kind: KindNull}, nil
	case TypeArray:
		if doc.Items == nil {
			return &StructuralType{Kind: KindAny}, nil
		}
		elem, err := compile(doc.Items, path)
		if err != nil {
			return nil, err
		}
		return &StructuralType{Kind: KindArray, Elem: elem}, nil
	case TypeObject, "":
		return compileObject(doc, path)
	default:
		return nil, types.NewError(
			types.KindUnsupportedType,
			fmt.Sprintf("unsupported JSON schema type: %q", doc.Type),
		).WithRaw(string(doc.Type))
	}
}

func compileObject(doc *JSONSchema, path []*JSONSchema) (*StructuralType, error) {
	if len(doc.Properties) == 0 {
		return &StructuralType{Kind: KindAny}, nil
	}

	// The document's property map carries no order, so fields are sorted by
	// name to keep compilation deterministic.
	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop := doc.Properties[name]
		ft, err := compile(prop, path)
		if err != nil {
			return nil, err
		}
		field := Field{
			Name:     name,
			Type:     ft,
			Required: doc.IsRequired(name),
		}
		if prop != nil {
			field.Description = prop.Description
			field.Examples = prop.Examples
		}
		fields = append(fields, field)
	}
	return &StructuralType{Kind: KindObject, Fields: fields}, nil
}
