package schema

import (
	"fmt"
	"strings"

	"github.com/BaSui01/structcast/types"
)

// JSONTemplate renders a brace-delimited skeleton of an object type, one
// "{{field}}" placeholder per declared field. Callers substitute the
// placeholders when prompting a model for output matching the type. For
// non-object types the skeleton is empty braces.
func (t *StructuralType) JSONTemplate() string {
	var b strings.Builder
	b.WriteString("{\n")
	if t != nil && t.Kind == KindObject {
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "%q: {{%s}},\n", f.Name, f.Name)
		}
	}
	b.WriteString("}")
	return b.String()
}

// NestedField resolves a dot-separated path into a decoded value, so callers
// can feed a sub-field of one step's output into the next. Each path segment
// must index into an object.
func NestedField(path string, value any) (any, error) {
	current := value
	for _, segment := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, types.NewError(
				types.KindValidation,
				fmt.Sprintf("cannot descend into non-object value at %q", segment),
			).WithField(path)
		}
		current, ok = obj[segment]
		if !ok {
			return nil, types.NewError(
				types.KindValidation,
				fmt.Sprintf("field %q not present", segment),
			).WithField(path)
		}
	}
	return current, nil
}
