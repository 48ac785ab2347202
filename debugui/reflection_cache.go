package debugui

import "reflect"

// Field is one editable field of a component struct.
type Field struct {
	Name  string
	Index int
	Deref bool // pointer field; the inspector edits the pointee
}

// FieldCache remembers the editable fields of each component type.
// Only used from the imgui pass; not safe for concurrent use.
type FieldCache map[reflect.Type][]Field

// Fields returns the exported, non-promoted fields of t. Non-struct types have none.
func (c FieldCache) Fields(t reflect.Type) []Field {
	if fields, ok := c[t]; ok {
		return fields
	}

	var fields []Field
	if t.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(t) {
			if len(f.Index) != 1 || !f.IsExported() {
				continue
			}
			fields = append(fields, Field{
				Name:  f.Name,
				Index: f.Index[0],
				Deref: f.Type.Kind() == reflect.Pointer,
			})
		}
	}

	c[t] = fields
	return fields
}

var inspectorFields = FieldCache{}
