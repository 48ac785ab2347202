package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/nihilchroma/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of selected and edits them in place.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.selected = selected

	if ci.selected.IsZero() {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Alive(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %d:%d no longer exists", ci.selected.Index(), ci.selected.Generation()))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (generation %d)", ci.selected.Index(), ci.selected.Generation()))
	if storage.Pending(ci.selected) {
		imgui.Text("Queued for deletion")
	} else if imgui.Button("Delete") {
		storage.Delete(ci.selected)
	}
	imgui.Separator()

	for _, compType := range storage.ComponentTypes() {
		component := storage.GetComponent(ci.selected, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component).Elem()
			if val.Kind() == reflect.Struct {
				renderFields(val)
			} else {
				renderField(compType.Name(), val)
			}
			imgui.TreePop()
		}
	}
}

func renderFields(val reflect.Value) {
	fields := inspectorFields.Fields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(no fields)")
		return
	}
	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.Deref {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderField(field.Name, fieldVal)
	}
}

// renderField draws an editor for val and writes edits straight back into it.
// val must be addressable.
func renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	id := fmt.Sprintf("##%s%p", name, val.Addr().Interface())

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderFields(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
		iter := val.MapRange()
		for iter.Next() {
			imgui.BulletText(fmt.Sprintf("%v: %v", iter.Key().Interface(), iter.Value().Interface()))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
