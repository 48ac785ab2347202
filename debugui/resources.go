package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/nihilchroma/ecs"
)

func NewResourcesComponent() ResourcesComponent {
	return ResourcesComponent{}
}

// Render shows every singleton resource with editable fields.
func (rc *ResourcesComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Resources", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	singletons := storage.Singletons()
	types := make([]reflect.Type, 0, len(singletons))
	for t := range singletons {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })

	for _, t := range types {
		if !imgui.TreeNodeStr(t.String()) {
			continue
		}
		val := reflect.ValueOf(singletons[t])
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}
		switch {
		case !val.CanAddr():
			imgui.Text(fmt.Sprintf("%+v", val.Interface()))
		case val.Kind() == reflect.Struct:
			renderFields(val)
		default:
			renderField(t.Name(), val)
		}
		imgui.TreePop()
	}
}
