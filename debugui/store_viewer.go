package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/nihilchroma/ecs"
)

func NewStoreViewerComponent() StoreViewerComponent {
	return StoreViewerComponent{
		sortColumn:    1,
		sortAscending: false,
	}
}

// SortStores orders stores by name (column 0) or entity count (column 1).
func SortStores(stores []ecs.StoreStats, column int, ascending bool) {
	sort.SliceStable(stores, func(i, j int) bool {
		a, b := stores[i], stores[j]
		if !ascending {
			a, b = b, a
		}
		if column == 0 {
			return a.Type.Name() < b.Type.Name()
		}
		return a.EntityCount < b.EntityCount
	})
}

// Render lists every component store. Selecting a row returns its component
// name so the entity browser can filter on it; otherwise it returns "".
func (sv *StoreViewerComponent) Render(storage *ecs.Storage) string {
	if !imgui.BeginV("Stores", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ""
	}
	defer imgui.End()

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("%d stores, %d entities, %d pending deletion",
		stats.StoreCount, stats.TotalEntityCount, stats.PendingDeletes))

	picked := ""
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("StoreTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortStores(stats.StoreBreakdown, sv.sortColumn, sv.sortAscending)

		for _, store := range stats.StoreBreakdown {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(store.Type.String(), false, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				picked = store.Type.Name()
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", store.EntityCount))
		}

		imgui.EndTable()
	}

	return picked
}
