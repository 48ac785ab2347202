package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/nihilchroma/ecs"
)

type EntityInfo struct {
	ID             ecs.Entity
	ComponentTypes []string
	Pending        bool
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastCount     int
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
			lastCount:     -1,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

// CollectEntities lists every live entity with the short names of its components.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	types := storage.ComponentTypes()
	infos := make([]EntityInfo, 0, storage.EntityCount())

	for e := range storage.Entities() {
		info := EntityInfo{ID: e, Pending: storage.Pending(e)}
		for _, t := range types {
			if storage.HasComponent(e, t) {
				info.ComponentTypes = append(info.ComponentTypes, t.Name())
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// FilterEntities keeps entities whose id or component names contain text and,
// when store is set, that carry that component.
func FilterEntities(entities []EntityInfo, text, store string) []EntityInfo {
	if text == "" && store == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	needle := strings.ToLower(text)

	for _, entity := range entities {
		if store != "" && !containsString(entity.ComponentTypes, store) {
			continue
		}
		if needle != "" {
			id := fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation())
			components := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
			if !strings.Contains(id, needle) && !strings.Contains(components, needle) {
				continue
			}
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterStore = ""
		eb.currentPage = 0
	}
	if eb.filterStore != "" {
		imgui.Text("Store: " + eb.filterStore)
	}

	filtered := FilterEntities(eb.cache.entities, eb.filterText, eb.filterStore)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		start := min(eb.currentPage*eb.maxEntitiesPerPage, len(filtered))
		end := min(start+eb.maxEntitiesPerPage, len(filtered))

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation())
			if entity.Pending {
				label += " (deleting)"
			}
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.ComponentTypes)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded refreshes the listing whenever entities were created
// or purged, and every frame while the browser shows pending deletions.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	count := storage.EntityCount()
	if eb.cache.lastCount == count && !eb.hasPending() {
		return
	}
	eb.cache.lastCount = count
	eb.cache.entities = CollectEntities(storage)
	eb.sortEntities()
}

func (eb *EntityBrowserComponent) hasPending() bool {
	for _, e := range eb.cache.entities {
		if e.Pending {
			return true
		}
	}
	return false
}

func (eb *EntityBrowserComponent) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			less = len(a.ComponentTypes) < len(b.ComponentTypes)
		default:
			less = a.ID.Index() < b.ID.Index()
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

// FilterByStore narrows the listing to entities carrying the named component.
func (eb *EntityBrowserComponent) FilterByStore(name string) {
	eb.filterStore = name
	eb.currentPage = 0
}

func (eb *EntityBrowserComponent) Selected() ecs.Entity {
	return eb.selected
}
