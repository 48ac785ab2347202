package ecs

import (
	"reflect"
	"sort"
)

// StorageStats is a snapshot of storage occupancy.
type StorageStats struct {
	StoreCount       int
	TotalEntityCount int
	PendingDeletes   int
	SingletonCount   int
	StoreBreakdown   []StoreStats
	SingletonTypes   []string
}

// StoreStats describes a single component store.
type StoreStats struct {
	Type        reflect.Type
	EntityCount int
}

// CollectStats returns a snapshot of entity and store counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		StoreCount:       len(s.storeOrder),
		TotalEntityCount: s.pool.liveCount(),
		PendingDeletes:   len(s.pendingOrder),
		SingletonCount:   len(s.singletons),
		StoreBreakdown:   make([]StoreStats, 0, len(s.storeOrder)),
		SingletonTypes:   make([]string, 0, len(s.singletons)),
	}

	for _, store := range s.storeOrder {
		stats.StoreBreakdown = append(stats.StoreBreakdown, StoreStats{
			Type:        store.componentType(),
			EntityCount: store.Len(),
		})
	}

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
