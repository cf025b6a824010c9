package ecs

import (
	"sort"
)

// StorageStats is a snapshot of storage occupancy, used by the debug overlay
// and the soak report.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks every archetype and singleton. Breakdown entries are
// ordered by archetype id and singleton names alphabetically.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.archetypes {
		names := make([]string, len(archetype.types))
		for i, t := range archetype.types {
			names[i] = t.String()
		}
		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}
	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].ID < stats.ArchetypeBreakdown[j].ID
	})

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
