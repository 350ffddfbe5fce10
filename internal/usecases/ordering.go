package usecases

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// OrderRef is one sibling in the target (container, partition) list:
// its id and its effective order key (order falling back to createdAt).
type OrderRef struct {
	ID  uuid.UUID
	Key float64
}

// ComputeOrder assigns a fractional sort key for an item dropped into a
// partition, so a single move never rewrites the rest of the column.
//
// With no beforeID the item lands at the end: last key + 1, or the
// current time for an empty column. With a beforeID it lands just ahead
// of that sibling: the midpoint of the two surrounding keys, or
// beforeKey - 1 when the target is first. A beforeID that matches no
// current sibling (stale client state, concurrent deletion) degrades to
// the end-of-column branch.
//
// The moving item itself must not be in siblings.
func ComputeOrder(siblings []OrderRef, beforeID uuid.UUID, now time.Time) float64 {
	sorted := make([]OrderRef, len(siblings))
	copy(sorted, siblings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})

	if beforeID != uuid.Nil {
		for i, ref := range sorted {
			if ref.ID != beforeID {
				continue
			}
			if i > 0 {
				return (sorted[i-1].Key + ref.Key) / 2
			}
			return ref.Key - 1
		}
	}

	if len(sorted) == 0 {
		return float64(now.UnixMilli())
	}
	return sorted[len(sorted)-1].Key + 1
}
