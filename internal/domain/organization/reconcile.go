package organization

import (
	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
)

// ReconcilePlan is the result of diffing a desired contact-point list
// against the stored snapshot of an organization. Executing Updates,
// Inserts and DeleteIDs within one transaction makes storage equal the
// desired list exactly.
type ReconcilePlan struct {
	// Updates are payload points whose identifier matched the snapshot.
	Updates []ContactPoint

	// Inserts are payload points without an identifier.
	Inserts []ContactPoint

	// DeleteIDs are snapshot ids no payload point references.
	DeleteIDs []id.ID
}

// BuildReconcilePlan partitions desired contact points against the stored
// snapshot. A payload point carrying an identifier that is not in the
// snapshot is rejected: it either references another organization's point
// or one deleted concurrently, and silently dropping it would desync the
// client.
func BuildReconcilePlan(snapshot []id.ID, desired []ContactPoint) (ReconcilePlan, error) {
	stored := make(map[id.ID]struct{}, len(snapshot))
	for _, cpID := range snapshot {
		stored[cpID] = struct{}{}
	}

	var plan ReconcilePlan
	for _, point := range desired {
		if !point.HasIdentifier() {
			plan.Inserts = append(plan.Inserts, point)
			continue
		}
		if _, ok := stored[point.ID]; !ok {
			return ReconcilePlan{}, apperror.NewValidation("unknown contact point identifier").
				WithDetail("identifier", point.ID.String())
		}
		plan.Updates = append(plan.Updates, point)
	}

	plan.DeleteIDs = ComputeDeletionSet(snapshot, desired)
	return plan, nil
}

// ComputeDeletionSet returns idsInDB filtered to those no desired point
// references. Pure set difference: an empty snapshot deletes nothing, an
// empty desired list deletes everything. Identifiers referenced by the
// payload but absent from the snapshot are irrelevant here.
func ComputeDeletionSet(idsInDB []id.ID, desired []ContactPoint) []id.ID {
	referenced := make(map[id.ID]struct{}, len(desired))
	for _, point := range desired {
		if point.HasIdentifier() {
			referenced[point.ID] = struct{}{}
		}
	}

	var toDelete []id.ID
	for _, cpID := range idsInDB {
		if _, ok := referenced[cpID]; !ok {
			toDelete = append(toDelete, cpID)
		}
	}
	return toDelete
}
