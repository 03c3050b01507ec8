package organization

import (
	"context"

	"jobdesk/internal/core/id"
	"jobdesk/internal/domain"
)

// Repository defines organization storage. Read operations return the full
// aggregate (contact points embedded, ordered by contact type); write
// operations are row-level primitives the service composes inside one
// transaction.
type Repository interface {
	// List retrieves aggregates with filtering, sorting and pagination.
	List(ctx context.Context, p ListParams) (domain.ListResult[Organization], error)

	// GetByID retrieves one aggregate; not-found is a classified error.
	GetByID(ctx context.Context, orgID id.ID) (Organization, error)

	// Insert writes the flat organization row.
	Insert(ctx context.Context, org Organization) error

	// UpdateRow updates the flat organization row; not-found when no row matched.
	UpdateRow(ctx context.Context, org Organization) error

	// Delete removes the row (contact points cascade). Reports whether a row existed.
	Delete(ctx context.Context, orgID id.ID) (bool, error)

	// ContactPointIDs returns the stored contact-point ids for one organization.
	ContactPointIDs(ctx context.Context, orgID id.ID) ([]id.ID, error)

	// InsertContactPoints bulk-inserts points stamped with orgID.
	InsertContactPoints(ctx context.Context, orgID id.ID, points []ContactPoint) error

	// UpdateContactPoint updates every field of one point except its identifier.
	UpdateContactPoint(ctx context.Context, orgID id.ID, point ContactPoint) error

	// DeleteContactPoints removes the given points of one organization.
	DeleteContactPoints(ctx context.Context, orgID id.ID, ids []id.ID) error
}
