package jobposting

import (
	"context"

	"jobdesk/internal/core/id"
	"jobdesk/internal/domain"
)

// Repository is the storage port for job postings.
type Repository interface {
	List(ctx context.Context, p ListParams) (domain.ListResult[JobPosting], error)
	GetByID(ctx context.Context, postingID id.ID) (JobPosting, error)
	Insert(ctx context.Context, posting JobPosting) error
	UpdateRow(ctx context.Context, posting JobPosting) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, postingID id.ID) (bool, error)
}
