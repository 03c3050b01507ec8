package organization

import (
	"context"
	"fmt"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/core/tx"
	"jobdesk/internal/domain"
	"jobdesk/internal/domain/audit"
	"jobdesk/pkg/logger"
)

const entityName = "organization"

// Service is the public facade over the organization aggregate. Every
// operation converts persistence failures into classified apperror values;
// callers never see raw driver errors.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a new organization service.
func NewService(repo Repository, txManager tx.Manager, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     recorder,
	}
}

// List retrieves a page of aggregates. Filters and sort are expected to be
// sanitized already; the repository whitelists them again before building SQL.
func (s *Service) List(ctx context.Context, p ListParams) (domain.ListResult[Organization], error) {
	result, err := s.repo.List(ctx, p)
	if err != nil {
		return domain.ListResult[Organization]{}, s.normalizeErr(err)
	}
	return result, nil
}

// GetByID retrieves one aggregate.
func (s *Service) GetByID(ctx context.Context, orgID id.ID) (Organization, error) {
	org, err := s.repo.GetByID(ctx, orgID)
	if err != nil {
		return Organization{}, s.normalizeErr(err)
	}
	return org, nil
}

// Create persists a new aggregate atomically: the organization row and all
// its contact points commit together or not at all. Returns the stored
// aggregate re-read after commit.
func (s *Service) Create(ctx context.Context, org Organization) (Organization, error) {
	if err := org.Validate(ctx); err != nil {
		return Organization{}, err
	}

	org.ID = id.New()
	for i := range org.ContactPoints {
		org.ContactPoints[i].ID = id.New()
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Insert(ctx, org); err != nil {
			return fmt.Errorf("insert organization: %w", err)
		}
		if err := s.repo.InsertContactPoints(ctx, org.ID, org.ContactPoints); err != nil {
			return fmt.Errorf("insert contact points: %w", err)
		}
		return s.audit.Record(ctx, entityName, org.ID, audit.ActionCreate, org)
	})
	if err != nil {
		return Organization{}, s.normalizeErr(err)
	}

	logger.Info(ctx, "organization created", "id", org.ID, "contact_points", len(org.ContactPoints))

	return s.GetByID(ctx, org.ID)
}

// Update rewrites the aggregate atomically. The stored contact-point set is
// reconciled against the payload: points with a known identifier are updated
// in place, points without one are inserted, and stored points the payload
// no longer references are deleted. A payload identifier missing from the
// stored set fails the whole operation.
func (s *Service) Update(ctx context.Context, orgID id.ID, org Organization) (Organization, error) {
	if err := org.Validate(ctx); err != nil {
		return Organization{}, err
	}
	org.ID = orgID

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateRow(ctx, org); err != nil {
			return err
		}

		snapshot, err := s.repo.ContactPointIDs(ctx, orgID)
		if err != nil {
			return fmt.Errorf("read contact point snapshot: %w", err)
		}

		plan, err := BuildReconcilePlan(snapshot, org.ContactPoints)
		if err != nil {
			return err
		}

		for _, point := range plan.Updates {
			if err := s.repo.UpdateContactPoint(ctx, orgID, point); err != nil {
				return fmt.Errorf("update contact point %s: %w", point.ID, err)
			}
		}

		for i := range plan.Inserts {
			plan.Inserts[i].ID = id.New()
		}
		if err := s.repo.InsertContactPoints(ctx, orgID, plan.Inserts); err != nil {
			return fmt.Errorf("insert contact points: %w", err)
		}

		if err := s.repo.DeleteContactPoints(ctx, orgID, plan.DeleteIDs); err != nil {
			return fmt.Errorf("delete contact points: %w", err)
		}

		return s.audit.Record(ctx, entityName, orgID, audit.ActionUpdate, org)
	})
	if err != nil {
		return Organization{}, s.normalizeErr(err)
	}

	logger.Info(ctx, "organization updated", "id", orgID)

	return s.GetByID(ctx, orgID)
}

// Delete removes the aggregate. Deleting an id that does not exist is not an
// error; the boolean reports whether anything matched.
func (s *Service) Delete(ctx context.Context, orgID id.ID) (bool, error) {
	var deleted bool
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Delete(ctx, orgID)
		if err != nil {
			return err
		}
		if !deleted {
			return nil
		}
		return s.audit.Record(ctx, entityName, orgID, audit.ActionDelete, nil)
	})
	if err != nil {
		return false, s.normalizeErr(err)
	}

	if deleted {
		logger.Info(ctx, "organization deleted", "id", orgID)
	}
	return deleted, nil
}

// normalizeErr keeps classified errors intact and wraps everything else as
// a persistence failure.
func (s *Service) normalizeErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewDatabase(err).WithDetail("entity", entityName)
}
