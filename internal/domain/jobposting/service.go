package jobposting

import (
	"context"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/core/tx"
	"jobdesk/internal/domain"
	"jobdesk/internal/domain/audit"
	"jobdesk/internal/domain/organization"
	"jobdesk/pkg/logger"
)

const entityName = "job_posting"

// Service manages job postings. Writes verify that the referenced
// organization exists before touching the posting row.
type Service struct {
	repo      Repository
	orgs      *organization.Service
	txManager tx.Manager
	audit     audit.Recorder
}

func NewService(repo Repository, orgs *organization.Service, txManager tx.Manager, recorder audit.Recorder) *Service {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		orgs:      orgs,
		txManager: txManager,
		audit:     recorder,
	}
}

func (s *Service) List(ctx context.Context, p ListParams) (domain.ListResult[JobPosting], error) {
	result, err := s.repo.List(ctx, p)
	if err != nil {
		return domain.ListResult[JobPosting]{}, s.normalizeErr(err)
	}
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, postingID id.ID) (JobPosting, error) {
	posting, err := s.repo.GetByID(ctx, postingID)
	if err != nil {
		return JobPosting{}, s.normalizeErr(err)
	}
	return posting, nil
}

func (s *Service) Create(ctx context.Context, posting JobPosting) (JobPosting, error) {
	if err := posting.Validate(); err != nil {
		return JobPosting{}, err
	}

	posting.ID = id.New()

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.orgs.GetByID(ctx, posting.OrganizationID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("organization does not exist").
					WithDetail("organization", posting.OrganizationID.String())
			}
			return err
		}
		if err := s.repo.Insert(ctx, posting); err != nil {
			return err
		}
		return s.audit.Record(ctx, entityName, posting.ID, audit.ActionCreate, posting)
	})
	if err != nil {
		return JobPosting{}, s.normalizeErr(err)
	}

	logger.Info(ctx, "job posting created", "id", posting.ID, "organization", posting.OrganizationID)

	return s.GetByID(ctx, posting.ID)
}

func (s *Service) Update(ctx context.Context, postingID id.ID, posting JobPosting) (JobPosting, error) {
	if err := posting.Validate(); err != nil {
		return JobPosting{}, err
	}
	posting.ID = postingID

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateRow(ctx, posting); err != nil {
			return err
		}
		return s.audit.Record(ctx, entityName, postingID, audit.ActionUpdate, posting)
	})
	if err != nil {
		return JobPosting{}, s.normalizeErr(err)
	}

	logger.Info(ctx, "job posting updated", "id", postingID)

	return s.GetByID(ctx, postingID)
}

func (s *Service) Delete(ctx context.Context, postingID id.ID) (bool, error) {
	var deleted bool
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.Delete(ctx, postingID)
		if err != nil {
			return err
		}
		if !deleted {
			return nil
		}
		return s.audit.Record(ctx, entityName, postingID, audit.ActionDelete, nil)
	})
	if err != nil {
		return false, s.normalizeErr(err)
	}

	if deleted {
		logger.Info(ctx, "job posting deleted", "id", postingID)
	}
	return deleted, nil
}

func (s *Service) normalizeErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewDatabase(err).WithDetail("entity", entityName)
}
