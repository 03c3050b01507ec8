package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/jobposting"
)

// --- Response DTOs ---

type JobPostingResponse struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organizationId"`
	Title          string           `json:"title"`
	Description    *string          `json:"description,omitempty"`
	EmploymentType string           `json:"employmentType"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty"`
	SalaryCurrency *string          `json:"salaryCurrency,omitempty"`
	ValidThrough   *time.Time       `json:"validThrough,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func FromJobPosting(p jobposting.JobPosting) JobPostingResponse {
	return JobPostingResponse{
		ID:             p.ID.String(),
		OrganizationID: p.OrganizationID.String(),
		Title:          p.Title,
		Description:    p.Description,
		EmploymentType: string(p.EmploymentType),
		SalaryMin:      p.SalaryMin,
		SalaryMax:      p.SalaryMax,
		SalaryCurrency: p.SalaryCurrency,
		ValidThrough:   p.ValidThrough,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type ListJobPostingsResponse struct {
	JobPostings []JobPostingResponse `json:"jobPostings"`
	Pagination  PageMeta             `json:"pagination"`
}

// --- Request DTOs ---

type SaveJobPostingRequest struct {
	OrganizationID string           `json:"organizationId" binding:"required"`
	Title          string           `json:"title" binding:"required"`
	Description    *string          `json:"description,omitempty"`
	EmploymentType string           `json:"employmentType" binding:"required"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty"`
	SalaryCurrency *string          `json:"salaryCurrency,omitempty"`
	ValidThrough   *time.Time       `json:"validThrough,omitempty"`
}

func (r *SaveJobPostingRequest) ToEntity() (jobposting.JobPosting, error) {
	orgID, err := id.Parse(r.OrganizationID)
	if err != nil {
		return jobposting.JobPosting{}, apperror.NewValidation("invalid organization id").
			WithDetail("organizationId", r.OrganizationID)
	}
	return jobposting.JobPosting{
		OrganizationID: orgID,
		Title:          r.Title,
		Description:    r.Description,
		EmploymentType: jobposting.EmploymentType(r.EmploymentType),
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
		SalaryCurrency: r.SalaryCurrency,
		ValidThrough:   r.ValidThrough,
	}, nil
}
