package jobposting

import (
	"time"

	"github.com/shopspring/decimal"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/params"
)

// EmploymentType follows the schema.org employmentType vocabulary.
type EmploymentType string

const (
	FullTime   EmploymentType = "FULL_TIME"
	PartTime   EmploymentType = "PART_TIME"
	Contract   EmploymentType = "CONTRACTOR"
	Temporary  EmploymentType = "TEMPORARY"
	Internship EmploymentType = "INTERN"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case FullTime, PartTime, Contract, Temporary, Internship:
		return true
	}
	return false
}

// JobPosting belongs to exactly one organization. Salary bounds are money,
// so they are decimals, not floats.
type JobPosting struct {
	ID             id.ID            `json:"identifier"`
	OrganizationID id.ID            `json:"organization"`
	Title          string           `json:"title"`
	Description    *string          `json:"description,omitempty"`
	EmploymentType EmploymentType   `json:"employmentType"`
	SalaryMin      *decimal.Decimal `json:"salaryMin,omitempty"`
	SalaryMax      *decimal.Decimal `json:"salaryMax,omitempty"`
	SalaryCurrency *string          `json:"salaryCurrency,omitempty"`
	ValidThrough   *time.Time       `json:"validThrough,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (j JobPosting) Validate() error {
	if j.Title == "" {
		return apperror.NewValidation("title is required")
	}
	if id.IsNil(j.OrganizationID) {
		return apperror.NewValidation("organization is required")
	}
	if !j.EmploymentType.Valid() {
		return apperror.NewValidation("invalid employment type").
			WithDetail("employmentType", string(j.EmploymentType))
	}
	if j.SalaryMin != nil && j.SalaryMin.IsNegative() {
		return apperror.NewValidation("salaryMin must not be negative")
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && j.SalaryMax.LessThan(*j.SalaryMin) {
		return apperror.NewValidation("salaryMax must not be less than salaryMin")
	}
	if (j.SalaryMin != nil || j.SalaryMax != nil) && j.SalaryCurrency == nil {
		return apperror.NewValidation("salaryCurrency is required when a salary bound is set")
	}
	return nil
}

func FilterableFields() []string {
	return []string{"organization_id", "employment_type", "title"}
}

func SortableFields() []string {
	return []string{"title", "salary_min", "valid_through", "created_at"}
}

type ListParams struct {
	Filters map[string]string
	Sort    params.Sort
	Limit   int
	Offset  int
}
