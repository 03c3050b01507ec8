package jobposting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
)

func validPosting() JobPosting {
	currency := "EUR"
	min := decimal.NewFromInt(52000)
	max := decimal.NewFromInt(68000)
	return JobPosting{
		OrganizationID: id.New(),
		Title:          "Backend Engineer",
		EmploymentType: FullTime,
		SalaryMin:      &min,
		SalaryMax:      &max,
		SalaryCurrency: &currency,
	}
}

func TestJobPostingValidate(t *testing.T) {
	t.Run("valid posting passes", func(t *testing.T) {
		assert.NoError(t, validPosting().Validate())
	})

	t.Run("title required", func(t *testing.T) {
		p := validPosting()
		p.Title = ""
		assert.True(t, apperror.IsValidation(p.Validate()))
	})

	t.Run("organization required", func(t *testing.T) {
		p := validPosting()
		p.OrganizationID = id.Nil()
		assert.True(t, apperror.IsValidation(p.Validate()))
	})

	t.Run("employment type whitelisted", func(t *testing.T) {
		p := validPosting()
		p.EmploymentType = "GIG"
		err := p.Validate()
		assert.True(t, apperror.IsValidation(err))

		appErr, ok := apperror.AsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "GIG", appErr.Details["employmentType"])
	})

	t.Run("salary bounds ordered", func(t *testing.T) {
		p := validPosting()
		min := decimal.NewFromInt(70000)
		p.SalaryMin = &min
		assert.True(t, apperror.IsValidation(p.Validate()))
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		p := validPosting()
		min := decimal.NewFromInt(-1)
		p.SalaryMin = &min
		assert.True(t, apperror.IsValidation(p.Validate()))
	})

	t.Run("currency required with salary", func(t *testing.T) {
		p := validPosting()
		p.SalaryCurrency = nil
		assert.True(t, apperror.IsValidation(p.Validate()))
	})

	t.Run("salary optional", func(t *testing.T) {
		p := validPosting()
		p.SalaryMin, p.SalaryMax, p.SalaryCurrency = nil, nil, nil
		assert.NoError(t, p.Validate())
	})
}
