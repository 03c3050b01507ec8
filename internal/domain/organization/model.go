// Package organization provides the Organization aggregate: an organization
// together with its owned contact points, treated as one consistency unit.
package organization

import (
	"context"
	"time"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/params"
)

// Address is the nested address group of the API shape. The group is always
// present on an organization even when every field is null; storage keeps
// the four fields flat on the organization row.
type Address struct {
	AddressCountry  *string `json:"addressCountry"`
	AddressLocality *string `json:"addressLocality"`
	PostalCode      *string `json:"postalCode"`
	StreetAddress   *string `json:"streetAddress"`
}

// ContactPoint belongs to exactly one organization. In API payloads a zero
// ID means "new point"; identifiers are never client-assigned.
type ContactPoint struct {
	ID          id.ID   `json:"identifier"`
	Email       *string `json:"email"`
	Telephone   *string `json:"telephone"`
	Name        *string `json:"name"`
	ContactType string  `json:"contactType"`
}

// HasIdentifier reports whether the point references a stored row.
func (p ContactPoint) HasIdentifier() bool {
	return !id.IsNil(p.ID)
}

// Organization is the API-shaped aggregate root.
type Organization struct {
	ID            id.ID          `json:"id"`
	Name          string         `json:"name"`
	Description   *string        `json:"description,omitempty"`
	URL           *string        `json:"url,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Telephone     *string        `json:"telephone,omitempty"`
	Address       Address        `json:"address"`
	ContactPoints []ContactPoint `json:"contactPoints"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Validate checks aggregate invariants that need no database access.
func (o *Organization) Validate(ctx context.Context) error {
	if o.Name == "" {
		return apperror.NewValidation("organization name is required")
	}
	for i, p := range o.ContactPoints {
		if p.ContactType == "" {
			return apperror.NewValidation("contact point requires a contact type").
				WithDetail("index", i)
		}
	}
	return nil
}

// FilterableFields returns the whitelist of columns a listing may filter on.
// Callers pass it explicitly into params.SanitizeFilters.
func FilterableFields() []string {
	return []string{"name", "email", "address_country", "address_locality", "postal_code"}
}

// SortableFields returns the whitelist of columns a listing may sort on.
func SortableFields() []string {
	return []string{"name", "address_locality", "postal_code", "created_at"}
}

// ListParams carries sanitized listing parameters into the repository.
type ListParams struct {
	Filters map[string]string
	Sort    params.Sort
	Limit   int
	Offset  int
}
