package dto

import (
	"time"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/organization"
)

// --- Response DTOs ---

// AddressResponse is the nested address group. All four fields are always
// present, null when unset.
type AddressResponse struct {
	AddressCountry  *string `json:"addressCountry"`
	AddressLocality *string `json:"addressLocality"`
	PostalCode      *string `json:"postalCode"`
	StreetAddress   *string `json:"streetAddress"`
}

// ContactPointResponse represents one contact point.
type ContactPointResponse struct {
	Identifier  string  `json:"identifier"`
	Email       *string `json:"email,omitempty"`
	Telephone   *string `json:"telephone,omitempty"`
	Name        *string `json:"name,omitempty"`
	ContactType string  `json:"contactType"`
}

// OrganizationResponse is the API shape of the aggregate. ContactPoint
// carries the first point alone for clients of the old single-contact field.
type OrganizationResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   *string                `json:"description,omitempty"`
	URL           *string                `json:"url,omitempty"`
	Email         *string                `json:"email,omitempty"`
	Telephone     *string                `json:"telephone,omitempty"`
	Address       AddressResponse        `json:"address"`
	ContactPoints []ContactPointResponse `json:"contactPoints"`
	ContactPoint  *ContactPointResponse  `json:"contactPoint,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

func fromContactPoint(p organization.ContactPoint) ContactPointResponse {
	return ContactPointResponse{
		Identifier:  p.ID.String(),
		Email:       p.Email,
		Telephone:   p.Telephone,
		Name:        p.Name,
		ContactType: p.ContactType,
	}
}

// FromOrganization creates OrganizationResponse from the aggregate.
func FromOrganization(org organization.Organization) OrganizationResponse {
	points := make([]ContactPointResponse, 0, len(org.ContactPoints))
	for _, p := range org.ContactPoints {
		points = append(points, fromContactPoint(p))
	}

	var first *ContactPointResponse
	if len(points) > 0 {
		first = &points[0]
	}

	return OrganizationResponse{
		ID:          org.ID.String(),
		Name:        org.Name,
		Description: org.Description,
		URL:         org.URL,
		Email:       org.Email,
		Telephone:   org.Telephone,
		Address: AddressResponse{
			AddressCountry:  org.Address.AddressCountry,
			AddressLocality: org.Address.AddressLocality,
			PostalCode:      org.Address.PostalCode,
			StreetAddress:   org.Address.StreetAddress,
		},
		ContactPoints: points,
		ContactPoint:  first,
		CreatedAt:     org.CreatedAt,
		UpdatedAt:     org.UpdatedAt,
	}
}

// ListOrganizationsResponse wraps a page of aggregates.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	Pagination    PageMeta               `json:"pagination"`
}

// --- Request DTOs ---

// AddressRequest mirrors AddressResponse for writes.
type AddressRequest struct {
	AddressCountry  *string `json:"addressCountry"`
	AddressLocality *string `json:"addressLocality"`
	PostalCode      *string `json:"postalCode"`
	StreetAddress   *string `json:"streetAddress"`
}

// ContactPointRequest represents a contact point in a write payload. An
// entry without an identifier is treated as new.
type ContactPointRequest struct {
	Identifier  *string `json:"identifier,omitempty"`
	Email       *string `json:"email,omitempty"`
	Telephone   *string `json:"telephone,omitempty"`
	Name        *string `json:"name,omitempty"`
	ContactType string  `json:"contactType" binding:"required"`
}

// SaveOrganizationRequest is the write payload for create and update.
type SaveOrganizationRequest struct {
	Name          string                `json:"name" binding:"required"`
	Description   *string               `json:"description,omitempty"`
	URL           *string               `json:"url,omitempty"`
	Email         *string               `json:"email,omitempty"`
	Telephone     *string               `json:"telephone,omitempty"`
	Address       *AddressRequest       `json:"address,omitempty"`
	ContactPoints []ContactPointRequest `json:"contactPoints,omitempty"`
}

// ToEntity converts the payload to the domain aggregate. A malformed
// contact-point identifier fails the whole request.
func (r *SaveOrganizationRequest) ToEntity() (organization.Organization, error) {
	org := organization.Organization{
		Name:        r.Name,
		Description: r.Description,
		URL:         r.URL,
		Email:       r.Email,
		Telephone:   r.Telephone,
	}

	if r.Address != nil {
		org.Address = organization.Address{
			AddressCountry:  r.Address.AddressCountry,
			AddressLocality: r.Address.AddressLocality,
			PostalCode:      r.Address.PostalCode,
			StreetAddress:   r.Address.StreetAddress,
		}
	}

	org.ContactPoints = make([]organization.ContactPoint, 0, len(r.ContactPoints))
	for i, p := range r.ContactPoints {
		point := organization.ContactPoint{
			Email:       p.Email,
			Telephone:   p.Telephone,
			Name:        p.Name,
			ContactType: p.ContactType,
		}
		if p.Identifier != nil && *p.Identifier != "" {
			pointID, err := id.Parse(*p.Identifier)
			if err != nil {
				return organization.Organization{}, apperror.NewValidation("invalid contact point identifier").
					WithDetail("index", i).
					WithDetail("identifier", *p.Identifier)
			}
			point.ID = pointID
		}
		org.ContactPoints = append(org.ContactPoints, point)
	}

	return org, nil
}
