package board_repo

import (
	"time"

	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/organization"
)

// organizationRow is the storage shape of an organization: the address
// group flattened into four columns, contact points materialized by the
// read queries as a JSON array column.
type organizationRow struct {
	ID              id.ID     `db:"id"`
	Name            string    `db:"name"`
	Description     *string   `db:"description"`
	URL             *string   `db:"url"`
	Email           *string   `db:"email"`
	Telephone       *string   `db:"telephone"`
	AddressCountry  *string   `db:"address_country"`
	AddressLocality *string   `db:"address_locality"`
	PostalCode      *string   `db:"postal_code"`
	StreetAddress   *string   `db:"street_address"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	// ContactPoints is computed by the read queries, never written.
	ContactPoints []organization.ContactPoint `db:"contact_points"`
}

// rowToOrganization lifts the flat row into the nested API shape. The
// address group is always present, even when every field is null.
func rowToOrganization(row organizationRow) organization.Organization {
	return organization.Organization{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		URL:         row.URL,
		Email:       row.Email,
		Telephone:   row.Telephone,
		Address: organization.Address{
			AddressCountry:  row.AddressCountry,
			AddressLocality: row.AddressLocality,
			PostalCode:      row.PostalCode,
			StreetAddress:   row.StreetAddress,
		},
		ContactPoints: row.ContactPoints,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

// organizationToRow is the inverse mapping: the address group is flattened
// onto the row and the contact points are handed back separately for the
// aggregate writer. Pure; round-trip safe on the address group.
func organizationToRow(org organization.Organization) (organizationRow, []organization.ContactPoint) {
	row := organizationRow{
		ID:              org.ID,
		Name:            org.Name,
		Description:     org.Description,
		URL:             org.URL,
		Email:           org.Email,
		Telephone:       org.Telephone,
		AddressCountry:  org.Address.AddressCountry,
		AddressLocality: org.Address.AddressLocality,
		PostalCode:      org.Address.PostalCode,
		StreetAddress:   org.Address.StreetAddress,
		CreatedAt:       org.CreatedAt,
		UpdatedAt:       org.UpdatedAt,
	}
	return row, org.ContactPoints
}
