package board_repo

import (
	"strings"
	"testing"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain/organization"
	"jobdesk/internal/domain/params"
)

func TestListQuery_FilterSemantics(t *testing.T) {
	repo := NewOrganizationRepo(nil)

	tests := []struct {
		name       string
		filters    map[string]string
		wantClause string
		wantArgs   []any
	}{
		{
			name:       "name matches substring",
			filters:    map[string]string{"name": "Lead"},
			wantClause: "name LIKE $1",
			wantArgs:   []any{"%Lead%"},
		},
		{
			name:       "locality matches prefix",
			filters:    map[string]string{"address_locality": "Ber"},
			wantClause: "address_locality LIKE $1",
			wantArgs:   []any{"Ber%"},
		},
		{
			name:       "postal code matches prefix",
			filters:    map[string]string{"postal_code": "14"},
			wantClause: "postal_code LIKE $1",
			wantArgs:   []any{"14%"},
		},
		{
			name:       "country matches exactly",
			filters:    map[string]string{"address_country": "DE"},
			wantClause: "address_country = $1",
			wantArgs:   []any{"DE"},
		},
		{
			name:       "email matches exactly",
			filters:    map[string]string{"email": "hr@acme.test"},
			wantClause: "email = $1",
			wantArgs:   []any{"hr@acme.test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.listQuery(organization.ListParams{Filters: tt.filters})
			if err != nil {
				t.Fatalf("listQuery failed: %v", err)
			}

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if !strings.Contains(sql, tt.wantClause) {
				t.Errorf("SQL missing clause %q\ngot: %s", tt.wantClause, sql)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("Args count mismatch\nwant: %d\ngot:  %d", len(tt.wantArgs), len(args))
			}
			if args[0] != tt.wantArgs[0] {
				t.Errorf("Args mismatch\nwant: %v\ngot:  %v", tt.wantArgs[0], args[0])
			}
		})
	}
}

func TestListQuery_RejectsUnknownColumn(t *testing.T) {
	repo := NewOrganizationRepo(nil)

	_, err := repo.listQuery(organization.ListParams{
		Filters: map[string]string{"description; DROP TABLE organizations": "x"},
	})
	if err == nil {
		t.Fatal("expected error for unknown filter column")
	}
}

func TestListQuery_SortAndPagination(t *testing.T) {
	repo := NewOrganizationRepo(nil)

	q, err := repo.listQuery(organization.ListParams{})
	if err != nil {
		t.Fatalf("listQuery failed: %v", err)
	}
	q, err = repo.applySort(q, params.Sort{Field: "name", Direction: "DESC"})
	if err != nil {
		t.Fatalf("applySort failed: %v", err)
	}
	q = q.Limit(10).Offset(20)

	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	for _, clause := range []string{"ORDER BY name DESC", "LIMIT 10", "OFFSET 20"} {
		if !strings.Contains(sql, clause) {
			t.Errorf("SQL missing clause %q\ngot: %s", clause, sql)
		}
	}
}

func TestApplySort_RejectsUnknownColumn(t *testing.T) {
	repo := NewOrganizationRepo(nil)

	q, err := repo.listQuery(organization.ListParams{})
	if err != nil {
		t.Fatalf("listQuery failed: %v", err)
	}

	tests := []struct {
		name string
		sort params.Sort
	}{
		{"non-sortable column", params.Sort{Field: "email", Direction: "ASC"}},
		{"injection attempt", params.Sort{Field: "name; DROP TABLE organizations", Direction: "ASC"}},
		{"bogus direction", params.Sort{Field: "name", Direction: "SIDEWAYS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.applySort(q, tt.sort); !apperror.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	// A zero sort passes through with no ORDER BY at all.
	q, err = repo.applySort(q, params.Sort{})
	if err != nil {
		t.Fatalf("applySort failed on zero sort: %v", err)
	}
	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}
	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("unexpected ORDER BY in SQL: %s", sql)
	}
}

func TestSelectQuery_ContactPointAggregation(t *testing.T) {
	repo := NewOrganizationRepo(nil)

	sql, _, err := repo.selectQuery().ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	// The JSON array must come back ordered and never null.
	for _, fragment := range []string{
		"json_agg",
		"ORDER BY cp.contact_type ASC",
		"COALESCE",
		"'[]'::json",
		"cp.organization_id = organizations.id",
	} {
		if !strings.Contains(sql, fragment) {
			t.Errorf("SQL missing fragment %q\ngot: %s", fragment, sql)
		}
	}
}

func TestOrganizationRowRoundTrip(t *testing.T) {
	locality := "Berlin"
	postal := "14482"
	email := "info@acme.test"
	org := organization.Organization{
		ID:    id.MustParse("0190d1f2-1111-7abc-8def-000000000001"),
		Name:  "Acme GmbH",
		Email: &email,
		Address: organization.Address{
			AddressLocality: &locality,
			PostalCode:      &postal,
		},
		ContactPoints: []organization.ContactPoint{
			{ID: id.MustParse("0190d1f2-1111-7abc-8def-000000000002"), ContactType: "HR"},
		},
	}

	row, points := organizationToRow(org)
	if len(points) != 1 {
		t.Fatalf("expected 1 contact point, got %d", len(points))
	}
	if row.AddressLocality == nil || *row.AddressLocality != locality {
		t.Error("address_locality not flattened onto row")
	}

	row.ContactPoints = points
	back := rowToOrganization(row)
	if back.ID != org.ID || back.Name != org.Name {
		t.Error("identity fields lost in round trip")
	}
	if back.Address != org.Address {
		t.Errorf("address mismatch after round trip\nwant: %+v\ngot:  %+v", org.Address, back.Address)
	}
	if len(back.ContactPoints) != 1 || back.ContactPoints[0].ContactType != "HR" {
		t.Error("contact points lost in round trip")
	}
}
