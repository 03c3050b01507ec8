package board_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain"
	"jobdesk/internal/domain/organization"
	"jobdesk/internal/domain/params"
	"jobdesk/internal/infrastructure/storage/postgres"
)

const (
	organizationsTable = "organizations"
	contactPointsTable = "contact_points"
)

// contactPointsSelect aggregates an organization's contact points into a
// single JSON array column, ordered by contact type. COALESCE keeps the
// column an empty array rather than SQL null when there are no points.
const contactPointsSelect = `COALESCE((
	SELECT json_agg(json_build_object(
		'identifier', cp.id,
		'email', cp.email,
		'telephone', cp.telephone,
		'name', cp.name,
		'contactType', cp.contact_type
	) ORDER BY cp.contact_type ASC)
	FROM contact_points cp
	WHERE cp.organization_id = organizations.id
), '[]'::json) AS contact_points`

var _ organization.Repository = (*OrganizationRepo)(nil)

// OrganizationRepo implements organization.Repository on Postgres.
// All statements run through the tx manager's querier, so calls made
// inside RunInTransaction share the transaction automatically.
type OrganizationRepo struct {
	txManager *postgres.TxManager
	writeCols []string
	filter    map[string]struct{}
	sortable  map[string]struct{}
}

func NewOrganizationRepo(txManager *postgres.TxManager) *OrganizationRepo {
	cols := make([]string, 0, 12)
	for _, c := range postgres.ExtractDBColumns[organizationRow]() {
		if c == "contact_points" {
			continue
		}
		cols = append(cols, c)
	}
	filter := make(map[string]struct{})
	for _, f := range organization.FilterableFields() {
		filter[f] = struct{}{}
	}
	sortable := make(map[string]struct{})
	for _, f := range organization.SortableFields() {
		sortable[f] = struct{}{}
	}
	return &OrganizationRepo{
		txManager: txManager,
		writeCols: cols,
		filter:    filter,
		sortable:  sortable,
	}
}

func (r *OrganizationRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *OrganizationRepo) selectQuery() squirrel.SelectBuilder {
	cols := append(append([]string{}, r.writeCols...), contactPointsSelect)
	return r.builder().Select(cols...).From(organizationsTable)
}

// listQuery builds the filtered select. Filter semantics: name matches as
// a case-sensitive substring, address_locality and postal_code as prefixes,
// everything else by equality. Unknown columns are rejected outright even
// though the sanitizer upstream should have dropped them already.
func (r *OrganizationRepo) listQuery(p organization.ListParams) (squirrel.SelectBuilder, error) {
	q := r.selectQuery()
	for field, value := range p.Filters {
		if _, ok := r.filter[field]; !ok {
			return q, apperror.NewValidation(fmt.Sprintf("invalid filter column: %s", field))
		}
		switch field {
		case "name":
			q = q.Where(squirrel.Like{field: "%" + value + "%"})
		case "address_locality", "postal_code":
			q = q.Where(squirrel.Like{field: value + "%"})
		default:
			q = q.Where(squirrel.Eq{field: value})
		}
	}
	return q, nil
}

// applySort re-checks the sort column against the whitelist before it
// reaches the ORDER BY clause, same as listQuery does for filters.
func (r *OrganizationRepo) applySort(q squirrel.SelectBuilder, s params.Sort) (squirrel.SelectBuilder, error) {
	if s.IsZero() {
		return q, nil
	}
	if _, ok := r.sortable[s.Field]; !ok {
		return q, apperror.NewValidation(fmt.Sprintf("invalid sort column: %s", s.Field))
	}
	if s.Direction != "ASC" && s.Direction != "DESC" {
		return q, apperror.NewValidation(fmt.Sprintf("invalid sort direction: %s", s.Direction))
	}
	return q.OrderBy(s.OrderBy()), nil
}

func (r *OrganizationRepo) List(ctx context.Context, p organization.ListParams) (domain.ListResult[organization.Organization], error) {
	var result domain.ListResult[organization.Organization]
	querier := r.txManager.GetQuerier(ctx)

	q, err := r.listQuery(p)
	if err != nil {
		return result, err
	}

	// Total count over the filtered set, before sort and pagination.
	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("build count query: %w", err))
	}

	if err := pgxscan.Get(ctx, querier, &result.TotalCount, countSQL, countArgs...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count organizations: %w", err))
	}

	q, err = r.applySort(q, p.Sort)
	if err != nil {
		return result, err
	}
	if p.Limit > 0 {
		q = q.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		q = q.Offset(uint64(p.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("build list query: %w", err))
	}

	var rows []organizationRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("select organizations: %w", err))
	}

	result.Items = make([]organization.Organization, 0, len(rows))
	for _, row := range rows {
		result.Items = append(result.Items, rowToOrganization(row))
	}
	result.Limit = p.Limit
	result.Offset = p.Offset
	return result, nil
}

func (r *OrganizationRepo) GetByID(ctx context.Context, orgID id.ID) (organization.Organization, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.selectQuery().
		Where(squirrel.Eq{"id": orgID}).
		Limit(1).
		ToSql()
	if err != nil {
		return organization.Organization{}, apperror.NewDatabase(fmt.Errorf("build get query: %w", err))
	}

	var row organizationRow
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return organization.Organization{}, apperror.NewNotFound("organization", orgID.String())
		}
		return organization.Organization{}, apperror.NewDatabase(fmt.Errorf("get organization: %w", err))
	}
	return rowToOrganization(row), nil
}

func (r *OrganizationRepo) Insert(ctx context.Context, org organization.Organization) error {
	querier := r.txManager.GetQuerier(ctx)

	row, _ := organizationToRow(org)
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	values := postgres.StructToMap(row)
	setMap := make(map[string]any, len(r.writeCols))
	for _, col := range r.writeCols {
		setMap[col] = values[col]
	}

	sql, args, err := r.builder().
		Insert(organizationsTable).
		SetMap(setMap).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build insert query: %w", err))
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("organization", "id", org.ID.String())
		}
		return apperror.NewDatabase(fmt.Errorf("insert organization: %w", err))
	}
	return nil
}

func (r *OrganizationRepo) UpdateRow(ctx context.Context, org organization.Organization) error {
	querier := r.txManager.GetQuerier(ctx)

	row, _ := organizationToRow(org)
	values := postgres.StructToMap(row)
	setMap := make(map[string]any, len(r.writeCols))
	for _, col := range r.writeCols {
		switch col {
		case "id", "created_at", "updated_at":
			continue
		}
		setMap[col] = values[col]
	}
	setMap["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.builder().
		Update(organizationsTable).
		SetMap(setMap).
		Where(squirrel.Eq{"id": org.ID}).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build update query: %w", err))
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update organization: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("organization", org.ID.String())
	}
	return nil
}

// Delete removes the organization row; contact points go with it via the
// ON DELETE CASCADE constraint. Returns false when no row matched.
func (r *OrganizationRepo) Delete(ctx context.Context, orgID id.ID) (bool, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Delete(organizationsTable).
		Where(squirrel.Eq{"id": orgID}).
		ToSql()
	if err != nil {
		return false, apperror.NewDatabase(fmt.Errorf("build delete query: %w", err))
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, apperror.NewConflict("organization is referenced by other records")
		}
		return false, apperror.NewDatabase(fmt.Errorf("delete organization: %w", err))
	}
	return result.RowsAffected() > 0, nil
}

func (r *OrganizationRepo) ContactPointIDs(ctx context.Context, orgID id.ID) ([]id.ID, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Select("id").
		From(contactPointsTable).
		Where(squirrel.Eq{"organization_id": orgID}).
		OrderBy("contact_type ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("build contact point ids query: %w", err))
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, querier, &ids, sql, args...); err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("select contact point ids: %w", err))
	}
	return ids, nil
}

func (r *OrganizationRepo) InsertContactPoints(ctx context.Context, orgID id.ID, points []organization.ContactPoint) error {
	if len(points) == 0 {
		return nil
	}
	querier := r.txManager.GetQuerier(ctx)

	q := r.builder().
		Insert(contactPointsTable).
		Columns("id", "organization_id", "email", "telephone", "name", "contact_type")
	for _, p := range points {
		q = q.Values(p.ID, orgID, p.Email, p.Telephone, p.Name, p.ContactType)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build contact point insert: %w", err))
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("insert contact points: %w", err))
	}
	return nil
}

func (r *OrganizationRepo) UpdateContactPoint(ctx context.Context, orgID id.ID, point organization.ContactPoint) error {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Update(contactPointsTable).
		SetMap(map[string]any{
			"email":        point.Email,
			"telephone":    point.Telephone,
			"name":         point.Name,
			"contact_type": point.ContactType,
		}).
		Where(squirrel.Eq{"id": point.ID, "organization_id": orgID}).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build contact point update: %w", err))
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update contact point: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("contact point", point.ID.String())
	}
	return nil
}

func (r *OrganizationRepo) DeleteContactPoints(ctx context.Context, orgID id.ID, ids []id.ID) error {
	if len(ids) == 0 {
		return nil
	}
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Delete(contactPointsTable).
		Where(squirrel.Eq{"organization_id": orgID, "id": ids}).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build contact point delete: %w", err))
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return apperror.NewDatabase(fmt.Errorf("delete contact points: %w", err))
	}
	return nil
}
