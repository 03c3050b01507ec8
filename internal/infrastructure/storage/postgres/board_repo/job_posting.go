package board_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain"
	"jobdesk/internal/domain/jobposting"
	"jobdesk/internal/domain/params"
	"jobdesk/internal/infrastructure/storage/postgres"
)

const jobPostingsTable = "job_postings"

type jobPostingRow struct {
	ID             id.ID            `db:"id"`
	OrganizationID id.ID            `db:"organization_id"`
	Title          string           `db:"title"`
	Description    *string          `db:"description"`
	EmploymentType string           `db:"employment_type"`
	SalaryMin      *decimal.Decimal `db:"salary_min"`
	SalaryMax      *decimal.Decimal `db:"salary_max"`
	SalaryCurrency *string          `db:"salary_currency"`
	ValidThrough   *time.Time       `db:"valid_through"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

func rowToJobPosting(row jobPostingRow) jobposting.JobPosting {
	return jobposting.JobPosting{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Title:          row.Title,
		Description:    row.Description,
		EmploymentType: jobposting.EmploymentType(row.EmploymentType),
		SalaryMin:      row.SalaryMin,
		SalaryMax:      row.SalaryMax,
		SalaryCurrency: row.SalaryCurrency,
		ValidThrough:   row.ValidThrough,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func jobPostingToRow(posting jobposting.JobPosting) jobPostingRow {
	return jobPostingRow{
		ID:             posting.ID,
		OrganizationID: posting.OrganizationID,
		Title:          posting.Title,
		Description:    posting.Description,
		EmploymentType: string(posting.EmploymentType),
		SalaryMin:      posting.SalaryMin,
		SalaryMax:      posting.SalaryMax,
		SalaryCurrency: posting.SalaryCurrency,
		ValidThrough:   posting.ValidThrough,
	}
}

var _ jobposting.Repository = (*JobPostingRepo)(nil)

type JobPostingRepo struct {
	txManager *postgres.TxManager
	columns   []string
	filter    map[string]struct{}
	sortable  map[string]struct{}
}

func NewJobPostingRepo(txManager *postgres.TxManager) *JobPostingRepo {
	filter := make(map[string]struct{})
	for _, f := range jobposting.FilterableFields() {
		filter[f] = struct{}{}
	}
	sortable := make(map[string]struct{})
	for _, f := range jobposting.SortableFields() {
		sortable[f] = struct{}{}
	}
	return &JobPostingRepo{
		txManager: txManager,
		columns:   postgres.ExtractDBColumns[jobPostingRow](),
		filter:    filter,
		sortable:  sortable,
	}
}

func (r *JobPostingRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *JobPostingRepo) listQuery(p jobposting.ListParams) (squirrel.SelectBuilder, error) {
	q := r.builder().Select(r.columns...).From(jobPostingsTable)
	for field, value := range p.Filters {
		if _, ok := r.filter[field]; !ok {
			return q, apperror.NewValidation(fmt.Sprintf("invalid filter column: %s", field))
		}
		if field == "title" {
			q = q.Where(squirrel.Like{field: "%" + value + "%"})
			continue
		}
		q = q.Where(squirrel.Eq{field: value})
	}
	return q, nil
}

func (r *JobPostingRepo) applySort(q squirrel.SelectBuilder, s params.Sort) (squirrel.SelectBuilder, error) {
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

func (r *JobPostingRepo) List(ctx context.Context, p jobposting.ListParams) (domain.ListResult[jobposting.JobPosting], error) {
	var result domain.ListResult[jobposting.JobPosting]
	querier := r.txManager.GetQuerier(ctx)

	q, err := r.listQuery(p)
	if err != nil {
		return result, err
	}

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("build count query: %w", err))
	}
	if err := pgxscan.Get(ctx, querier, &result.TotalCount, countSQL, countArgs...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("count job postings: %w", err))
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

	var rows []jobPostingRow
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return result, apperror.NewDatabase(fmt.Errorf("select job postings: %w", err))
	}

	result.Items = make([]jobposting.JobPosting, 0, len(rows))
	for _, row := range rows {
		result.Items = append(result.Items, rowToJobPosting(row))
	}
	result.Limit = p.Limit
	result.Offset = p.Offset
	return result, nil
}

func (r *JobPostingRepo) GetByID(ctx context.Context, postingID id.ID) (jobposting.JobPosting, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Select(r.columns...).
		From(jobPostingsTable).
		Where(squirrel.Eq{"id": postingID}).
		Limit(1).
		ToSql()
	if err != nil {
		return jobposting.JobPosting{}, apperror.NewDatabase(fmt.Errorf("build get query: %w", err))
	}

	var row jobPostingRow
	if err := pgxscan.Get(ctx, querier, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return jobposting.JobPosting{}, apperror.NewNotFound("job posting", postingID.String())
		}
		return jobposting.JobPosting{}, apperror.NewDatabase(fmt.Errorf("get job posting: %w", err))
	}
	return rowToJobPosting(row), nil
}

func (r *JobPostingRepo) Insert(ctx context.Context, posting jobposting.JobPosting) error {
	querier := r.txManager.GetQuerier(ctx)

	row := jobPostingToRow(posting)
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	sql, args, err := r.builder().
		Insert(jobPostingsTable).
		SetMap(postgres.StructToMap(row)).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build insert query: %w", err))
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperror.NewDuplicate("job posting", "id", posting.ID.String())
			case "23503":
				return apperror.NewValidation("organization does not exist").
					WithDetail("organization", posting.OrganizationID.String())
			}
		}
		return apperror.NewDatabase(fmt.Errorf("insert job posting: %w", err))
	}
	return nil
}

func (r *JobPostingRepo) UpdateRow(ctx context.Context, posting jobposting.JobPosting) error {
	querier := r.txManager.GetQuerier(ctx)

	setMap := postgres.StructToMap(jobPostingToRow(posting))
	delete(setMap, "id")
	delete(setMap, "created_at")
	setMap["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.builder().
		Update(jobPostingsTable).
		SetMap(setMap).
		Where(squirrel.Eq{"id": posting.ID}).
		ToSql()
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("build update query: %w", err))
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewDatabase(fmt.Errorf("update job posting: %w", err))
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("job posting", posting.ID.String())
	}
	return nil
}

func (r *JobPostingRepo) Delete(ctx context.Context, postingID id.ID) (bool, error) {
	querier := r.txManager.GetQuerier(ctx)

	sql, args, err := r.builder().
		Delete(jobPostingsTable).
		Where(squirrel.Eq{"id": postingID}).
		ToSql()
	if err != nil {
		return false, apperror.NewDatabase(fmt.Errorf("build delete query: %w", err))
	}

	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return false, apperror.NewDatabase(fmt.Errorf("delete job posting: %w", err))
	}
	return result.RowsAffected() > 0, nil
}
