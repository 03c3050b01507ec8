package board_repo

import (
	"strings"
	"testing"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/domain/jobposting"
	"jobdesk/internal/domain/params"
)

func TestJobPostingListQuery_FilterSemantics(t *testing.T) {
	repo := NewJobPostingRepo(nil)

	q, err := repo.listQuery(jobposting.ListParams{
		Filters: map[string]string{"title": "Engineer"},
	})
	if err != nil {
		t.Fatalf("listQuery failed: %v", err)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}
	if !strings.Contains(sql, "title LIKE $1") {
		t.Errorf("SQL missing title substring clause\ngot: %s", sql)
	}
	if len(args) != 1 || args[0] != "%Engineer%" {
		t.Errorf("Args mismatch\ngot: %v", args)
	}

	if _, err := repo.listQuery(jobposting.ListParams{
		Filters: map[string]string{"salary_min": "0"},
	}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for unknown filter column, got %v", err)
	}
}

func TestJobPostingApplySort_RejectsUnknownColumn(t *testing.T) {
	repo := NewJobPostingRepo(nil)

	q, err := repo.listQuery(jobposting.ListParams{})
	if err != nil {
		t.Fatalf("listQuery failed: %v", err)
	}

	if _, err := repo.applySort(q, params.Sort{Field: "employment_type", Direction: "ASC"}); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for non-sortable column, got %v", err)
	}

	q, err = repo.applySort(q, params.Sort{Field: "salary_min", Direction: "DESC"})
	if err != nil {
		t.Fatalf("applySort failed: %v", err)
	}
	sql, _, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}
	if !strings.Contains(sql, "ORDER BY salary_min DESC") {
		t.Errorf("SQL missing order clause\ngot: %s", sql)
	}
}
