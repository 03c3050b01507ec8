package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobdesk/internal/core/id"
)

type mockBase struct {
	ID        id.ID     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type mockRecord struct {
	mockBase
	Name      string  `db:"name"`
	Email     *string `db:"email"`
	Ignored   string  `db:"-"`
	NoTag     int
	Telephone string `db:"telephone"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	assert.Equal(t, []string{"id", "created_at", "name", "email", "telephone"}, cols)
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockRecord]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "name")
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	email := "jobs@example.org"
	rec := mockRecord{
		mockBase:  mockBase{ID: id.New(), CreatedAt: now},
		Name:      "Acme",
		Email:     &email,
		Ignored:   "skip me",
		NoTag:     7,
		Telephone: "+4930123456",
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "Acme", m["name"])
	assert.Equal(t, &email, m["email"])
	assert.Equal(t, "+4930123456", m["telephone"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 5)
}

func TestStructToMap_NilEmail(t *testing.T) {
	m := StructToMap(&mockRecord{Name: "Solo"})

	assert.Equal(t, "Solo", m["name"])
	assert.Equal(t, (*string)(nil), m["email"])
}
