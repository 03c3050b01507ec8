package organization

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
	"jobdesk/internal/domain"
)

// fakeTxManager snapshots the repo's state when a transaction starts and
// restores it when the closure errors, mirroring a real rollback.
type fakeTxManager struct {
	repo *fakeRepo
}

func (m fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	orgs, points := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(orgs, points)
		return err
	}
	return nil
}

// fakeRepo keeps organization rows and contact points in memory, mimicking
// the ordering guarantees of the real queries. The fail* fields inject an
// error into the corresponding write so rollback behavior can be observed.
type fakeRepo struct {
	orgs   map[id.ID]Organization
	points map[id.ID][]ContactPoint

	failInsertPoints error
	failDeletePoints error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orgs:   make(map[id.ID]Organization),
		points: make(map[id.ID][]ContactPoint),
	}
}

func (r *fakeRepo) snapshot() (map[id.ID]Organization, map[id.ID][]ContactPoint) {
	orgs := make(map[id.ID]Organization, len(r.orgs))
	for k, v := range r.orgs {
		orgs[k] = v
	}
	points := make(map[id.ID][]ContactPoint, len(r.points))
	for k, v := range r.points {
		points[k] = append([]ContactPoint(nil), v...)
	}
	return orgs, points
}

func (r *fakeRepo) restore(orgs map[id.ID]Organization, points map[id.ID][]ContactPoint) {
	r.orgs = orgs
	r.points = points
}

func (r *fakeRepo) List(ctx context.Context, p ListParams) (domain.ListResult[Organization], error) {
	var result domain.ListResult[Organization]
	for orgID := range r.orgs {
		org, _ := r.GetByID(ctx, orgID)
		result.Items = append(result.Items, org)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, orgID id.ID) (Organization, error) {
	org, ok := r.orgs[orgID]
	if !ok {
		return Organization{}, apperror.NewNotFound("organization", orgID.String())
	}
	points := append([]ContactPoint(nil), r.points[orgID]...)
	sort.Slice(points, func(i, j int) bool { return points[i].ContactType < points[j].ContactType })
	org.ContactPoints = points
	return org, nil
}

func (r *fakeRepo) Insert(_ context.Context, org Organization) error {
	org.ContactPoints = nil
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeRepo) UpdateRow(_ context.Context, org Organization) error {
	if _, ok := r.orgs[org.ID]; !ok {
		return apperror.NewNotFound("organization", org.ID.String())
	}
	org.ContactPoints = nil
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, orgID id.ID) (bool, error) {
	if _, ok := r.orgs[orgID]; !ok {
		return false, nil
	}
	delete(r.orgs, orgID)
	delete(r.points, orgID)
	return true, nil
}

func (r *fakeRepo) ContactPointIDs(_ context.Context, orgID id.ID) ([]id.ID, error) {
	ids := make([]id.ID, 0, len(r.points[orgID]))
	for _, p := range r.points[orgID] {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *fakeRepo) InsertContactPoints(_ context.Context, orgID id.ID, points []ContactPoint) error {
	if r.failInsertPoints != nil {
		return r.failInsertPoints
	}
	r.points[orgID] = append(r.points[orgID], points...)
	return nil
}

func (r *fakeRepo) UpdateContactPoint(_ context.Context, orgID id.ID, point ContactPoint) error {
	for i, p := range r.points[orgID] {
		if p.ID == point.ID {
			r.points[orgID][i] = point
			return nil
		}
	}
	return apperror.NewNotFound("contact point", point.ID.String())
}

func (r *fakeRepo) DeleteContactPoints(_ context.Context, orgID id.ID, ids []id.ID) error {
	if r.failDeletePoints != nil {
		return r.failDeletePoints
	}
	doomed := make(map[id.ID]struct{}, len(ids))
	for _, cpID := range ids {
		doomed[cpID] = struct{}{}
	}
	kept := r.points[orgID][:0]
	for _, p := range r.points[orgID] {
		if _, ok := doomed[p.ID]; !ok {
			kept = append(kept, p)
		}
	}
	r.points[orgID] = kept
	return nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, fakeTxManager{repo: repo}, nil), repo
}

func TestServiceCreate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ContactType: "HR", Email: strPtr("hr@acme.test")},
			{ContactType: "general"},
		},
	})
	require.NoError(t, err)

	assert.False(t, id.IsNil(created.ID))
	require.Len(t, created.ContactPoints, 2)
	for _, p := range created.ContactPoints {
		assert.False(t, id.IsNil(p.ID))
	}
	// ordered by contact type
	assert.Equal(t, "HR", created.ContactPoints[0].ContactType)
	assert.Equal(t, "general", created.ContactPoints[1].ContactType)
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), Organization{})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(context.Background(), Organization{
		Name:          "Acme",
		ContactPoints: []ContactPoint{{}},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestServiceCreateRollsBackOnContactPointFailure(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.failInsertPoints = errors.New("insert contact points: connection reset")

	_, err := svc.Create(ctx, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ContactType: "HR", Email: strPtr("hr@acme.test")},
		},
	})
	require.Error(t, err)

	// Nothing may survive: a failed create leaves no organization row behind.
	assert.Empty(t, repo.orgs)
	assert.Empty(t, repo.points)
}

func TestServiceUpdateRollsBackOnContactPointFailure(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ContactType: "email", Email: strPtr("old@acme.test")},
			{ContactType: "phone", Telephone: strPtr("+49 30 1")},
		},
	})
	require.NoError(t, err)

	repo.failDeletePoints = errors.New("delete contact points: connection reset")

	// The update renames the organization and drops the email point; the
	// delete fails, so neither change may stick.
	_, err = svc.Update(ctx, created.ID, Organization{
		Name: "Acme AG",
		ContactPoints: []ContactPoint{
			{ID: created.ContactPoints[1].ID, ContactType: "phone", Telephone: strPtr("+49 30 2")},
		},
	})
	require.Error(t, err)

	current, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme GmbH", current.Name)
	require.Len(t, current.ContactPoints, 2)
	require.NotNil(t, current.ContactPoints[1].Telephone)
	assert.Equal(t, "+49 30 1", *current.ContactPoints[1].Telephone)
}

func TestServiceUpdateReconciles(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ContactType: "email", Email: strPtr("old@acme.test")},
			{ContactType: "phone", Telephone: strPtr("+49 30 1")},
		},
	})
	require.NoError(t, err)

	var emailID, phoneID id.ID
	for _, p := range created.ContactPoints {
		switch p.ContactType {
		case "email":
			emailID = p.ID
		case "phone":
			phoneID = p.ID
		}
	}

	// keep phone (with a new email field), drop email, add fax
	updated, err := svc.Update(ctx, created.ID, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ID: phoneID, ContactType: "phone", Email: strPtr("new@acme.test")},
			{ContactType: "fax", Email: strPtr("fax@acme.test")},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.ContactPoints, 2)

	byType := make(map[string]ContactPoint)
	for _, p := range updated.ContactPoints {
		byType[p.ContactType] = p
	}

	phone, ok := byType["phone"]
	require.True(t, ok)
	assert.Equal(t, phoneID, phone.ID, "untouched identifier must survive")
	require.NotNil(t, phone.Email)
	assert.Equal(t, "new@acme.test", *phone.Email)

	fax, ok := byType["fax"]
	require.True(t, ok)
	assert.False(t, id.IsNil(fax.ID))
	assert.NotEqual(t, emailID, fax.ID)

	_, gone := byType["email"]
	assert.False(t, gone)
}

func TestServiceUpdateRejectsStaleIdentifier(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Organization{Name: "Acme GmbH"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, Organization{
		Name: "Acme GmbH",
		ContactPoints: []ContactPoint{
			{ID: id.New(), ContactType: "phone"},
		},
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestServiceUpdateMissingOrganization(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), id.New(), Organization{Name: "Ghost"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestServiceDeleteIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, Organization{Name: "Acme GmbH"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
