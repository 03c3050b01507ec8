package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk/internal/core/apperror"
	"jobdesk/internal/core/id"
)

type fakeUserRepo struct {
	byEmail map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newAuthService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwt := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwt, DefaultServiceConfig()), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "hr@jobdesk.test", "Sup3rSecret", "HR Admin")
	require.NoError(t, err)
	assert.False(t, id.IsNil(user.ID))
	assert.Empty(t, user.LastLoginAt)

	token, loggedIn, err := svc.Login(ctx, Credentials{
		Email:    "hr@jobdesk.test",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), "hr@jobdesk.test", "short", "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "hr@jobdesk.test", "Sup3rSecret", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "hr@jobdesk.test", "An0therSecret", "")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, repo := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "hr@jobdesk.test", "Sup3rSecret", "")
	require.NoError(t, err)

	cfg := DefaultServiceConfig()
	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		_, _, err := svc.Login(ctx, Credentials{Email: "hr@jobdesk.test", Password: "wrong"})
		require.Error(t, err)
	}

	user := repo.byEmail["hr@jobdesk.test"]
	assert.True(t, user.IsLocked())

	// Even the right password is refused while locked.
	_, _, err = svc.Login(ctx, Credentials{Email: "hr@jobdesk.test", Password: "Sup3rSecret"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "locked"))
}
