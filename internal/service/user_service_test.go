package service

import (
	"context"
	"testing"

	"app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUpsertIfAbsent(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, &model.User{Name: "X", Email: "x@x.com"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Register(ctx, &model.User{Name: "X again", Email: "x@x.com"})
	require.NoError(t, err)
	assert.False(t, created, "second sign-in must not create a duplicate account")

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRoleByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	role := model.RoleInstructor
	_, err := repo.CreateUser(ctx, &model.User{Email: "i@x.com", Role: &role})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, &model.User{Email: "new@x.com"})
	require.NoError(t, err)

	got, found, err := svc.RoleByEmail(ctx, "i@x.com")
	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, got)
	assert.Equal(t, model.RoleInstructor, *got)

	// Known user with no role yet: found, nil role.
	got, found, err = svc.RoleByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, got)

	// Unknown user: not found.
	_, found, err = svc.RoleByEmail(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHasRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	role := model.RoleAdmin
	_, err := repo.CreateUser(ctx, &model.User{Email: "a@x.com", Role: &role})
	require.NoError(t, err)

	has, err := svc.HasRole(ctx, "a@x.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasRole(ctx, "a@x.com", model.RoleInstructor)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = svc.HasRole(ctx, "ghost@x.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestPromoteToAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	u := &model.User{Email: "x@x.com"}
	_, err := repo.CreateUser(ctx, u)
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToAdmin(ctx, u.ID))

	has, err := svc.HasRole(ctx, "x@x.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, has)

	assert.ErrorIs(t, svc.PromoteToAdmin(ctx, "no-such-id"), ErrUserNotFound)
}

func TestListInstructors(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	instructor := model.RoleInstructor
	student := model.RoleStudent
	_, err := repo.CreateUser(ctx, &model.User{Email: "i@x.com", Role: &instructor})
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, &model.User{Email: "s@x.com", Role: &student})
	require.NoError(t, err)

	instructors, err := svc.ListInstructors(ctx)
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	assert.Equal(t, "i@x.com", instructors[0].Email)
}
