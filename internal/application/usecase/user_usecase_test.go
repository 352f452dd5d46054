package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
)

func newMembers() *memUsers {
	return &memUsers{users: []*entity.User{
		{ID: "owner-1", OrganizationID: org, Email: "o@pharma.ma", Role: "admin"},
		{ID: "staff-1", OrganizationID: org, Email: "s@pharma.ma", Role: "staff"},
		{ID: "other-1", OrganizationID: "org-2", Email: "x@pharma.ma", Role: "owner"},
	}}
}

func TestUpdateRole(t *testing.T) {
	users := newMembers()
	uc := usecase.NewUserUseCase(users)
	ctx := context.Background()

	out, err := uc.UpdateRole(ctx, org, "owner-1", "staff-1", "viewer")
	require.NoError(t, err)
	assert.Equal(t, "restricted", out.Role, "se guarda normalizado")
	assert.Equal(t, "restricted", users.users[1].Role)

	_, err = uc.UpdateRole(ctx, org, "owner-1", "staff-1", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateRole(ctx, org, "owner-1", "other-1", "staff")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateRole(ctx, org, "owner-1", "owner-1", "staff")
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err = uc.UpdateRole(ctx, org, "owner-1", "owner-1", "org:owner")
	require.NoError(t, err)
	assert.Equal(t, "owner", out.Role)
}

func TestCurrentRole(t *testing.T) {
	users := newMembers()
	users.users[0].Status = entity.UserStatusActive
	users.users[2].Status = entity.UserStatusActive
	uc := usecase.NewUserUseCase(users)
	ctx := context.Background()

	role, ok, err := uc.CurrentRole(ctx, org, "owner-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "admin", role)

	_, ok, err = uc.CurrentRole(ctx, org, "staff-1")
	require.NoError(t, err)
	assert.False(t, ok, "miembro inactivo")

	_, ok, err = uc.CurrentRole(ctx, org, "other-1")
	require.NoError(t, err)
	assert.False(t, ok, "otra organización")

	_, ok, err = uc.CurrentRole(ctx, org, "nadie")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListMembers(t *testing.T) {
	uc := usecase.NewUserUseCase(newMembers())

	list, err := uc.ListMembers(context.Background(), org)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	u, err := uc.GetByID(context.Background(), org, "other-1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestOrganizationCreate(t *testing.T) {
	orgs := newMemOrgs()
	uc := usecase.NewOrganizationUseCase(orgs)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateOrganizationRequest{Name: "Pharmacie Atlas", ICE: "001234567000089"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "active", out.Status)

	_, err = uc.Create(ctx, dto.CreateOrganizationRequest{Name: "Otra", ICE: "001234567000089"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateOrganizationRequest{Name: " ", ICE: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
