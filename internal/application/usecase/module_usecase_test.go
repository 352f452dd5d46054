package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/access"
)

func moduleByKey(t *testing.T, mods []dto.ModuleAccessDTO, key access.ModuleKey) dto.ModuleAccessDTO {
	t.Helper()
	for _, m := range mods {
		if m.Key == string(key) {
			return m
		}
	}
	t.Fatalf("módulo %s ausente", key)
	return dto.ModuleAccessDTO{}
}

func TestModuleService_SinFilasTodoActivo(t *testing.T) {
	svc := usecase.NewModuleService(newMemOrgs())

	ok, err := svc.IsModuleEnabled(context.Background(), org, access.ModuleVentes)
	require.NoError(t, err)
	assert.True(t, ok)

	settings, err := svc.ListSettings(context.Background(), org)
	require.NoError(t, err)
	assert.Len(t, settings, len(access.AllModules()))
	for _, s := range settings {
		assert.True(t, s.Enabled, s.Key)
	}
}

func TestModuleService_SetModule(t *testing.T) {
	orgs := newMemOrgs()
	svc := usecase.NewModuleService(orgs)
	ctx := context.Background()

	out, err := svc.SetModule(ctx, org, "analytique", false)
	require.NoError(t, err)
	assert.False(t, out.Enabled)

	ok, err := svc.IsModuleEnabled(ctx, org, access.ModuleAnalytique)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsModuleEnabled(ctx, "org-2", access.ModuleAnalytique)
	require.NoError(t, err)
	assert.True(t, ok, "la desactivación es por organización")

	_, err = svc.SetModule(ctx, org, "parametres", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.SetModule(ctx, org, "dashboard", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.SetModule(ctx, org, "inexistente", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = svc.SetModule(ctx, org, "parametres", true)
	require.NoError(t, err)
	assert.False(t, out.Toggleable)
}

func TestModuleService_Access(t *testing.T) {
	orgs := newMemOrgs()
	svc := usecase.NewModuleService(orgs)
	ctx := context.Background()
	_, err := svc.SetModule(ctx, org, "achats", false)
	require.NoError(t, err)

	out, err := svc.Access(ctx, member, org, "pharmacist")
	require.NoError(t, err)
	assert.Equal(t, "staff", out.Role)
	assert.Len(t, out.Modules, len(access.AllModules()))

	ventes := moduleByKey(t, out.Modules, access.ModuleVentes)
	assert.True(t, ventes.CanView)
	assert.True(t, ventes.CanManage)
	assert.True(t, ventes.Enabled)

	achats := moduleByKey(t, out.Modules, access.ModuleAchats)
	assert.True(t, achats.CanManage)
	assert.False(t, achats.Enabled)

	params := moduleByKey(t, out.Modules, access.ModuleParametres)
	assert.False(t, params.CanView)

	out, err = svc.Access(ctx, member, org, "")
	require.NoError(t, err)
	assert.Equal(t, "restricted", out.Role)
	for _, m := range out.Modules {
		assert.False(t, m.CanView, m.Key)
	}
}

func TestModuleService_ErrorDeInfraestructura(t *testing.T) {
	orgs := newMemOrgs()
	orgs.err = errors.New("db caída")
	svc := usecase.NewModuleService(orgs)

	_, err := svc.IsModuleEnabled(context.Background(), org, access.ModuleVentes)
	assert.Error(t, err)

	ok, err := svc.IsModuleEnabled(context.Background(), org, access.ModuleDashboard)
	require.NoError(t, err, "dashboard no consulta la BD")
	assert.True(t, ok)

	_, err = svc.IsModuleEnabled(context.Background(), "", access.ModuleVentes)
	assert.Error(t, err)
}
