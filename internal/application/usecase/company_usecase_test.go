package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

func TestCompany_Create(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.NewCompanyRepository(memory.NewStore()))

	out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Frutas del Valle", AdminEmail: " Admin@Valle.com "})
	require.NoError(t, err)
	assert.Equal(t, "admin@valle.com", out.AdminEmail)
	assert.Equal(t, "active", out.Status)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", AdminEmail: "ADMIN@valle.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByID(ctx, tenant.Scope{CompanyID: out.ID}, out.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Frutas del Valle", got.Name)

	missing, err := uc.GetByID(ctx, tenant.Scope{CompanyID: "no-existe"}, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCompany_GetByIDDeOtraEmpresa(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.NewCompanyRepository(memory.NewStore()))
	a, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "A", AdminEmail: "a@x.com"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "B", AdminEmail: "b@x.com"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, tenant.Scope{CompanyID: a.ID}, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = uc.GetByID(ctx, tenant.Scope{}, a.ID)
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestCompany_CreateValidaciones(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memory.NewCompanyRepository(memory.NewStore()))
	cases := []dto.CreateCompanyRequest{
		{Name: "", AdminEmail: "a@b.com"},
		{Name: "X", AdminEmail: "no-es-email"},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCompany_ListSoloPropia(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCompanyUseCase(memory.NewCompanyRepository(memory.NewStore()))
	var ids []string
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		out, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Empresa " + email, AdminEmail: email})
		require.NoError(t, err)
		ids = append(ids, out.ID)
	}
	scope := tenant.Scope{CompanyID: ids[1]}

	out, err := uc.List(ctx, scope, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, ids[1], out.Items[0].ID)
	assert.Equal(t, 1, out.Page.Total)

	out, err = uc.List(ctx, scope, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 1, out.Page.Total)
}
