package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/application/usecase"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/memory"
)

func newAPIKeyUC() *usecase.APIKeyUseCase {
	return usecase.NewAPIKeyUseCase(memory.NewAPIKeyRepository(memory.NewStore()), bcrypt.MinCost, nil)
}

func TestAPIKey_CreateYAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc := newAPIKeyUC()

	created, err := uc.Create(ctx, scopeA, "user-1", dto.CreateAPIKeyRequest{DeviceName: "Báscula muelle 2"})
	require.NoError(t, err)
	require.NotEmpty(t, created.Key)
	assert.True(t, strings.HasPrefix(created.Key, created.Prefix+"."))
	assert.True(t, created.IsActive)

	scope, key, err := uc.Authenticate(ctx, created.Key)
	require.NoError(t, err)
	assert.Equal(t, scopeA.CompanyID, scope.CompanyID)
	assert.Equal(t, created.ID, key.ID)

	list, err := uc.List(ctx, scopeA)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.NotNil(t, list.Items[0].LastUsedAt, "Authenticate registra el último uso")
}

func TestAPIKey_AuthenticateRechaza(t *testing.T) {
	ctx := context.Background()
	uc := newAPIKeyUC()
	created, err := uc.Create(ctx, scopeA, "user-1", dto.CreateAPIKeyRequest{DeviceName: "Tablet"})
	require.NoError(t, err)

	bad := []string{
		"",
		"sin-punto",
		created.Prefix + ".secreto-incorrecto",
		"ffffffffffff.otro",
	}
	for _, raw := range bad {
		_, _, err := uc.Authenticate(ctx, raw)
		assert.ErrorIs(t, err, domain.ErrInvalidAPIKey, raw)
	}
}

func TestAPIKey_RevokeYActivate(t *testing.T) {
	ctx := context.Background()
	uc := newAPIKeyUC()
	created, err := uc.Create(ctx, scopeA, "user-1", dto.CreateAPIKeyRequest{DeviceName: "Tablet"})
	require.NoError(t, err)

	require.NoError(t, uc.Revoke(ctx, scopeA, created.ID))
	_, _, err = uc.Authenticate(ctx, created.Key)
	assert.ErrorIs(t, err, domain.ErrInvalidAPIKey)

	// otra empresa no puede tocar la llave
	assert.ErrorIs(t, uc.Activate(ctx, scopeB, created.ID), domain.ErrNotFound)

	require.NoError(t, uc.Activate(ctx, scopeA, created.ID))
	_, _, err = uc.Authenticate(ctx, created.Key)
	assert.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, scopeA, created.ID))
	_, _, err = uc.Authenticate(ctx, created.Key)
	assert.ErrorIs(t, err, domain.ErrInvalidAPIKey)
}

func TestAPIKey_DeviceNameRequerido(t *testing.T) {
	_, err := newAPIKeyUC().Create(context.Background(), scopeA, "user-1", dto.CreateAPIKeyRequest{DeviceName: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
