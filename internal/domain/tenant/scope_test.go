package tenant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

func TestNew(t *testing.T) {
	s, err := tenant.New(" c-1 ")
	require.NoError(t, err)
	assert.Equal(t, "c-1", s.CompanyID)
	assert.True(t, s.Valid())
	assert.True(t, s.Owns("c-1"))
	assert.False(t, s.Owns("c-2"))
}

func TestNew_Vacio(t *testing.T) {
	_, err := tenant.New("  ")
	assert.ErrorIs(t, err, domain.ErrMissingTenant)
	assert.False(t, tenant.Scope{}.Owns(""))
}
