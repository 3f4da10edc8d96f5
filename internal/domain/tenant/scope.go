// Package tenant define el alcance de empresa que viaja explícito en cada llamada
// a persistencia. Ningún repositorio lee el tenant de estado global o de sesión.
package tenant

import (
	"strings"

	"github.com/jhoicas/producepricer-api/internal/domain"
)

// Scope empresa dueña de los datos de la operación en curso.
type Scope struct {
	CompanyID string
}

// New construye el scope; un id vacío es domain.ErrMissingTenant.
func New(companyID string) (Scope, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return Scope{}, domain.ErrMissingTenant
	}
	return Scope{CompanyID: companyID}, nil
}

// Owns informa si un registro con ese company_id pertenece al scope.
func (s Scope) Owns(companyID string) bool {
	return s.CompanyID != "" && s.CompanyID == companyID
}

// Valid informa si el scope fue construido con una empresa.
func (s Scope) Valid() bool {
	return s.CompanyID != ""
}
