package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	apphttp "github.com/jhoicas/producepricer-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/producepricer-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "producepricer-test"
	testExpMin    = 60
	testAPIKey    = "0a1b2c3d4e5f.secreto-de-tablet"
)

// fakeKeys acepta solo testAPIKey.
type fakeKeys struct{}

func (fakeKeys) Authenticate(_ context.Context, raw string) (tenant.Scope, *entity.APIKey, error) {
	if raw != testAPIKey {
		return tenant.Scope{}, nil, domain.ErrInvalidAPIKey
	}
	return tenant.Scope{CompanyID: testCompanyID}, &entity.APIKey{ID: "key-1", CompanyID: testCompanyID, IsActive: true}, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver el tenant
//   - /me devuelve los locals
//   - /admin exige usuario (JWT)
func buildTestApp() *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(testJWTSecret, fakeKeys{})
	app.Get("/me", auth, func(c *fiber.Ctx) error {
		scope, err := apphttp.GetScope(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{
			"user_id":     apphttp.GetUserID(c),
			"company_id":  scope.CompanyID,
			"role":        apphttp.GetRole(c),
			"auth_method": apphttp.GetAuthMethod(c),
		})
	})
	app.Get("/admin", auth, apphttp.RequireUser(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func bearer(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, id, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func userToken(t *testing.T) string {
	return bearer(t, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: "admin"})
}

// doRequest lanza un GET con los headers indicados.
func doRequest(t *testing.T, app *fiber.App, path string, headers map[string]string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_JWT_CargaIdentidad(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{"Authorization": userToken(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, apphttp.AuthMethodJWT, body["auth_method"])
}

// Caso 1: llave por X-API-Key.
func TestAuthMiddleware_APIKeyHeader(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{apphttp.HeaderAPIKey: testAPIKey})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "", body["user_id"], "una llave no representa a un usuario")
	assert.Equal(t, apphttp.AuthMethodAPIKey, body["auth_method"])
}

// Caso 2: llave como Bearer (se distingue del JWT por formato).
func TestAuthMiddleware_APIKeyComoBearer(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{"Authorization": "Bearer " + testAPIKey})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_APIKeyInvalida_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{apphttp.HeaderAPIKey: "ffffffffffff.otra"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_API_KEY")
}

func TestAuthMiddleware_SinCredenciales_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{"Authorization": "Bearer token.invalido.aqui"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{"Authorization": "Basic abc"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: token firmado pero sin company_id.
func TestAuthMiddleware_TokenSinEmpresa_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", map[string]string{"Authorization": bearer(t, pkgjwt.Identity{UserID: testUserID})})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "MISSING_TENANT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireUser_JWTPasa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/admin", map[string]string{"Authorization": userToken(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUser_APIKeyBloqueada(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/admin", map[string]string{apphttp.HeaderAPIKey: testAPIKey})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "USER_REQUIRED")
}
