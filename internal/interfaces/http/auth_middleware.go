package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/apikey"
	"github.com/jhoicas/producepricer-api/pkg/jwt"
)

// Locals keys para identidad y tenant en Fiber.
const (
	LocalUserID     = "user_id"
	LocalCompanyID  = "company_id"
	LocalRole       = "role"
	LocalAuthMethod = "auth_method"
	LocalAPIKeyID   = "api_key_id"
)

// Métodos de autenticación.
const (
	AuthMethodJWT    = "jwt"
	AuthMethodAPIKey = "api_key"
)

// HeaderAPIKey header alternativo para llaves de dispositivo.
const HeaderAPIKey = "X-API-Key"

// APIKeyAuthenticator valida una llave de dispositivo y devuelve su tenant.
type APIKeyAuthenticator interface {
	Authenticate(ctx context.Context, raw string) (tenant.Scope, *entity.APIKey, error)
}

// AuthMiddleware resuelve el tenant de la petición: X-API-Key, o Authorization: Bearer
// con un JWT o una llave de dispositivo (se distinguen por formato). Carga los locals.
func AuthMiddleware(jwtSecret string, keys APIKeyAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := strings.TrimSpace(c.Get(HeaderAPIKey)); raw != "" {
			return authWithAPIKey(c, keys, raw)
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization o X-API-Key requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		if apikey.Looks(tokenString) {
			return authWithAPIKey(c, keys, tokenString)
		}

		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrMissingCompany) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "el token no trae company_id"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalCompanyID, id.CompanyID)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalAuthMethod, AuthMethodJWT)
		return c.Next()
	}
}

func authWithAPIKey(c *fiber.Ctx, keys APIKeyAuthenticator, raw string) error {
	if keys == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "llaves de dispositivo no habilitadas"})
	}
	scope, key, err := keys.Authenticate(c.UserContext(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAPIKey) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_API_KEY", Message: "llave inválida o revocada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Locals(LocalCompanyID, scope.CompanyID)
	c.Locals(LocalAPIKeyID, key.ID)
	c.Locals(LocalAuthMethod, AuthMethodAPIKey)
	return c.Next()
}

// RequireUser exige autenticación con JWT: las llaves de dispositivo no administran llaves.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetAuthMethod(c) != AuthMethodJWT || GetUserID(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_REQUIRED", Message: "operación disponible solo para usuarios"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetUserID devuelve el UserID del contexto (vacío si se autenticó con llave).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole devuelve el rol del JWT, si lo trae.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetAuthMethod jwt | api_key.
func GetAuthMethod(c *fiber.Ctx) string { return localString(c, LocalAuthMethod) }

// GetScope construye el tenant de la petición.
func GetScope(c *fiber.Ctx) (tenant.Scope, error) {
	return tenant.New(GetCompanyID(c))
}
