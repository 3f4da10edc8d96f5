package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
	"github.com/jhoicas/producepricer-api/pkg/apikey"
	"github.com/jhoicas/producepricer-api/pkg/logger"
)

// APIKeyUseCase alta, administración y validación de llaves de dispositivo.
type APIKeyUseCase struct {
	repo     repository.APIKeyRepository
	hashCost int
	log      *logger.Logger
}

// NewAPIKeyUseCase construye el caso de uso. hashCost es el costo bcrypt (apikey.DefaultCost en producción).
func NewAPIKeyUseCase(repo repository.APIKeyRepository, hashCost int, log *logger.Logger) *APIKeyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &APIKeyUseCase{repo: repo, hashCost: hashCost, log: log.Component("apikey")}
}

// Create genera una llave para el dispositivo. La llave en claro solo viaja en esta respuesta.
func (uc *APIKeyUseCase) Create(ctx context.Context, scope tenant.Scope, userID string, in dto.CreateAPIKeyRequest) (*dto.APIKeyCreatedResponse, error) {
	device, _, err := validName(in.DeviceName)
	if err != nil {
		return nil, fmt.Errorf("%w: device_name es requerido", domain.ErrInvalidInput)
	}
	key, err := apikey.Generate()
	if err != nil {
		return nil, err
	}
	hash, err := apikey.Hash(key.Secret, uc.hashCost)
	if err != nil {
		return nil, err
	}
	k := &entity.APIKey{
		ID:              entity.NewID(),
		CompanyID:       scope.CompanyID,
		DeviceName:      device,
		Prefix:          key.Prefix,
		SecretHash:      hash,
		IsActive:        true,
		CreatedByUserID: userID,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(ctx, scope, k); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", scope.CompanyID).Str("api_key_id", k.ID).Str("device", device).Msg("api key creada")
	return &dto.APIKeyCreatedResponse{APIKeyResponse: toAPIKeyResponse(k), Key: key.String()}, nil
}

// List llaves de la empresa (sin secretos).
func (uc *APIKeyUseCase) List(ctx context.Context, scope tenant.Scope) (*dto.APIKeyListResponse, error) {
	list, err := uc.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	items := make([]dto.APIKeyResponse, 0, len(list))
	for _, k := range list {
		items = append(items, toAPIKeyResponse(k))
	}
	return &dto.APIKeyListResponse{Items: items}, nil
}

// Revoke desactiva la llave; el dispositivo deja de autenticarse.
func (uc *APIKeyUseCase) Revoke(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.repo.SetActive(ctx, scope, id, false)
}

// Activate reactiva una llave revocada.
func (uc *APIKeyUseCase) Activate(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.repo.SetActive(ctx, scope, id, true)
}

// Delete borra la llave.
func (uc *APIKeyUseCase) Delete(ctx context.Context, scope tenant.Scope, id string) error {
	return uc.repo.Delete(ctx, scope, id)
}

// Authenticate valida una llave recibida y devuelve el tenant al que pertenece.
// Cualquier fallo (formato, inexistente, inactiva, secreto incorrecto) es domain.ErrInvalidAPIKey.
func (uc *APIKeyUseCase) Authenticate(ctx context.Context, raw string) (tenant.Scope, *entity.APIKey, error) {
	key, err := apikey.Parse(raw)
	if err != nil {
		return tenant.Scope{}, nil, domain.ErrInvalidAPIKey
	}
	k, err := uc.repo.GetByPrefix(ctx, key.Prefix)
	if err != nil {
		return tenant.Scope{}, nil, err
	}
	if k == nil || !k.IsActive || !apikey.Verify(k.SecretHash, key.Secret) {
		return tenant.Scope{}, nil, domain.ErrInvalidAPIKey
	}
	scope, err := tenant.New(k.CompanyID)
	if err != nil {
		return tenant.Scope{}, nil, err
	}
	if err := uc.repo.TouchLastUsed(ctx, k.ID, time.Now()); err != nil {
		uc.log.Warn().Err(err).Str("api_key_id", k.ID).Msg("no se pudo actualizar last_used_at")
	}
	return scope, k, nil
}

func toAPIKeyResponse(k *entity.APIKey) dto.APIKeyResponse {
	return dto.APIKeyResponse{
		ID:              k.ID,
		DeviceName:      k.DeviceName,
		Prefix:          k.Prefix,
		IsActive:        k.IsActive,
		CreatedByUserID: k.CreatedByUserID,
		CreatedAt:       k.CreatedAt,
		LastUsedAt:      k.LastUsedAt,
	}
}
