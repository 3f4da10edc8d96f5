package dto

import "time"

// CreateAPIKeyRequest alta de una llave para un dispositivo.
type CreateAPIKeyRequest struct {
	DeviceName string `json:"device_name"`
}

// APIKeyResponse llave sin secreto.
type APIKeyResponse struct {
	ID              string     `json:"id"`
	DeviceName      string     `json:"device_name"`
	Prefix          string     `json:"prefix"`
	IsActive        bool       `json:"is_active"`
	CreatedByUserID string     `json:"created_by_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUsedAt      *time.Time `json:"last_used_at"`
}

// APIKeyCreatedResponse incluye la llave en claro; solo se muestra una vez.
type APIKeyCreatedResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

// APIKeyListResponse llaves de la empresa.
type APIKeyListResponse struct {
	Items []APIKeyResponse `json:"items"`
}
