package entity

import "time"

// APIKey llave de un dispositivo (tablet de recepción) atada a una empresa.
// Solo se guarda el prefijo en claro y el hash bcrypt del secreto.
type APIKey struct {
	ID              string
	CompanyID       string
	DeviceName      string
	Prefix          string // único
	SecretHash      string
	IsActive        bool
	CreatedByUserID string
	CreatedAt       time.Time
	LastUsedAt      *time.Time
}
