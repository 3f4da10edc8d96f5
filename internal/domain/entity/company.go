package entity

import "time"

// Estados de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema. Todo lo demás cuelga de ella.
type Company struct {
	ID         string
	Name       string
	AdminEmail string // único en todo el sistema
	Status     string // active, suspended
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
