package entity

import "github.com/google/uuid"

// NewID genera un uuid v7: ordenado por tiempo, así el orden lexicográfico de los ids
// sigue el orden de inserción (desempate del historial de costos).
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
