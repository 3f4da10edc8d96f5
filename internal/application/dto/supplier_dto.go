package dto

import "time"

// CreateSupplierRequest alta de marca o vendedor.
type CreateSupplierRequest struct {
	Name string `json:"name"`
}

// CreateGrowerRequest alta de productor/distribuidor.
type CreateGrowerRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// SupplierResponse marca o vendedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierListResponse lista paginada de marcas o vendedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// GrowerResponse productor/distribuidor.
type GrowerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// GrowerListResponse lista paginada de productores/distribuidores.
type GrowerListResponse struct {
	Items []GrowerResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
