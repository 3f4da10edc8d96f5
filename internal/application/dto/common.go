package dto

// DateLayout formato de fechas de calendario en entrada y salida (YYYY-MM-DD).
const DateLayout = "2006-01-02"

const (
	defaultLimit = 20
	maxLimit     = 100
)

// PageRequest búsqueda y paginación para listados.
type PageRequest struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o se salen de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
