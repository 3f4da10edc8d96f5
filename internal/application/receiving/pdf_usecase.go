package receiving

import (
	"context"
	"fmt"

	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

// PDFUseCase genera el comprobante PDF de un log de recepción con su comparación de precio.
type PDFUseCase struct {
	logs      *UseCase
	companies repository.CompanyRepository
	generator ReceivingLogPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(logs *UseCase, companies repository.CompanyRepository, generator ReceivingLogPDFGenerator) *PDFUseCase {
	return &PDFUseCase{logs: logs, companies: companies, generator: generator}
}

// Download carga el log (con comparación) y la empresa, y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el log no existe en la empresa del token.
func (uc *PDFUseCase) Download(ctx context.Context, scope tenant.Scope, id string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar log con comparación ─────────────────────────────────────────
	l, err := uc.logs.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cargar empresa ─────────────────────────────────────────────────────
	company, err := uc.companies.GetByID(ctx, scope.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateReceivingLogPDF(ctx, company, l)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("recepcion_%s_%s.pdf", l.ReceivedAt.Format("20060102"), shortID(l.ID))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
