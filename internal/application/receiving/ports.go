package receiving

import (
	"context"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
)

// ReceivingLogPDFGenerator genera el comprobante PDF de una recepción.
// La implementación vive en infrastructure/pdf.
type ReceivingLogPDFGenerator interface {
	GenerateReceivingLogPDF(ctx context.Context, company *entity.Company, log *dto.ReceivingLogResponse) ([]byte, error)
}
