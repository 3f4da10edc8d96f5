// Package analytics contiene los reportes de lectura sobre el historial de costos:
// la hoja de precios de materia prima y su versión PDF.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/domain/repository"
	"github.com/jhoicas/producepricer-api/internal/domain/tenant"
)

var hundred = decimal.NewFromInt(100)

// PriceSheetPDFOptions opciones de presentación del PDF.
type PriceSheetPDFOptions struct {
	Title        string
	HidePrevious bool // oculta costo anterior y variación
}

// RawPriceSheetPDFGenerator genera el PDF de la hoja de precios (infrastructure/pdf).
type RawPriceSheetPDFGenerator interface {
	GenerateRawPriceSheetPDF(ctx context.Context, sheet *dto.RawPriceSheetResponse, opts PriceSheetPDFOptions) ([]byte, error)
}

// PriceSheetUseCase arma la hoja de precios de materia prima de la empresa.
//
// Fuente de datos: PriceSheetRepository (consulta read-only) y CompanyRepository.
type PriceSheetUseCase struct {
	sheetRepo   repository.PriceSheetRepository
	companyRepo repository.CompanyRepository
	generator   RawPriceSheetPDFGenerator
}

// NewPriceSheetUseCase construye el caso de uso.
func NewPriceSheetUseCase(
	sheetRepo repository.PriceSheetRepository,
	companyRepo repository.CompanyRepository,
	generator RawPriceSheetPDFGenerator,
) *PriceSheetUseCase {
	return &PriceSheetUseCase{sheetRepo: sheetRepo, companyRepo: companyRepo, generator: generator}
}

// GetRawPriceSheet una fila por materia prima: último costo, anterior, promedio y variación.
//
// Dos llamadas en paralelo:
//  1. CompanyRepository.GetByID  → CompanyName
//  2. GetRawPriceSheet           → Items
func (uc *PriceSheetUseCase) GetRawPriceSheet(ctx context.Context, scope tenant.Scope) (*dto.RawPriceSheetResponse, error) {
	if !scope.Valid() {
		return nil, domain.ErrMissingTenant
	}

	type companyResult struct {
		company *entity.Company
		err     error
	}
	type rowsResult struct {
		rows []repository.RawPriceSheetRow
		err  error
	}
	companyCh := make(chan companyResult, 1)
	rowsCh := make(chan rowsResult, 1)

	go func() {
		c, err := uc.companyRepo.GetByID(ctx, scope.CompanyID)
		companyCh <- companyResult{c, err}
	}()
	go func() {
		rows, err := uc.sheetRepo.GetRawPriceSheet(ctx, scope)
		rowsCh <- rowsResult{rows, err}
	}()

	company := <-companyCh
	rows := <-rowsCh

	if company.err != nil {
		return nil, fmt.Errorf("price sheet: empresa: %w", company.err)
	}
	if company.company == nil {
		return nil, domain.ErrNotFound
	}
	if rows.err != nil {
		return nil, fmt.Errorf("price sheet: filas: %w", rows.err)
	}

	items := make([]dto.RawPriceSheetItem, 0, len(rows.rows))
	for _, r := range rows.rows {
		items = append(items, toItem(r))
	}
	return &dto.RawPriceSheetResponse{
		CompanyName: company.company.Name,
		GeneratedAt: time.Now().UTC(),
		Items:       items,
	}, nil
}

// DownloadPDF genera el PDF de la hoja de precios.
func (uc *PriceSheetUseCase) DownloadPDF(ctx context.Context, scope tenant.Scope, hidePrevious bool) (pdfBytes []byte, filename string, err error) {
	sheet, err := uc.GetRawPriceSheet(ctx, scope)
	if err != nil {
		return nil, "", err
	}
	opts := PriceSheetPDFOptions{
		Title:        "Hoja de precios de materia prima · " + monthLabel(sheet.GeneratedAt),
		HidePrevious: hidePrevious,
	}
	pdfBytes, err = uc.generator.GenerateRawPriceSheetPDF(ctx, sheet, opts)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("hoja_precios_%s.pdf", sheet.GeneratedAt.Format("20060102"))
	return pdfBytes, filename, nil
}

func toItem(r repository.RawPriceSheetRow) dto.RawPriceSheetItem {
	it := dto.RawPriceSheetItem{
		RawProductID: r.RawProductID,
		Name:         r.RawProductName,
		EntryCount:   r.EntryCount,
	}
	if r.Latest != nil {
		cost, date := r.Latest.Cost, r.Latest.Date.Format(dto.DateLayout)
		it.LatestCost, it.LatestDate = &cost, &date
	}
	if r.Previous != nil {
		cost, date := r.Previous.Cost, r.Previous.Date.Format(dto.DateLayout)
		it.PreviousCost, it.PreviousDate = &cost, &date
	}
	if r.Average != nil {
		avg := r.Average.Round(2)
		it.AverageCost = &avg
	}
	if r.Latest != nil && r.Previous != nil {
		change := r.Latest.Cost.Sub(r.Previous.Cost)
		it.Change = &change
		// sin porcentaje si el costo anterior es cero
		if r.Previous.Cost.IsPositive() {
			pct := change.Div(r.Previous.Cost).Mul(hundred).Round(2)
			it.ChangePercent = &pct
		}
	}
	return it
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
