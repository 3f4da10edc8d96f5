package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/producepricer-api/internal/application/analytics"
	"github.com/jhoicas/producepricer-api/internal/application/dto"
	"github.com/jhoicas/producepricer-api/internal/domain/entity"
	"github.com/jhoicas/producepricer-api/internal/infrastructure/pdf"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func str(s string) *string { return &s }

func TestGenerateReceivingLogPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("ProducePricer")
	log := &dto.ReceivingLogResponse{
		ID:                      "0190f0a2-0000-7000-8000-000000000001",
		RawProductName:          "Tomate Roma",
		PackSize:                *dec("25"),
		PackSizeUnit:            "lb",
		QuantityReceived:        40,
		BrandName:               "Sol",
		SellerName:              "Mercado Central",
		GrowerOrDistributorName: "Rancho X",
		CountryOfOrigin:         "México",
		HoldOrUsed:              entity.ReceivingUsed,
		ReceivedAt:              time.Date(2024, 3, 31, 14, 0, 0, 0, time.UTC),
		PricePaid:               dec("11"),
		PriceComparison: &dto.PriceComparisonResponse{
			MarketCost:     dec("12"),
			MarketCostDate: str("2024-03-25"),
			PricePaid:      dec("11"),
			Delta:          dec("-1"),
			Percentage:     dec("-8.33"),
			Classification: "below_market",
		},
	}

	b, err := g.GenerateReceivingLogPDF(context.Background(), &entity.Company{Name: "Frutas A"}, log)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateReceivingLogPDF_SinComparacion(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("")
	b, err := g.GenerateReceivingLogPDF(context.Background(), &entity.Company{Name: "Frutas A"}, &dto.ReceivingLogResponse{ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateRawPriceSheetPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("ProducePricer")
	sheet := &dto.RawPriceSheetResponse{
		CompanyName: "Frutas A",
		GeneratedAt: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []dto.RawPriceSheetItem{
			{Name: "Apio", LatestCost: dec("4"), LatestDate: str("2024-03-20"), PreviousCost: dec("3.5"),
				ChangePercent: dec("14.29"), AverageCost: dec("3.5"), EntryCount: 3},
			{Name: "Betabel"},
		},
	}
	for _, hide := range []bool{false, true} {
		b, err := g.GenerateRawPriceSheetPDF(context.Background(), sheet, analytics.PriceSheetPDFOptions{HidePrevious: hide})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(b[:4]))
	}

	empty, err := g.GenerateRawPriceSheetPDF(context.Background(), &dto.RawPriceSheetResponse{CompanyName: "Vacía"}, analytics.PriceSheetPDFOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
