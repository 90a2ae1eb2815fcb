package ports

import (
	"context"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

// SpreadsheetExporter puerto de salida para las planillas XLSX de los reportes.
type SpreadsheetExporter interface {
	ChannelMargin(r *dto.ChannelMarginReportDTO) ([]byte, error)
	ABCCurve(r *dto.ABCReportDTO) ([]byte, error)
	ProductMargin(r *dto.ProductMarginReportDTO) ([]byte, error)
	Pricing(r *dto.PricingReportDTO) ([]byte, error)
}

// SummaryPDFGenerator puerto de salida para el PDF del resumen financiero.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary *dto.FinancialSummaryDTO, meta dto.SummaryExportMeta) ([]byte, error)
}
