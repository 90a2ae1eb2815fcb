package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/application/usecase"
)

// ExportUseCase arma los archivos descargables: reutiliza los reportes JSON
// (misma validación, caché y métricas) y los pasa por los generadores.
type ExportUseCase struct {
	reports *usecase.AnalyticsUseCase
	summary *SummaryUseCase
	sheets  ports.SpreadsheetExporter
	pdf     ports.SummaryPDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	reports *usecase.AnalyticsUseCase,
	summary *SummaryUseCase,
	sheets ports.SpreadsheetExporter,
	pdf ports.SummaryPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{reports: reports, summary: summary, sheets: sheets, pdf: pdf}
}

// ChannelMarginXLSX GET /analytics/margem-por-canal/xlsx.
func (uc *ExportUseCase) ChannelMarginXLSX(ctx context.Context, tenantID string, req dto.PeriodRequest) ([]byte, error) {
	r, err := uc.reports.GetChannelMargin(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return wrapExport("margem-por-canal", func() ([]byte, error) { return uc.sheets.ChannelMargin(r) })
}

// ABCCurveXLSX GET /analytics/curva-abc/xlsx.
func (uc *ExportUseCase) ABCCurveXLSX(ctx context.Context, tenantID string, req dto.PeriodRequest) ([]byte, error) {
	r, err := uc.reports.GetABCCurve(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return wrapExport("curva-abc", func() ([]byte, error) { return uc.sheets.ABCCurve(r) })
}

// ProductMarginXLSX GET /analytics/margem-por-produto/xlsx.
func (uc *ExportUseCase) ProductMarginXLSX(ctx context.Context, tenantID string, req dto.PeriodRequest) ([]byte, error) {
	r, err := uc.reports.GetProductMargin(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return wrapExport("margem-por-produto", func() ([]byte, error) { return uc.sheets.ProductMargin(r) })
}

// PricingXLSX GET /analytics/precificacao-sugerida/xlsx.
func (uc *ExportUseCase) PricingXLSX(ctx context.Context, tenantID string, req dto.PricingRequest) ([]byte, error) {
	r, err := uc.reports.GetSuggestedPricing(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return wrapExport("precificacao-sugerida", func() ([]byte, error) { return uc.sheets.Pricing(r) })
}

// SummaryPDF GET /analytics/resumo-financeiro/pdf.
func (uc *ExportUseCase) SummaryPDF(ctx context.Context, tenantID string) ([]byte, error) {
	s, meta, err := uc.summary.SummaryForExport(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return wrapExport("resumo-financeiro", func() ([]byte, error) {
		return uc.pdf.GenerateSummaryPDF(ctx, s, meta)
	})
}

func wrapExport(name string, gen func() ([]byte, error)) ([]byte, error) {
	out, err := gen()
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", name, err)
	}
	return out, nil
}
