package repository

import (
	"context"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// LedgerReader entrega snapshots de solo lectura de pedidos, líneas y costos.
// from es inclusivo y to exclusivo; un time.Time cero significa "sin límite" de ese lado.
// Las implementaciones pueden devolver registros fuera del rango: el dominio vuelve a filtrar.
type LedgerReader interface {
	ReadLedger(ctx context.Context, tenantID string, from, to time.Time) (*entity.LedgerSnapshot, error)
}

// FinanceReader entrega cuentas por pagar/cobrar y repasses.
//
// Debe incluir:
//   - todas las cuentas abiertas (pending/overdue) sin importar el vencimiento;
//   - las cuentas pagadas con vencimiento en [from, to);
//   - los repasses acreditados en [from, to).
type FinanceReader interface {
	ReadFinance(ctx context.Context, tenantID string, from, to time.Time) (*entity.FinanceSnapshot, error)
}

// CatalogReader entrega el catálogo vigente (costo y precio actuales por SKU).
type CatalogReader interface {
	ListProducts(ctx context.Context, tenantID string) ([]entity.Product, error)
}
