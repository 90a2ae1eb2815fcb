package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var _ repository.CatalogReader = (*CatalogRepo)(nil)

// CatalogRepo lee el catálogo vigente (costo sincronizado del ERP y precio de venta).
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// ListProducts devuelve todos los productos del tenant, activos o no, ordenados por SKU.
func (r *CatalogRepo) ListProducts(ctx context.Context, tenantID string) ([]entity.Product, error) {
	const query = `
	SELECT sku, name, COALESCE(current_cost, 0), COALESCE(current_price, 0), active
	FROM products
	WHERE tenant_id = $1
	ORDER BY sku`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("catalog.ListProducts: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.SKU, &p.Name, &p.CurrentCost, &p.CurrentPrice, &p.Active); err != nil {
			return nil, fmt.Errorf("catalog.ListProducts scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
