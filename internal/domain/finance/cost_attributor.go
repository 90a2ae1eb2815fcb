package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// ExclusionReason motivo por el que un registro quedó fuera de la agregación.
type ExclusionReason string

const (
	ReasonNetAboveGross   ExclusionReason = "net_above_gross"
	ReasonNegativeTotal   ExclusionReason = "negative_total"
	ReasonDuplicateRecord ExclusionReason = "duplicate_record"
	ReasonInvalidLine     ExclusionReason = "invalid_line"
	ReasonNegativeCost    ExclusionReason = "negative_cost"
	ReasonUnknownCostKind ExclusionReason = "unknown_cost_kind"
	ReasonUnknownLineItem ExclusionReason = "unknown_line_item"
	ReasonOrphanRecord    ExclusionReason = "orphan_record"
	ReasonMissingCost     ExclusionReason = "missing_cost_attribution"
	ReasonInvalidProduct  ExclusionReason = "invalid_product"
)

// Exclusion registro omitido. Un registro malformado degrada la precisión, no la disponibilidad.
type Exclusion struct {
	RecordID string
	Reason   ExclusionReason
}

// Attribution costo total atribuido y su desglose por tipo.
type Attribution struct {
	Total  decimal.Decimal
	ByKind map[entity.CostKind]decimal.Decimal
}

// Of devuelve el costo de un tipo (cero si no hay).
func (a Attribution) Of(kind entity.CostKind) decimal.Decimal {
	return a.ByKind[kind]
}

func (a *Attribution) add(kind entity.CostKind, amount decimal.Decimal) {
	if a.ByKind == nil {
		a.ByKind = make(map[entity.CostKind]decimal.Decimal, len(entity.CostKinds))
	}
	a.ByKind[kind] = a.ByKind[kind].Add(amount)
	a.Total = a.Total.Add(amount)
}

// AttributedLine línea con su costo atribuido (entradas de la línea + COGS implícito).
type AttributedLine struct {
	Item entity.OrderLineItem
	Cost decimal.Decimal
}

// AttributedOrder pedido bien formado con sus líneas y costo atribuido.
// CostMissing indica que no hay ninguna fuente de COGS: sirve para ingresos pero no para márgenes.
type AttributedOrder struct {
	Order       entity.Order
	Lines       []AttributedLine
	Cost        Attribution
	CostMissing bool
}

// CostAttributor resuelve el costo atribuible (COGS + fee + shipping + marketing + tax)
// de cada pedido y línea a partir de las entradas de costo crudas.
//
// Reglas:
//   - costo del pedido = Σ entradas (a nivel de pedido y de línea) + COGS implícito;
//   - COGS implícito = cantidad × unit_cost de cada línea sin entrada cogs propia,
//     solo si el pedido no tiene una entrada cogs a nivel de pedido;
//   - pedidos cancelados se ignoran (no son malformados);
//   - un pedido malformado se excluye completo y queda registrado en Exclusions.
type CostAttributor struct {
	orders     []AttributedOrder
	exclusions []Exclusion
}

type orderState struct {
	order       entity.Order
	lines       []entity.OrderLineItem
	costs       []entity.CostEntry
	badReason   ExclusionReason
	hasCOGS     bool // entrada cogs a nivel de pedido
	lineHasCOGS map[string]bool
}

// NewCostAttributor indexa y valida el snapshot. No modifica el snapshot.
func NewCostAttributor(s *entity.LedgerSnapshot) *CostAttributor {
	a := &CostAttributor{}
	if s == nil {
		return a
	}

	states := make(map[string]*orderState, len(s.Orders))
	sequence := make([]*orderState, 0, len(s.Orders))
	skipped := make(map[string]bool)
	skippedDup := make(map[string]bool)

	// Un id repetido excluye el id completo junto con sus líneas y costos.
	for _, o := range s.Orders {
		if st, dup := states[o.ID]; dup {
			st.badReason = ReasonDuplicateRecord
			continue
		}
		if skipped[o.ID] {
			if !skippedDup[o.ID] {
				skippedDup[o.ID] = true
				a.exclude(o.ID, ReasonDuplicateRecord)
			}
			continue
		}
		if o.IsCancelled() {
			skipped[o.ID] = true
			continue
		}
		st := &orderState{order: o, lineHasCOGS: make(map[string]bool)}
		switch {
		case o.GrossTotal.IsNegative() || o.NetTotal.IsNegative():
			st.badReason = ReasonNegativeTotal
		case o.NetTotal.GreaterThan(o.GrossTotal):
			st.badReason = ReasonNetAboveGross
		}
		states[o.ID] = st
		sequence = append(sequence, st)
	}

	lineOwner := make(map[string]string, len(s.Items))
	for _, it := range s.Items {
		st, ok := states[it.OrderID]
		if !ok {
			if !skipped[it.OrderID] {
				a.exclude(it.ID, ReasonOrphanRecord)
			}
			continue
		}
		if !it.Quantity.IsPositive() || it.UnitPrice.IsNegative() || it.UnitCost.IsNegative() {
			st.markBad(ReasonInvalidLine)
		}
		st.lines = append(st.lines, it)
		lineOwner[it.ID] = it.OrderID
	}

	for _, c := range s.Costs {
		st, ok := states[c.OrderID]
		if !ok {
			if !skipped[c.OrderID] {
				a.exclude(c.OrderID, ReasonOrphanRecord)
			}
			continue
		}
		switch {
		case !c.Kind.Valid():
			st.markBad(ReasonUnknownCostKind)
		case c.Amount.IsNegative():
			st.markBad(ReasonNegativeCost)
		case c.LineItemID != "" && lineOwner[c.LineItemID] != c.OrderID:
			st.markBad(ReasonUnknownLineItem)
		}
		if c.Kind == entity.CostKindCOGS {
			if c.LineItemID == "" {
				st.hasCOGS = true
			} else {
				st.lineHasCOGS[c.LineItemID] = true
			}
		}
		st.costs = append(st.costs, c)
	}

	for _, st := range sequence {
		if st.badReason != "" {
			a.exclude(st.order.ID, st.badReason)
			continue
		}
		a.orders = append(a.orders, st.attribute())
	}
	return a
}

func (st *orderState) markBad(reason ExclusionReason) {
	if st.badReason == "" {
		st.badReason = reason
	}
}

func (st *orderState) attribute() AttributedOrder {
	ao := AttributedOrder{Order: st.order, Lines: make([]AttributedLine, 0, len(st.lines))}

	lineCost := make(map[string]decimal.Decimal, len(st.lines))
	for _, c := range st.costs {
		ao.Cost.add(c.Kind, c.Amount)
		if c.LineItemID != "" {
			lineCost[c.LineItemID] = lineCost[c.LineItemID].Add(c.Amount)
		}
	}

	costSource := st.hasCOGS || len(st.lineHasCOGS) > 0
	for _, it := range st.lines {
		cost := lineCost[it.ID]
		if !st.hasCOGS && !st.lineHasCOGS[it.ID] && it.UnitCost.IsPositive() {
			implied := it.Quantity.Mul(it.UnitCost)
			ao.Cost.add(entity.CostKindCOGS, implied)
			cost = cost.Add(implied)
			costSource = true
		}
		ao.Lines = append(ao.Lines, AttributedLine{Item: it, Cost: cost})
	}
	ao.CostMissing = !costSource
	return ao
}

func (a *CostAttributor) exclude(id string, reason ExclusionReason) {
	a.exclusions = append(a.exclusions, Exclusion{RecordID: id, Reason: reason})
}

// Orders pedidos bien formados en el orden del snapshot (incluye los que no tienen costo).
func (a *CostAttributor) Orders() []AttributedOrder {
	return a.orders
}

// Exclusions registros omitidos. Con requireCost también lista los pedidos sin atribución de costo,
// que los reportes de margen y resultado descartan.
func (a *CostAttributor) Exclusions(requireCost bool) []Exclusion {
	out := make([]Exclusion, 0, len(a.exclusions))
	out = append(out, a.exclusions...)
	if requireCost {
		for _, o := range a.orders {
			if o.CostMissing {
				out = append(out, Exclusion{RecordID: o.Order.ID, Reason: ReasonMissingCost})
			}
		}
	}
	return out
}

// OrderCost costo total atribuido a un pedido bien formado.
func (a *CostAttributor) OrderCost(orderID string) (Attribution, bool) {
	for _, o := range a.orders {
		if o.Order.ID == orderID {
			return o.Cost, !o.CostMissing
		}
	}
	return Attribution{}, false
}
