package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout repasse: liquidación de un canal al vendedor para un período.
type Payout struct {
	ID              string
	PeriodReference string    // ej: "2026-09/2"
	SettledOn       time.Time // fecha en que el repasse fue acreditado
	GrossAmount     decimal.Decimal
	NetAmount       decimal.Decimal
}
