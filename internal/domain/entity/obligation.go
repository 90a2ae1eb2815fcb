package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationStatus estado de una cuenta por pagar o por cobrar.
type ObligationStatus string

const (
	ObligationPending   ObligationStatus = "pending"
	ObligationPaid      ObligationStatus = "paid"
	ObligationOverdue   ObligationStatus = "overdue"
	ObligationCancelled ObligationStatus = "cancelled"
)

// IsOpen: pendiente o vencida, sin importar la fecha de vencimiento.
func (s ObligationStatus) IsOpen() bool {
	return s == ObligationPending || s == ObligationOverdue
}

// Payable cuenta por pagar (salida esperada).
type Payable struct {
	ID             string
	Supplier       string
	Category       string
	AmountExpected decimal.Decimal
	DueDate        time.Time
	Status         ObligationStatus
}

// Receivable cuenta por cobrar (entrada esperada).
type Receivable struct {
	ID             string
	Reference      string
	AmountExpected decimal.Decimal
	ForecastDate   time.Time
	Status         ObligationStatus
}
