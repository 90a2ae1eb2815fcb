// Package finance contiene los servicios de dominio de analítica financiera:
// atribución de costos, margen por canal, curva ABC, precificación sugerida,
// resumen financiero y DRE mensual.
//
// Todas las funciones son puras: dependen solo del snapshot y de los parámetros
// explícitos (rango, instante de referencia, márgenes objetivo). No leen el reloj
// del sistema ni hacen I/O, y mantienen precisión decimal completa; el redondeo
// ocurre una sola vez, al serializar.
package finance

import (
	"fmt"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain"
)

// DateRange intervalo [Start, End) sobre instantes. Un límite en cero significa "sin límite".
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange construye el rango a partir de días inclusivos: first 00:00 hasta el final de last.
// first y last se truncan al inicio del día en su propia zona horaria; cualquiera puede ser cero.
func NewDateRange(first, last time.Time) (DateRange, error) {
	var r DateRange
	if !first.IsZero() {
		r.Start = startOfDay(first)
	}
	if !last.IsZero() {
		r.End = startOfDay(last).AddDate(0, 0, 1)
	}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// TrailingDays rango de los últimos n días terminando hoy (inclusive), hoy según today.
func TrailingDays(today time.Time, n int) DateRange {
	end := startOfDay(today).AddDate(0, 0, 1)
	return DateRange{Start: end.AddDate(0, 0, -n), End: end}
}

// Validate verifica que Start no sea posterior al fin del rango.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && !r.Start.Before(r.End) {
		return fmt.Errorf("%w: inicio %s posterior al fin %s",
			domain.ErrInvalidDateRange, r.Start.Format(time.DateOnly), r.LastDay().Format(time.DateOnly))
	}
	return nil
}

// Contains reporta si t cae dentro del rango.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// LastDay último día incluido (cero si no hay límite superior).
func (r DateRange) LastDay() time.Time {
	if r.End.IsZero() {
		return time.Time{}
	}
	return r.End.AddDate(0, 0, -1)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
