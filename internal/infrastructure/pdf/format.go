package pdf

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ptBR    = message.NewPrinter(language.BrazilianPortuguese)
	titlePT = cases.Title(language.BrazilianPortuguese)
)

// formatBRL formatea en reales con separadores pt-BR. Ej: 12000.5 → "R$ 12.000,50".
// El valor ya viene redondeado a 2 decimales; el float solo se usa para presentar.
func formatBRL(v decimal.Decimal) string {
	f := v.Round(2).InexactFloat64()
	return ptBR.Sprintf("R$ %v", number.Decimal(f, number.Scale(2)))
}

// formatCount formatea un entero con separador de miles. Ej: 1234 → "1.234".
func formatCount(v decimal.Decimal) string {
	return ptBR.Sprintf("%v", number.Decimal(v.IntPart()))
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

func titleCase(s string) string {
	return titlePT.String(s)
}
