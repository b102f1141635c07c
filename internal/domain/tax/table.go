// Package tax implementa el cálculo del impuesto de transferencia de inmuebles
// sobre una tabla progresiva expresada en UVT (Unidad de Valor Tributario).
//
// Tramos (con los valores por defecto):
//
//	0       – 20.000 UVT   exento
//	20.000  – 50.000 UVT   1,5 % sobre el excedente de 20.000 UVT
//	> 50.000 UVT           1,5 % del tramo bajo completo + 3 % del excedente + 450 UVT fijos
package tax

import (
	"fmt"

	"github.com/jhoicas/Inmuebles-api/internal/domain"
)

// Valores de la tabla por defecto.
const (
	DefaultTaxYear               = 2025
	DefaultUnitValue             = 49770.0 // COP por UVT
	DefaultExemptThresholdUnits  = 20000.0
	DefaultLowBracketMaxUnits    = 50000.0
	DefaultLowRate               = 0.015
	DefaultHighRate              = 0.03
	DefaultHighBracketFixedUnits = 450.0
)

// Table agrupa los parámetros de la tabla de tramos para un año gravable.
// Se pasa por valor y nunca se modifica después de construida.
type Table struct {
	Year                  int
	UnitValue             float64 // valor de 1 UVT en pesos
	ExemptThresholdUnits  float64 // límite superior (UVT) del tramo exento
	LowBracketMaxUnits    float64 // límite superior (UVT) del tramo bajo
	LowRate               float64 // tarifa del tramo bajo (fracción)
	HighRate              float64 // tarifa del tramo alto (fracción)
	HighBracketFixedUnits float64 // valor fijo (UVT) que se suma al entrar al tramo alto
}

// DefaultTable tabla vigente por defecto.
var DefaultTable = Table{
	Year:                  DefaultTaxYear,
	UnitValue:             DefaultUnitValue,
	ExemptThresholdUnits:  DefaultExemptThresholdUnits,
	LowBracketMaxUnits:    DefaultLowBracketMaxUnits,
	LowRate:               DefaultLowRate,
	HighRate:              DefaultHighRate,
	HighBracketFixedUnits: DefaultHighBracketFixedUnits,
}

// Validate verifica los invariantes de la tabla.
func (t Table) Validate() error {
	if !(t.UnitValue > 0) {
		return fmt.Errorf("%w: el valor de la UVT debe ser positivo", domain.ErrInvalidTaxTable)
	}
	if !(t.ExemptThresholdUnits > 0) || !(t.ExemptThresholdUnits < t.LowBracketMaxUnits) {
		return fmt.Errorf("%w: se requiere 0 < tramo exento (%v) < tramo bajo (%v)",
			domain.ErrInvalidTaxTable, t.ExemptThresholdUnits, t.LowBracketMaxUnits)
	}
	if !validRate(t.LowRate) || !validRate(t.HighRate) {
		return fmt.Errorf("%w: las tarifas deben estar entre 0 y 1", domain.ErrInvalidTaxTable)
	}
	if !(t.HighBracketFixedUnits >= 0) {
		return fmt.Errorf("%w: el valor fijo del tramo alto no puede ser negativo", domain.ErrInvalidTaxTable)
	}
	return nil
}

// ExemptAmount límite del tramo exento en pesos.
func (t Table) ExemptAmount() float64 {
	return float64(t.ExemptThresholdUnits * t.UnitValue)
}

// LowBracketAmount ancho completo del tramo bajo en pesos.
func (t Table) LowBracketAmount() float64 {
	return float64((t.LowBracketMaxUnits - t.ExemptThresholdUnits) * t.UnitValue)
}

// FixedAmount valor fijo del tramo alto en pesos.
func (t Table) FixedAmount() float64 {
	return float64(t.HighBracketFixedUnits * t.UnitValue)
}

func validRate(r float64) bool {
	return r >= 0 && r <= 1
}
