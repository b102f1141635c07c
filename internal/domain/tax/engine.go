package tax

// Result resultado de un cálculo. Es un valor: el llamador no debe modificarlo.
type Result struct {
	ValueInCurrency float64 // valor de entrada en pesos, sin cambios
	ValueInUnits    float64 // valor en UVT, sin redondeo
	TaxAmount       float64
	TaxRate         float64 // tarifa marginal del tramo alcanzado (0 si exento)
	Bracket         Bracket
	Breakdown       Breakdown
}

// Engine calcula el impuesto de transferencia sobre una tabla inmutable.
// Es seguro para uso concurrente.
type Engine struct {
	table Table
}

// NewEngine construye el motor validando la tabla.
func NewEngine(table Table) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Engine{table: table}, nil
}

// NewDefaultEngine motor con DefaultTable.
func NewDefaultEngine() *Engine {
	return &Engine{table: DefaultTable}
}

// Table devuelve una copia de la tabla del motor.
func (e *Engine) Table() Table {
	return e.table
}

// CalculateTransferTax convierte el valor de venta a UVT, elige el tramo
// (límites inclusivos hacia el tramo menor) y aplica su fórmula.
// Nunca falla: cero y negativos caen en el tramo exento.
func (e *Engine) CalculateTransferTax(valueInCurrency float64) Result {
	t := e.table
	valueInUnits := valueInCurrency / t.UnitValue

	switch {
	case valueInUnits <= t.ExemptThresholdUnits:
		return Result{
			ValueInCurrency: valueInCurrency,
			ValueInUnits:    valueInUnits,
			Bracket:         BracketExempt,
			Breakdown:       ExemptBreakdown{ExemptAmount: valueInCurrency},
		}

	case valueInUnits <= t.LowBracketMaxUnits:
		exemptAmount := t.ExemptAmount()
		taxableAmount := valueInCurrency - exemptAmount
		lowBracketTax := float64(taxableAmount * t.LowRate)
		return Result{
			ValueInCurrency: valueInCurrency,
			ValueInUnits:    valueInUnits,
			TaxAmount:       lowBracketTax,
			TaxRate:         t.LowRate,
			Bracket:         BracketLow,
			Breakdown: LowBreakdown{
				ExemptAmount:     exemptAmount,
				LowBracketAmount: taxableAmount,
				LowBracketTax:    lowBracketTax,
			},
		}

	default:
		exemptAmount := t.ExemptAmount()
		lowBracketAmount := t.LowBracketAmount()
		highBracketAmount := valueInCurrency - (exemptAmount + lowBracketAmount)
		fixedAmount := t.FixedAmount()
		lowBracketTax := float64(lowBracketAmount * t.LowRate)
		highBracketTax := float64(highBracketAmount * t.HighRate)
		return Result{
			ValueInCurrency: valueInCurrency,
			ValueInUnits:    valueInUnits,
			TaxAmount:       lowBracketTax + highBracketTax + fixedAmount,
			TaxRate:         t.HighRate,
			Bracket:         BracketHigh,
			Breakdown: HighBreakdown{
				ExemptAmount:      exemptAmount,
				LowBracketAmount:  lowBracketAmount,
				HighBracketAmount: highBracketAmount,
				LowBracketTax:     lowBracketTax,
				HighBracketTax:    highBracketTax,
				FixedAmount:       fixedAmount,
			},
		}
	}
}

// DescribeBracket descripción en español del tramo con los límites de la tabla.
// Devuelve "" para un tramo desconocido.
func (e *Engine) DescribeBracket(b Bracket) string {
	exempt := FormatUnitValue(e.table.ExemptThresholdUnits)
	lowMax := FormatUnitValue(e.table.LowBracketMaxUnits)
	switch b {
	case BracketExempt:
		return "Exento (menos de " + exempt + " UVT)"
	case BracketLow:
		return "Baja (" + exempt + " - " + lowMax + " UVT)"
	case BracketHigh:
		return "Alta (más de " + lowMax + " UVT)"
	}
	return ""
}

// Bounds límites en UVT del tramo. upper = 0 en el tramo alto (sin tope).
func (e *Engine) Bounds(b Bracket) (lower, upper float64) {
	switch b {
	case BracketExempt:
		return 0, e.table.ExemptThresholdUnits
	case BracketLow:
		return e.table.ExemptThresholdUnits, e.table.LowBracketMaxUnits
	case BracketHigh:
		return e.table.LowBracketMaxUnits, 0
	}
	return 0, 0
}

// Rate tarifa marginal del tramo.
func (e *Engine) Rate(b Bracket) float64 {
	switch b {
	case BracketLow:
		return e.table.LowRate
	case BracketHigh:
		return e.table.HighRate
	}
	return 0
}
