package tax

// Bracket tramo de la tabla en el que cae un valor.
type Bracket string

const (
	BracketExempt Bracket = "exempt"
	BracketLow    Bracket = "low"
	BracketHigh   Bracket = "high"
)

// Brackets lista los tramos en orden ascendente.
func Brackets() []Bracket {
	return []Bracket{BracketExempt, BracketLow, BracketHigh}
}

// Valid indica si b es uno de los tramos conocidos.
func (b Bracket) Valid() bool {
	switch b {
	case BracketExempt, BracketLow, BracketHigh:
		return true
	}
	return false
}

// Conceptos del desglose.
const (
	ConceptExemptAmount      = "exemptAmount"
	ConceptLowBracketAmount  = "lowBracketAmount"
	ConceptHighBracketAmount = "highBracketAmount"
	ConceptLowBracketTax     = "lowBracketTax"
	ConceptHighBracketTax    = "highBracketTax"
	ConceptFixedAmount       = "fixedAmount"
)

// BreakdownItem un concepto del desglose con su valor en pesos.
type BreakdownItem struct {
	Concept string
	Amount  float64
}

// Breakdown desglose del impuesto. Cada tramo tiene su propia variante;
// la interfaz es cerrada (solo la implementan los tipos de este paquete).
type Breakdown interface {
	Bracket() Bracket
	// Items devuelve los conceptos en el orden en que se presentan.
	Items() []BreakdownItem
	isBreakdown()
}

// ExemptBreakdown desglose del tramo exento.
type ExemptBreakdown struct {
	ExemptAmount float64
}

func (ExemptBreakdown) Bracket() Bracket { return BracketExempt }
func (b ExemptBreakdown) Items() []BreakdownItem {
	return []BreakdownItem{{ConceptExemptAmount, b.ExemptAmount}}
}
func (ExemptBreakdown) isBreakdown() {}

// LowBreakdown desglose del tramo bajo.
type LowBreakdown struct {
	ExemptAmount     float64
	LowBracketAmount float64
	LowBracketTax    float64
}

func (LowBreakdown) Bracket() Bracket { return BracketLow }
func (b LowBreakdown) Items() []BreakdownItem {
	return []BreakdownItem{
		{ConceptExemptAmount, b.ExemptAmount},
		{ConceptLowBracketAmount, b.LowBracketAmount},
		{ConceptLowBracketTax, b.LowBracketTax},
	}
}
func (LowBreakdown) isBreakdown() {}

// HighBreakdown desglose del tramo alto.
type HighBreakdown struct {
	ExemptAmount      float64
	LowBracketAmount  float64
	HighBracketAmount float64
	LowBracketTax     float64
	HighBracketTax    float64
	FixedAmount       float64
}

func (HighBreakdown) Bracket() Bracket { return BracketHigh }
func (b HighBreakdown) Items() []BreakdownItem {
	return []BreakdownItem{
		{ConceptExemptAmount, b.ExemptAmount},
		{ConceptLowBracketAmount, b.LowBracketAmount},
		{ConceptHighBracketAmount, b.HighBracketAmount},
		{ConceptLowBracketTax, b.LowBracketTax},
		{ConceptHighBracketTax, b.HighBracketTax},
		{ConceptFixedAmount, b.FixedAmount},
	}
}
func (HighBreakdown) isBreakdown() {}
