package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferTaxRequest entrada para calcular el impuesto de transferencia.
type TransferTaxRequest struct {
	Value     float64 `json:"value"`                // valor de venta en pesos
	Label     string  `json:"label,omitempty"`      // referencia libre del inmueble (matrícula, dirección…)
	SellerNIT string  `json:"seller_nit,omitempty"` // opcional, con DV: 900123456-8
	BuyerNIT  string  `json:"buyer_nit,omitempty"`
}

// BreakdownItemResponse un concepto del desglose.
type BreakdownItemResponse struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

// TransferTaxResponse resultado del cálculo con su desglose.
type TransferTaxResponse struct {
	CalculationID         string                  `json:"calculation_id"`
	TaxYear               int                     `json:"tax_year"`
	Label                 string                  `json:"label,omitempty"`
	SellerNIT             string                  `json:"seller_nit,omitempty"`
	BuyerNIT              string                  `json:"buyer_nit,omitempty"`
	ValueInCurrency       decimal.Decimal         `json:"value_in_currency"`
	ValueInUnits          float64                 `json:"value_in_units"`
	ValueInUnitsFormatted string                  `json:"value_in_units_formatted"`
	TaxAmount             decimal.Decimal         `json:"tax_amount"`
	TaxRate               float64                 `json:"tax_rate"`
	Bracket               string                  `json:"bracket"`
	BracketDescription    string                  `json:"bracket_description"`
	Breakdown             []BreakdownItemResponse `json:"breakdown"`
	CalculatedAt          time.Time               `json:"calculated_at"`
}

// BracketResponse descripción de un tramo de la tabla.
type BracketResponse struct {
	Bracket     string   `json:"bracket"`
	Description string   `json:"description"`
	MinUnits    float64  `json:"min_units"`
	MaxUnits    *float64 `json:"max_units,omitempty"` // nil en el tramo alto (sin tope)
	Rate        float64  `json:"rate"`
}

// TaxTableResponse parámetros de la tabla vigente.
type TaxTableResponse struct {
	Year                  int             `json:"year"`
	UnitValue             decimal.Decimal `json:"unit_value"`
	ExemptThresholdUnits  float64         `json:"exempt_threshold_units"`
	LowBracketMaxUnits    float64         `json:"low_bracket_max_units"`
	LowRate               float64         `json:"low_rate"`
	HighRate              float64         `json:"high_rate"`
	HighBracketFixedUnits float64         `json:"high_bracket_fixed_units"`
}
