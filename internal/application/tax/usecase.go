// Package tax casos de uso de la calculadora del impuesto de transferencia.
// Valida la entrada del usuario (el motor de dominio no lo hace) y arma las
// respuestas con descripción, desglose ordenado y valores formateados.
package tax

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
	"github.com/jhoicas/Inmuebles-api/internal/domain"
	domaintax "github.com/jhoicas/Inmuebles-api/internal/domain/tax"
	"github.com/jhoicas/Inmuebles-api/pkg/dian"
	"github.com/jhoicas/Inmuebles-api/pkg/logger"
)

// ErrPDFUnavailable no hay generador de PDF configurado.
var ErrPDFUnavailable = errors.New("generador de PDF no configurado")

// UseCase casos de uso sobre un motor de cálculo (tabla de un año gravable).
type UseCase struct {
	engine    *domaintax.Engine
	generator LiquidationPDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se exponen PDFs.
func NewUseCase(engine *domaintax.Engine, generator LiquidationPDFGenerator, log *logger.Logger) *UseCase {
	return &UseCase{
		engine:    engine,
		generator: generator,
		log:       log,
		now:       time.Now,
	}
}

// Calculate valida el valor y calcula el impuesto.
// Retorna domain.ErrNonFiniteValue o domain.ErrNegativeValue si la entrada no es un precio válido,
// y domain.ErrInvalidInput si algún NIT informado no tiene un dígito de verificación correcto.
func (uc *UseCase) Calculate(ctx context.Context, in dto.TransferTaxRequest) (*dto.TransferTaxResponse, error) {
	if err := validateValue(in.Value); err != nil {
		return nil, err
	}
	sellerNIT, err := normalizeNIT("vendedor", in.SellerNIT)
	if err != nil {
		return nil, err
	}
	buyerNIT, err := normalizeNIT("comprador", in.BuyerNIT)
	if err != nil {
		return nil, err
	}

	r := uc.engine.CalculateTransferTax(in.Value)
	out := uc.toResponse(r, in.Label)
	out.SellerNIT = sellerNIT
	out.BuyerNIT = buyerNIT

	uc.log.Debug().
		Str("calculation_id", out.CalculationID).
		Float64("value", r.ValueInCurrency).
		Str("bracket", string(r.Bracket)).
		Float64("tax_amount", r.TaxAmount).
		Msg("impuesto de transferencia calculado")

	return out, nil
}

// Describe descripción del tramo indicado por su nombre (exempt, low, high).
func (uc *UseCase) Describe(bracket string) (*dto.BracketResponse, error) {
	b := domaintax.Bracket(bracket)
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBracket, bracket)
	}
	out := uc.bracketResponse(b)
	return &out, nil
}

// Brackets lista los tramos de la tabla vigente en orden ascendente.
func (uc *UseCase) Brackets() []dto.BracketResponse {
	bs := domaintax.Brackets()
	out := make([]dto.BracketResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, uc.bracketResponse(b))
	}
	return out
}

// Table parámetros de la tabla vigente.
func (uc *UseCase) Table() dto.TaxTableResponse {
	t := uc.engine.Table()
	return dto.TaxTableResponse{
		Year:                  t.Year,
		UnitValue:             decimal.NewFromFloat(t.UnitValue),
		ExemptThresholdUnits:  t.ExemptThresholdUnits,
		LowBracketMaxUnits:    t.LowBracketMaxUnits,
		LowRate:               t.LowRate,
		HighRate:              t.HighRate,
		HighBracketFixedUnits: t.HighBracketFixedUnits,
	}
}

// LiquidationPDF calcula el impuesto y genera la liquidación en PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - errores de validación de Calculate.
//   - ErrPDFUnavailable          si no hay generador configurado.
func (uc *UseCase) LiquidationPDF(ctx context.Context, in dto.TransferTaxRequest) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", ErrPDFUnavailable
	}
	calc, err := uc.Calculate(ctx, in)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateLiquidationPDF(ctx, LiquidationForPDF{
		Calculation: calc,
		Table:       uc.Table(),
		Brackets:    uc.Brackets(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("liquidación: generar PDF: %w", err)
	}

	uc.log.Info().
		Str("calculation_id", calc.CalculationID).
		Int("bytes", len(pdfBytes)).
		Msg("liquidación PDF generada")

	return pdfBytes, "liquidacion-" + calc.CalculationID + ".pdf", nil
}

func validateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.ErrNonFiniteValue
	}
	if v < 0 {
		return domain.ErrNegativeValue
	}
	return nil
}

// normalizeNIT valida el NIT si viene informado; vacío es válido.
func normalizeNIT(party, nit string) (string, error) {
	if nit == "" {
		return "", nil
	}
	normalized, err := dian.Validate(nit)
	if err != nil {
		return "", fmt.Errorf("%w: NIT del %s: %v", domain.ErrInvalidInput, party, err)
	}
	return normalized, nil
}

func (uc *UseCase) toResponse(r domaintax.Result, label string) *dto.TransferTaxResponse {
	items := r.Breakdown.Items()
	breakdown := make([]dto.BreakdownItemResponse, 0, len(items))
	for _, it := range items {
		breakdown = append(breakdown, dto.BreakdownItemResponse{
			Concept: it.Concept,
			Amount:  decimal.NewFromFloat(it.Amount),
		})
	}

	return &dto.TransferTaxResponse{
		CalculationID:         uuid.New().String(),
		TaxYear:               uc.engine.Table().Year,
		Label:                 label,
		ValueInCurrency:       decimal.NewFromFloat(r.ValueInCurrency),
		ValueInUnits:          r.ValueInUnits,
		ValueInUnitsFormatted: domaintax.FormatUnitValue(r.ValueInUnits),
		TaxAmount:             decimal.NewFromFloat(r.TaxAmount),
		TaxRate:               r.TaxRate,
		Bracket:               string(r.Bracket),
		BracketDescription:    uc.engine.DescribeBracket(r.Bracket),
		Breakdown:             breakdown,
		CalculatedAt:          uc.now(),
	}
}

func (uc *UseCase) bracketResponse(b domaintax.Bracket) dto.BracketResponse {
	lower, upper := uc.engine.Bounds(b)
	out := dto.BracketResponse{
		Bracket:     string(b),
		Description: uc.engine.DescribeBracket(b),
		MinUnits:    lower,
		Rate:        uc.engine.Rate(b),
	}
	if b != domaintax.BracketHigh {
		out.MaxUnits = &upper
	}
	return out
}
