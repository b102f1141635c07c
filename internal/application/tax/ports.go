package tax

import (
	"context"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
)

// LiquidationForPDF datos que necesita el generador para la liquidación impresa.
type LiquidationForPDF struct {
	Calculation *dto.TransferTaxResponse
	Table       dto.TaxTableResponse
	Brackets    []dto.BracketResponse
}

// LiquidationPDFGenerator genera la representación en PDF de una liquidación.
type LiquidationPDFGenerator interface {
	GenerateLiquidationPDF(ctx context.Context, data LiquidationForPDF) ([]byte, error)
}
