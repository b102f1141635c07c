package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
	"github.com/jhoicas/Inmuebles-api/internal/domain"
)

// TaxHandler maneja los endpoints de la calculadora del impuesto de transferencia.
type TaxHandler struct {
	uc *apptax.UseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *apptax.UseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Calculate godoc
// @Summary      Calcular impuesto de transferencia
// @Description  Convierte el valor de venta a UVT, elige el tramo y devuelve el impuesto con su desglose.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferTaxRequest  true  "Valor de venta en pesos"
// @Success      200   {object}  dto.TransferTaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tax/transfer [post]
func (h *TaxHandler) Calculate(c *fiber.Ctx) error {
	var in dto.TransferTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Calculate(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CalculateQuery godoc
// @Summary      Calcular impuesto de transferencia (query)
// @Tags         tax
// @Produce      json
// @Param        value  query  string  true   "Valor de venta en pesos (acepta coma decimal)"
// @Param        label  query  string  false  "Referencia del inmueble"
// @Success      200    {object}  dto.TransferTaxResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/tax/transfer [get]
func (h *TaxHandler) CalculateQuery(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("value"))
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "value es requerido"})
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "value debe ser numérico"})
	}
	out, err := h.uc.Calculate(c.Context(), dto.TransferTaxRequest{Value: value, Label: c.Query("label")})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LiquidationPDF godoc
// @Summary      Descargar liquidación en PDF
// @Tags         tax
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.TransferTaxRequest  true  "Valor de venta en pesos"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/tax/transfer/pdf [post]
func (h *TaxHandler) LiquidationPDF(c *fiber.Ctx) error {
	var in dto.TransferTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pdfBytes, filename, err := h.uc.LiquidationPDF(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Brackets godoc
// @Summary      Listar tramos vigentes
// @Tags         tax
// @Produce      json
// @Success      200  {array}  dto.BracketResponse
// @Router       /api/tax/brackets [get]
func (h *TaxHandler) Brackets(c *fiber.Ctx) error {
	return c.JSON(h.uc.Brackets())
}

// Describe godoc
// @Summary      Describir un tramo
// @Tags         tax
// @Produce      json
// @Param        bracket  path  string  true  "exempt | low | high"
// @Success      200  {object}  dto.BracketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tax/brackets/{bracket} [get]
func (h *TaxHandler) Describe(c *fiber.Ctx) error {
	out, err := h.uc.Describe(c.Params("bracket"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Table godoc
// @Summary      Tabla del impuesto vigente
// @Tags         tax
// @Produce      json
// @Success      200  {object}  dto.TaxTableResponse
// @Router       /api/tax/table [get]
func (h *TaxHandler) Table(c *fiber.Ctx) error {
	return c.JSON(h.uc.Table())
}

// writeError traduce los errores de dominio a códigos HTTP.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNegativeValue), errors.Is(err, domain.ErrNonFiniteValue),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownBracket):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_BRACKET", Message: err.Error()})
	case errors.Is(err, apptax.ErrPDFUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
