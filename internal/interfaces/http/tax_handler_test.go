package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
	"github.com/jhoicas/Inmuebles-api/internal/domain/tax"
	"github.com/jhoicas/Inmuebles-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Inmuebles-api/internal/interfaces/http"
	"github.com/jhoicas/Inmuebles-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye una aplicación Fiber con las rutas de la API.
// Si withPDF es false el caso de uso no tiene generador de PDF.
func buildTestApp(withPDF bool) *fiber.App {
	var gen apptax.LiquidationPDFGenerator
	if withPDF {
		gen = pdf.NewMarotoPDFGenerator()
	}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TaxUC: apptax.NewUseCase(tax.NewDefaultEngine(), gen, logger.Nop()),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculo
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculate_TramoAltoResponde200(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer", `{"value": 2500000000, "label": "apto 301"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "high", body["bracket"])
	assert.Equal(t, "45138000", body["tax_amount"], "los montos se serializan como decimal")
	assert.Equal(t, "apto 301", body["label"])
	assert.Equal(t, "Alta (más de 50.000,00 UVT)", body["bracket_description"])
	assert.Len(t, body["breakdown"], 6)
}

func TestCalculate_QueryConComaDecimal(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/transfer?value=1000000000,00", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TransferTaxResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "low", body.Bracket)
	assert.Equal(t, "69000", body.TaxAmount.String())
	assert.Equal(t, "20.092,43", body.ValueInUnitsFormatted)
}

func TestCalculate_NegativoResponde400(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer", `{"value": -1000000}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestCalculate_NaNEnQueryResponde400(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/transfer?value=NaN", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculate_CuerpoInvalidoResponde400(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer", `{"value": "mucho"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}

func TestCalculate_QuerySinValorResponde400(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/transfer", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tramos y tabla
// ──────────────────────────────────────────────────────────────────────────────

func TestBrackets_ListaTresTramos(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/brackets", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body []dto.BracketResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 3)
	assert.Equal(t, "Exento (menos de 20.000,00 UVT)", body[0].Description)
}

func TestDescribe_TramoDesconocidoResponde404(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/brackets/medio", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_BRACKET")
}

func TestDescribe_TramoBajo(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/brackets/low", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.BracketResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Baja (20.000,00 - 50.000,00 UVT)", body.Description)
}

func TestTable_DevuelveTablaPorDefecto(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodGet, "/api/tax/table", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.TaxTableResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, tax.DefaultTaxYear, body.Year)
	assert.Equal(t, "49770", body.UnitValue.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestLiquidationPDF_DescargaDocumento(t *testing.T) {
	app := buildTestApp(true)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer/pdf", `{"value": 1000000000}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "liquidacion-")

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestLiquidationPDF_SinGeneradorResponde503(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer/pdf", `{"value": 1000000000}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCalculate_NITInvalidoResponde400(t *testing.T) {
	app := buildTestApp(false)
	resp := doRequest(t, app, http.MethodPost, "/api/tax/transfer", `{"value": 1000000000, "seller_nit": "800197268-5"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}
