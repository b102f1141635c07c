// liquidar calcula el impuesto de transferencia desde la línea de comandos.
//
// Uso:
//
//	go run ./cmd/liquidar -valor 2500000000
//	go run ./cmd/liquidar -valor 1.000.000.000 -json
//	go run ./cmd/liquidar -csv inmuebles.csv -encoding latin1
//	go run ./cmd/liquidar -valor 2500000000 -pdf liquidacion.pdf
//
// El CSV tiene dos columnas: referencia,valor. Una primera fila cuyo valor no
// sea numérico se trata como encabezado. La tabla se toma de la misma
// configuración que la API (TAX_UVT_VALUE, TAX_EXEMPT_UVT, …).
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inmuebles-api/internal/application/dto"
	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
	"github.com/jhoicas/Inmuebles-api/internal/domain/tax"
	infrapdf "github.com/jhoicas/Inmuebles-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Inmuebles-api/pkg/config"
	"github.com/jhoicas/Inmuebles-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Output: os.Stderr})

	engine, err := tax.NewEngine(cfg.Tax.Table())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tabla del impuesto: %v\n", err)
		os.Exit(1)
	}
	uc := apptax.NewUseCase(engine, infrapdf.NewMarotoPDFGenerator(), log)

	if err := run(context.Background(), uc, log, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type options struct {
	valor    string
	label    string
	seller   string
	buyer    string
	csvPath  string
	encoding string
	pdfPath  string
	asJSON   bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("liquidar", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.valor, "valor", "", "valor de venta en pesos (acepta 1.000.000,50)")
	fs.StringVar(&o.label, "ref", "", "referencia del inmueble")
	fs.StringVar(&o.seller, "nit-vendedor", "", "NIT del vendedor con DV (900123456-8)")
	fs.StringVar(&o.buyer, "nit-comprador", "", "NIT del comprador con DV")
	fs.StringVar(&o.csvPath, "csv", "", "archivo CSV referencia,valor para liquidar en lote")
	fs.StringVar(&o.encoding, "encoding", "utf8", "codificación del CSV: utf8, latin1, windows1252")
	fs.StringVar(&o.pdfPath, "pdf", "", "escribe la liquidación en PDF en esta ruta")
	fs.BoolVar(&o.asJSON, "json", false, "salida en JSON")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if (o.valor == "") == (o.csvPath == "") {
		return o, errors.New("indique -valor o -csv (uno de los dos)")
	}
	if o.pdfPath != "" && o.csvPath != "" {
		return o, errors.New("-pdf solo aplica con -valor")
	}
	return o, nil
}

func run(ctx context.Context, uc *apptax.UseCase, log *logger.Logger, args []string, out io.Writer) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	var reqs []dto.TransferTaxRequest
	if o.csvPath != "" {
		reqs, err = readCSV(o.csvPath, o.encoding, log)
		if err != nil {
			return err
		}
	} else {
		v, err := parseCOP(o.valor)
		if err != nil {
			return fmt.Errorf("valor %q: %w", o.valor, err)
		}
		reqs = []dto.TransferTaxRequest{{Value: v, Label: o.label, SellerNIT: o.seller, BuyerNIT: o.buyer}}
	}

	if o.pdfPath != "" {
		pdfBytes, _, err := uc.LiquidationPDF(ctx, reqs[0])
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.pdfPath, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("escribir PDF: %w", err)
		}
		fmt.Fprintf(out, "PDF escrito en %s (%d bytes)\n", o.pdfPath, len(pdfBytes))
		return nil
	}

	results := make([]*dto.TransferTaxResponse, 0, len(reqs))
	for _, r := range reqs {
		res, err := uc.Calculate(ctx, r)
		if err != nil {
			if o.csvPath == "" {
				return err
			}
			log.Warn().Err(err).Str("ref", r.Label).Msg("fila omitida")
			continue
		}
		results = append(results, res)
	}

	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if o.csvPath == "" {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}
	return writeTable(out, results)
}

func writeTable(out io.Writer, results []*dto.TransferTaxResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Referencia\tValor\tUVT\tTramo\tImpuesto\t")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			nonEmpty(r.Label, "—"),
			tax.FormatCurrency(r.ValueInCurrency.InexactFloat64()),
			r.ValueInUnitsFormatted,
			r.Bracket,
			tax.FormatCurrency(r.TaxAmount.InexactFloat64()),
		)
	}
	return w.Flush()
}

// readCSV lee filas referencia,valor; transcodifica desde Latin-1 si se pide
// (exportaciones de Excel en español suelen venir así).
func readCSV(path, encoding string, log *logger.Logger) ([]dto.TransferTaxRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
	case "latin1", "iso-8859-1", "iso8859-1":
		src = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "windows1252", "cp1252":
		src = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}

	reqs := make([]dto.TransferTaxRequest, 0, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			log.Warn().Int("fila", i+1).Msg("fila sin valor, omitida")
			continue
		}
		v, err := parseCOP(rec[1])
		if err != nil {
			if i == 0 {
				continue // encabezado
			}
			log.Warn().Int("fila", i+1).Str("valor", rec[1]).Msg("valor no numérico, omitida")
			continue
		}
		reqs = append(reqs, dto.TransferTaxRequest{Value: v, Label: strings.TrimSpace(rec[0])})
	}
	if len(reqs) == 0 {
		return nil, errors.New("el CSV no tiene filas válidas")
	}
	return reqs, nil
}

var thousandsDots = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// parseCOP interpreta montos escritos a la colombiana o con punto decimal:
// "1.000.000,50", "$ 2.500.000.000", "1000000.5", "1000000".
func parseCOP(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, " ", "")
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case thousandsDots.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return strconv.ParseFloat(s, 64)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
