package tax

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUnitValue formatea un valor en UVT con la convención es-CO:
// punto de miles, coma decimal y exactamente dos decimales.
// Ej: 1234.5678 → "1.234,57", 0 → "0,00".
func FormatUnitValue(units float64) string {
	if nonFinite(units) {
		return strconv.FormatFloat(units, 'f', -1, 64)
	}
	return formatGrouped(decimal.NewFromFloat(units), 2)
}

// FormatCurrency formatea un valor en pesos sin decimales: 995400000 → "$995.400.000".
func FormatCurrency(amount float64) string {
	if nonFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	s := formatGrouped(decimal.NewFromFloat(amount), 0)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

// formatGrouped redondea (mitad hacia arriba, alejándose de cero) a places
// decimales e inserta los separadores es-CO.
func formatGrouped(d decimal.Decimal, places int32) string {
	s := d.Round(places).StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	out := sign + groupThousands(intPart)
	if places > 0 {
		out += "," + frac
	}
	return out
}

// groupThousands inserta puntos de miles en un string de dígitos.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// decimal.NewFromFloat entra en pánico con NaN e infinitos.
func nonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
