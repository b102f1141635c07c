// Package dian utilidades de identificación tributaria colombiana.
package dian

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidNIT el NIT no es válido.
var ErrInvalidNIT = errors.New("NIT inválido")

// pesos para el cálculo del dígito de verificación NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican de derecha a izquierda sobre el número base (máximo 15 dígitos).
var nitWeights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// ComputeVerificationDigit calcula el dígito de verificación del número base
// (sin DV). Acepta puntos y espacios: "800.197.268" → '4'.
func ComputeVerificationDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) == 0 || len(digits) > len(nitWeights) {
		return 0, fmt.Errorf("%w: el número base debe tener entre 1 y %d dígitos", ErrInvalidNIT, len(nitWeights))
	}
	var sum int
	for i := range digits {
		sum += int(digits[len(digits)-1-i]-'0') * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

// Validate comprueba un NIT con dígito de verificación separado por guion:
// "800197268-4" o "800.197.268-4". Devuelve el NIT normalizado ("800197268-4").
func Validate(nit string) (string, error) {
	base, dv, ok := cutLast(nit, '-')
	if !ok {
		return "", fmt.Errorf("%w: falta el dígito de verificación (formato 900123456-8)", ErrInvalidNIT)
	}
	dvDigits := extractDigits(dv)
	if len(dvDigits) != 1 {
		return "", fmt.Errorf("%w: el dígito de verificación debe ser un solo dígito", ErrInvalidNIT)
	}
	expected, err := ComputeVerificationDigit(base)
	if err != nil {
		return "", err
	}
	if dvDigits[0] != expected {
		return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %c", ErrInvalidNIT, expected, dvDigits[0])
	}
	return string(extractDigits(base)) + "-" + string(expected), nil
}

func cutLast(s string, sep byte) (before, after string, found bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
