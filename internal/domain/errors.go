package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrNonFiniteValue  = errors.New("el valor debe ser un número finito")
	ErrNegativeValue   = errors.New("el valor del inmueble no puede ser negativo")
	ErrInvalidTaxTable = errors.New("tabla de impuesto inválida")
	ErrUnknownBracket  = errors.New("tramo desconocido")
)
