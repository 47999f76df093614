package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Un resultado vacío de los analizadores NUNCA se modela como error:
// "sin hallazgos" es un estado válido. Estos errores señalan fallas reales
// de acceso a datos o entradas inválidas.
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrProductNotFound = errors.New("producto no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidMetric   = errors.New("métrica de análisis no soportada")
	ErrInvalidPeriod   = errors.New("período de análisis no soportado")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrLedgerBroken    = errors.New("movimiento inconsistente: stock_after != stock_before + quantity")
)
