package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientData indica que no hay suficientes filas/eventos para un
// ajuste estadísticamente significativo. Se propaga siempre al caller; el
// estimador nunca lo degrada en silencio a una probabilidad neutra.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError envuelve ErrInsufficientData con el detalle de
// cuántas filas había y cuántas hacían falta.
func InsufficientDataError(got, need int) error {
	return fmt.Errorf("%w: %d rows, need at least %d", ErrInsufficientData, got, need)
}

// ErrUnknownIndicator indica un indicator id que no existe en el registro.
// Es un error blando: el caller lo excluye y continúa.
var ErrUnknownIndicator = errors.New("unknown indicator")

// ErrSettlementInconsistency indica un evento cuyo outcome no coincide con
// ninguno de los dos lados cotizados. Fatal solo para ese evento: se salta,
// se loguea y nunca se fabrica un resultado.
var ErrSettlementInconsistency = errors.New("settlement inconsistent with outcome labels")
