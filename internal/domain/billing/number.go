// Package billing contiene los servicios de dominio puros del ciclo de
// facturación: numeración, orden de líneas y cálculo de totales.
package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// NextNumber genera el siguiente número de factura del año indicado con el
// formato "{año}-{secuencia}" y relleno a 3 dígitos ("2024-001"). La
// secuencia es por año: números de otros años se ignoran, igual que los que
// no siguen el formato. Sin números previos del año, el primero es "{año}-001".
// No hay tope: tras la 999 viene "{año}-1000" sin re-relleno.
func NextNumber(year int, existing []string) string {
	prefix := strconv.Itoa(year) + "-"
	maxSeq := 0
	for _, number := range existing {
		rest, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}
		seq, err := strconv.Atoi(rest)
		if err != nil || seq < 0 {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%d-%03d", year, maxSeq+1)
}
