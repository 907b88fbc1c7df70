package services

import (
	"fmt"
	"strings"
	"time"

	"poliza-service/internal/models"
)

// HasCronograma reports whether the extraction carried a detailed
// installment schedule worth appending to the observaciones.
func HasCronograma(detalle *models.DetalleCuotas) bool {
	return detalle != nil && detalle.TieneCuotasDetalladas
}

// BuildCronograma renders the extracted installment schedule as the fixed
// multi-line block appended to observaciones. Cuotas are listed in the order
// the extraction gave them; re-sorting could silently mask extraction errors.
func BuildCronograma(detalle *models.DetalleCuotas) string {
	if !HasCronograma(detalle) {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n=== CRONOGRAMA DE CUOTAS EXTRAÍDO ===\n")
	fmt.Fprintf(&b, "Total cuotas: %d\n", detalle.CantidadTotal)
	fmt.Fprintf(&b, "Monto promedio: %s\n", formatMonto(detalle.MontoPromedio))
	fmt.Fprintf(&b, "Primera cuota: %s\n\n", formatFecha(detalle.PrimerVencimiento))

	for _, cuota := range detalle.Cuotas {
		fmt.Fprintf(&b, "Cuota %d: %s - %s (%s)\n",
			cuota.Numero, formatFecha(cuota.FechaVencimiento), formatMonto(cuota.Monto), cuota.Estado)
	}

	b.WriteString("\n=== FIN CRONOGRAMA ===")
	return b.String()
}

// formatFecha renders a date in the es-UY dd/mm/yyyy convention. Inputs the
// extraction emits are YYYY-MM-DD or RFC3339; anything else passes through
// untouched rather than losing the raw value.
func formatFecha(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}

// formatMonto groups thousands with dots, es-UY style: 15000 -> "15.000".
func formatMonto(monto float64) string {
	neg := monto < 0
	if neg {
		monto = -monto
	}
	whole := int64(monto)
	frac := monto - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	out := b.String()
	if frac > 0.004 {
		out = fmt.Sprintf("%s,%02d", out, int(frac*100+0.5))
	}
	if neg {
		out = "-" + out
	}
	return out
}
