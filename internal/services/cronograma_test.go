package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"poliza-service/internal/models"
)

func testDetalleCuotas() *models.DetalleCuotas {
	return &models.DetalleCuotas{
		TieneCuotasDetalladas: true,
		CantidadTotal:         3,
		MontoPromedio:         15000,
		PrimerVencimiento:     "2026-03-10",
		Cuotas: []models.CuotaDetalle{
			{Numero: 1, FechaVencimiento: "2026-03-10", Monto: 15000, Estado: "pendiente"},
			{Numero: 2, FechaVencimiento: "2026-04-10", Monto: 15000, Estado: "pendiente"},
			{Numero: 3, FechaVencimiento: "2026-05-10", Monto: 15000, Estado: "pendiente"},
		},
	}
}

func TestBuildCronograma_FullBlock(t *testing.T) {
	block := BuildCronograma(testDetalleCuotas())

	assert.Contains(t, block, "=== CRONOGRAMA DE CUOTAS EXTRAÍDO ===")
	assert.Contains(t, block, "Total cuotas: 3")
	assert.Contains(t, block, "Monto promedio: 15.000")
	assert.Contains(t, block, "Primera cuota: 10/03/2026")
	assert.Contains(t, block, "Cuota 1: 10/03/2026 - 15.000 (pendiente)")
	assert.Contains(t, block, "Cuota 3: 10/05/2026 - 15.000 (pendiente)")
	assert.True(t, strings.HasSuffix(block, "=== FIN CRONOGRAMA ==="))
}

func TestBuildCronograma_PreservesExtractionOrder(t *testing.T) {
	detalle := testDetalleCuotas()
	// Out-of-order extraction stays out of order; re-sorting could hide an
	// extraction error from the reviewer.
	detalle.Cuotas = []models.CuotaDetalle{
		{Numero: 2, FechaVencimiento: "2026-04-10", Monto: 15000, Estado: "pendiente"},
		{Numero: 1, FechaVencimiento: "2026-03-10", Monto: 15000, Estado: "pendiente"},
	}

	block := BuildCronograma(detalle)

	assert.Less(t, strings.Index(block, "Cuota 2:"), strings.Index(block, "Cuota 1:"))
}

func TestBuildCronograma_AbsentSchedule(t *testing.T) {
	assert.Equal(t, "", BuildCronograma(nil))
	assert.Equal(t, "", BuildCronograma(&models.DetalleCuotas{TieneCuotasDetalladas: false}))
}

func TestHasCronograma(t *testing.T) {
	assert.False(t, HasCronograma(nil))
	assert.False(t, HasCronograma(&models.DetalleCuotas{}))
	assert.True(t, HasCronograma(&models.DetalleCuotas{TieneCuotasDetalladas: true}))
}

func TestFormatFecha(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"iso date", "2026-03-10", "10/03/2026"},
		{"rfc3339", "2026-03-10T00:00:00Z", "10/03/2026"},
		{"already local", "10/03/2026", "10/03/2026"},
		{"unparseable passes through", "marzo 2026", "marzo 2026"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFecha(tt.raw))
		})
	}
}

func TestFormatMonto(t *testing.T) {
	tests := []struct {
		name     string
		monto    float64
		expected string
	}{
		{"thousands", 15000, "15.000"},
		{"millions", 1234567, "1.234.567"},
		{"under a thousand", 950, "950"},
		{"with cents", 1500.50, "1.500,50"},
		{"zero", 0, "0"},
		{"negative", -15000, "-15.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMonto(tt.monto))
		})
	}
}
