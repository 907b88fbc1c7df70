package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"poliza-service/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func testMasters() *models.MasterData {
	return &models.MasterData{
		Categorias: []models.CategoriaDto{
			{ID: 1, Catdsc: "AUTOMOVIL"},
			{ID: 2, Catdsc: "CAMIONETA"},
		},
		Destinos: []models.DestinoDto{
			{ID: 1, Desnom: "PARTICULAR"},
			{ID: 2, Desnom: "TRABAJO"},
		},
		Calidades: []models.CalidadDto{
			{ID: 1, Caldsc: "PROPIETARIO"},
		},
		Combustibles: []models.CombustibleDto{
			{ID: "GAS", Name: "Nafta"},
			{ID: "DIS", Name: "Diesel"},
		},
		Monedas: []models.MonedaDto{
			{ID: 1, Nombre: "Peso Uruguayo"},
			{ID: 2, Nombre: "Dolar Americano"},
		},
		Departamentos: []models.DepartamentoDto{
			{ID: 1, Nombre: "Montevideo"},
			{ID: 2, Nombre: "Canelones"},
		},
		Tarifas: []models.TarifaDto{
			{ID: 10, CompaniaID: 1, Nombre: "Todo Riesgo", Activa: true},
			{ID: 20, CompaniaID: 2, Nombre: "Todo Riesgo", Activa: true},
		},
	}
}

func testSelections() Selections {
	return Selections{
		Client:  &models.ClientDto{ID: 501, Clinom: "Juan Pérez", Cliruc: "41234567", Clidir: "Av. Italia 1234"},
		Company: &models.CompanyDto{ID: 1, Comnom: "BSE"},
		Section: &models.SeccionDto{ID: 4, Seccion: "AUTOMOVILES"},
	}
}

func testExtraction() *models.ProcessResult {
	return &models.ProcessResult{
		Archivo:               "poliza.pdf",
		PorcentajeCompletitud: 85,
		DatosVelneo: models.DatosVelneo{
			DatosBasicos: models.DatosBasicos{
				Asegurado:    "Juan Pérez",
				Domicilio:    "Bvar. Artigas 567",
				Departamento: "Canelones",
			},
			DatosPoliza: models.DatosPoliza{
				NumeroPoliza: "POL-2026-001",
				Desde:        "2026-01-01",
				Hasta:        "2027-01-01",
			},
			DatosVehiculo: models.DatosVehiculo{
				MarcaModelo: "FIAT PUNTO 1.4",
				Anio:        "2022",
				Matricula:   "SAB1234",
				Categoria:   "automovil",
				Destino:     "particular",
				Calidad:     "propietario",
				Combustible: "nafta",
			},
			CondicionesPago: models.CondicionesPago{
				Premio:     42000,
				Total:      48000,
				FormaPago:  "cuotas",
				Cuotas:     6,
				ValorCuota: 8000,
				Moneda:     "peso uruguayo",
			},
			DatosCobertura: models.DatosCobertura{
				Cobertura:       "todo riesgo",
				ZonaCirculacion: "",
				Moneda:          "dolar",
			},
		},
	}
}

// ============================================================================
// TEST SUITE 1: FULL RECONCILIATION
// ============================================================================

func TestReconcile_MapsExtractionOntoMasters(t *testing.T) {
	form := Reconcile(testExtraction(), testSelections(), testMasters(), nil)

	assert.NotNil(t, form)
	assert.Equal(t, 501, form.ClienteID)
	assert.Equal(t, 1, form.CompaniaID)
	assert.Equal(t, 4, form.SeccionID)

	assert.Equal(t, "POL-2026-001", form.NumeroPoliza)
	assert.Equal(t, "0", form.Endoso)
	assert.Equal(t, "2026-01-01", form.FechaDesde)

	assert.Equal(t, 1, form.CategoriaID)
	assert.Equal(t, 1, form.DestinoID)
	assert.Equal(t, 1, form.CalidadID)
	assert.Equal(t, "GAS", form.CombustibleID)

	assert.Equal(t, 1, form.MonedaID)
	assert.Equal(t, 2, form.MonedaCoberturaID)
	assert.Equal(t, 10, form.CoberturaID)

	assert.Equal(t, 6, form.Cuotas)
	assert.Equal(t, 8000.0, form.ValorCuota)
	assert.True(t, form.ProcesadoConIA)
	assert.Contains(t, form.Observaciones, "Procesado con IA - 85% completitud")
}

func TestReconcile_PriorDraftIsUntouched(t *testing.T) {
	prior := &models.PolizaForm{NumeroPoliza: "EDITADA-POR-USUARIO", CategoriaID: 99}

	form := Reconcile(testExtraction(), testSelections(), testMasters(), prior)

	assert.Same(t, prior, form)
}

func TestReconcile_IdempotentForIdenticalInputs(t *testing.T) {
	extraction := testExtraction()
	sel := testSelections()
	masters := testMasters()

	first := Reconcile(extraction, sel, masters, nil)
	second := Reconcile(extraction, sel, masters, nil)

	assert.Equal(t, first, second)
}

func TestReconcile_DegradedDepartamentosYieldZeroZone(t *testing.T) {
	masters := testMasters()
	masters.Departamentos = nil

	form := Reconcile(testExtraction(), testSelections(), masters, nil)

	// The user picks the zone by hand during review; the draft stays usable.
	assert.Equal(t, 0, form.ZonaCirculacionID)
	assert.Equal(t, "POL-2026-001", form.NumeroPoliza)
}

func TestReconcile_NilInputs(t *testing.T) {
	assert.Nil(t, Reconcile(nil, testSelections(), testMasters(), nil))
	assert.Nil(t, Reconcile(testExtraction(), testSelections(), nil, nil))
}

// ============================================================================
// TEST SUITE 2: DEFAULTS AND FALLBACKS
// ============================================================================

func TestReconcile_MonedaDefaultsToPeso(t *testing.T) {
	extraction := testExtraction()
	extraction.DatosVelneo.CondicionesPago.Moneda = "moneda ilegible"

	form := Reconcile(extraction, testSelections(), testMasters(), nil)

	assert.Equal(t, models.MonedaPesoUruguayo, form.MonedaID)
}

func TestReconcile_CuotasDefaultToOne(t *testing.T) {
	extraction := testExtraction()
	extraction.DatosVelneo.CondicionesPago.Cuotas = 0

	form := Reconcile(extraction, testSelections(), testMasters(), nil)

	assert.Equal(t, 1, form.Cuotas)
}

func TestReconcile_ZonaFallsBackToDepartamento(t *testing.T) {
	// The extraction above has no zonaCirculacion; the insured departamento
	// (Canelones, id 2) must fill it.
	form := Reconcile(testExtraction(), testSelections(), testMasters(), nil)

	assert.Equal(t, 2, form.ZonaCirculacionID)
}

func TestReconcile_ZonaPrefersExplicitZone(t *testing.T) {
	extraction := testExtraction()
	extraction.DatosVelneo.DatosCobertura.ZonaCirculacion = "Montevideo"

	form := Reconcile(extraction, testSelections(), testMasters(), nil)

	assert.Equal(t, 1, form.ZonaCirculacionID)
}

func TestReconcile_DireccionCobroFallsBackToClient(t *testing.T) {
	extraction := testExtraction()
	extraction.DatosVelneo.DatosBasicos.Domicilio = ""

	form := Reconcile(extraction, testSelections(), testMasters(), nil)

	assert.Equal(t, "Av. Italia 1234", form.DireccionCobro)
}

func TestReconcile_DomicilioWinsOverClientAddress(t *testing.T) {
	form := Reconcile(testExtraction(), testSelections(), testMasters(), nil)

	assert.Equal(t, "Bvar. Artigas 567", form.DireccionCobro)
}

// ============================================================================
// TEST SUITE 3: COMPANY-SCOPED COVERAGE
// ============================================================================

func TestReconcile_CoberturaUsesSelectedCompanyTarifas(t *testing.T) {
	sel := testSelections()
	sel.Company = &models.CompanyDto{ID: 2, Comnom: "Sura"}

	form := Reconcile(testExtraction(), sel, testMasters(), nil)

	// Same label exists for both companies; the selected compañía's id wins.
	assert.Equal(t, 20, form.CoberturaID)
}

func TestReconcile_NoCompanyMeansNoCobertura(t *testing.T) {
	sel := testSelections()
	sel.Company = nil

	form := Reconcile(testExtraction(), sel, testMasters(), nil)

	assert.Equal(t, 0, form.CoberturaID)
	assert.Equal(t, 0, form.CompaniaID)
}

// ============================================================================
// TEST SUITE 4: OBSERVACIONES
// ============================================================================

func TestReconcile_ObservacionesIncludeCronograma(t *testing.T) {
	extraction := testExtraction()
	extraction.DatosVelneo.CondicionesPago.DetalleCuotas = testDetalleCuotas()

	form := Reconcile(extraction, testSelections(), testMasters(), nil)

	assert.Contains(t, form.Observaciones, "Procesado con IA - 85% completitud")
	assert.Contains(t, form.Observaciones, "=== CRONOGRAMA DE CUOTAS EXTRAÍDO ===")
	assert.Contains(t, form.Observaciones, "Cuota 1: 10/03/2026")
}

func TestReconcile_ObservacionesWithoutCronograma(t *testing.T) {
	form := Reconcile(testExtraction(), testSelections(), testMasters(), nil)

	assert.NotContains(t, form.Observaciones, "CRONOGRAMA")
}
