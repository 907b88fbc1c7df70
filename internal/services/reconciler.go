package services

import (
	"fmt"
	"log/slog"

	"poliza-service/internal/models"
)

// Selections are the three wizard choices a draft is reconciled against.
type Selections struct {
	Client  *models.ClientDto
	Company *models.CompanyDto
	Section *models.SeccionDto
}

// Reconcile builds the editable draft from an extraction, the wizard
// selections and the master snapshot. When a prior draft exists it is
// returned as-is: after the first reconciliation every field belongs to the
// user until the wizard resets or the document is replaced.
//
// The function is pure for identical inputs; the only time-like value in the
// output is the completeness percentage echoed from the extraction.
func Reconcile(extraction *models.ProcessResult, sel Selections, masters *models.MasterData, prior *models.PolizaForm) *models.PolizaForm {
	if prior != nil {
		return prior
	}
	if extraction == nil || masters == nil {
		return nil
	}

	dv := extraction.DatosVelneo

	form := &models.PolizaForm{
		NumeroPoliza: dv.DatosPoliza.NumeroPoliza,
		Endoso:       defaultString(dv.DatosPoliza.Endoso, "0"),
		FechaDesde:   dv.DatosPoliza.Desde,
		FechaHasta:   dv.DatosPoliza.Hasta,
		Certificado:  dv.DatosPoliza.Certificado,

		MarcaModelo: dv.DatosVehiculo.MarcaModelo,
		Anio:        dv.DatosVehiculo.Anio,
		Matricula:   dv.DatosVehiculo.Matricula,
		Motor:       dv.DatosVehiculo.Motor,
		Chasis:      dv.DatosVehiculo.Chasis,

		CategoriaID:   MatchCategoria(dv.DatosVehiculo.Categoria, masters.Categorias),
		DestinoID:     MatchDestino(dv.DatosVehiculo.Destino, masters.Destinos),
		CalidadID:     MatchCalidad(dv.DatosVehiculo.Calidad, masters.Calidades),
		CombustibleID: MatchCombustible(dv.DatosVehiculo.Combustible, masters.Combustibles),

		Premio:     dv.CondicionesPago.Premio,
		Total:      dv.CondicionesPago.Total,
		FormaPago:  dv.CondicionesPago.FormaPago,
		Cuotas:     defaultInt(dv.CondicionesPago.Cuotas, 1),
		ValorCuota: dv.CondicionesPago.ValorCuota,

		Observaciones:  buildObservaciones(extraction),
		ProcesadoConIA: true,
	}

	if sel.Client != nil {
		form.ClienteID = sel.Client.ID
	}
	if sel.Company != nil {
		form.CompaniaID = sel.Company.ID
	}
	if sel.Section != nil {
		form.SeccionID = sel.Section.ID
	}

	// Payment currency defaults to the local peso when nothing resolves.
	if id := MatchMoneda(dv.CondicionesPago.Moneda, masters.Monedas); id != 0 {
		form.MonedaID = id
	} else {
		form.MonedaID = models.MonedaPesoUruguayo
	}
	form.MonedaCoberturaID = MatchMoneda(dv.DatosCobertura.Moneda, masters.Monedas)

	// Coverage candidates are the selected company's active tarifas only.
	if sel.Company != nil {
		form.CoberturaID = MatchTarifa(dv.DatosCobertura.Cobertura, masters.TarifasForCompany(sel.Company.ID))
	}

	// The circulation zone falls back to the insured's departamento when the
	// coverage section carried none.
	zonaTexto := dv.DatosCobertura.ZonaCirculacion
	if zonaTexto == "" {
		zonaTexto = dv.DatosBasicos.Departamento
	}
	form.ZonaCirculacionID = MatchDepartamento(zonaTexto, masters.Departamentos)

	form.DireccionCobro = dv.DatosBasicos.Domicilio
	if form.DireccionCobro == "" && sel.Client != nil {
		form.DireccionCobro = sel.Client.Clidir
	}

	slog.Info("Reconciled draft from extraction",
		"numero_poliza", form.NumeroPoliza,
		"categoria_id", form.CategoriaID,
		"destino_id", form.DestinoID,
		"calidad_id", form.CalidadID,
		"cobertura_id", form.CoberturaID,
		"zona_id", form.ZonaCirculacionID,
		"completitud", extraction.PorcentajeCompletitud)

	return form
}

func buildObservaciones(extraction *models.ProcessResult) string {
	obs := fmt.Sprintf("Procesado con IA - %d%% completitud\n", extraction.PorcentajeCompletitud)
	obs += BuildCronograma(extraction.DatosVelneo.CondicionesPago.DetalleCuotas)
	return obs
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
