package services

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"poliza-service/internal/models"
)

// BuildCreateRequest transforms the reviewed draft plus the wizard
// selections into the exact Velneo creation payload. Pure field transform:
// it never fails, it coerces.
func BuildCreateRequest(form *models.PolizaForm, sel Selections) *models.PolizaCreateRequest {
	marca, modelo := splitMarcaModelo(form.MarcaModelo)

	req := &models.PolizaCreateRequest{
		Conpol:    form.NumeroPoliza,
		Confchdes: normalizeFecha(form.FechaDesde),
		Confchhas: normalizeFecha(form.FechaHasta),
		Conend:    form.Endoso,

		Conpremio: form.Premio,
		Contot:    form.Total,
		Concuo:    form.Cuotas,
		Moncod:    form.MonedaID,
		Conviamon: form.MonedaCoberturaID,

		Condom: form.DireccionCobro,

		Conmaraut:   form.MarcaModelo,
		Conanioaut:  parseAnio(form.Anio),
		Conmataut:   form.Matricula,
		Conmotor:    form.Motor,
		Conchasis:   form.Chasis,
		Marca:       marca,
		Modelo:      modelo,
		Combustible: form.CombustibleID,

		Catdsc: form.CategoriaID,
		Desdsc: form.DestinoID,
		Caldsc: form.CalidadID,

		Contra:   models.TramiteNuevo,
		Congesti: models.GestionPendiente,
		Congeses: models.EstadoGestionIngresada,
		Convig:   models.VigenciaVigente,
		Ramo:     models.RamoAutomoviles,

		Consta:         NormalizeFormaPago(form.FormaPago),
		CantidadCuotas: form.Cuotas,
		ValorCuota:     form.ValorCuota,

		Observaciones:  form.Observaciones,
		ProcesadoConIA: form.ProcesadoConIA,
	}

	if sel.Company != nil {
		req.Comcod = sel.Company.ID
	}
	if sel.Section != nil {
		req.Seccod = sel.Section.ID
	}
	if sel.Client != nil {
		req.Clinro = sel.Client.ID
		req.Asegurado = sel.Client.Clinom
		req.Clinom = sel.Client.Clinom
		req.Documento = sel.Client.Cliruc
		req.Email = sel.Client.Cliemail
		req.Telefono = sel.Client.Clitel
	}

	// clinro1 must always mirror clinro; the selection is authoritative. A
	// divergent draft value is corrected, not rejected.
	if form.ClienteID != 0 && form.ClienteID != req.Clinro {
		slog.Warn("Draft client id diverges from selection, correcting",
			"draft_cliente_id", form.ClienteID,
			"selected_cliente_id", req.Clinro)
	}
	req.Clinro1 = req.Clinro

	return req
}

// NormalizeFormaPago collapses free-text payment method wording onto the
// Velneo vocabulary. Card and debit payments settle like cash, so they map
// to contado; blank or unrecognized input defaults to contado as well.
func NormalizeFormaPago(texto string) string {
	t := strings.ToLower(strings.TrimSpace(texto))
	switch {
	case t == "":
		return models.FormaPagoContado
	case strings.Contains(t, "cuota"), strings.Contains(t, "financi"), strings.Contains(t, "mensual"):
		return models.FormaPagoCuotas
	case strings.Contains(t, "contado"), strings.Contains(t, "efectivo"),
		strings.Contains(t, "tarjeta"), strings.Contains(t, "crédito"), strings.Contains(t, "credito"),
		strings.Contains(t, "débito"), strings.Contains(t, "debito"):
		return models.FormaPagoContado
	default:
		return models.FormaPagoContado
	}
}

// normalizeFecha renders any date the wizard may hold as YYYY-MM-DD. An
// unparseable or absent date becomes today: Velneo requires a well-formed
// date in the required fields, so a lossy default beats a rejection here and
// validation still guards the genuinely missing ones upstream.
func normalizeFecha(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format("2006-01-02")
			}
		}
		slog.Warn("Unparseable date in draft, defaulting to today", "raw", raw)
	}
	return time.Now().Format("2006-01-02")
}

func parseAnio(raw string) int {
	anio, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return anio
}

// splitMarcaModelo splits "FIAT PUNTO 1.4" into marca "FIAT" and modelo
// "PUNTO 1.4" on the first whitespace. No whitespace means no modelo.
func splitMarcaModelo(marcaModelo string) (string, string) {
	trimmed := strings.TrimSpace(marcaModelo)
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
