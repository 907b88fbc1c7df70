package models

// Output of the document intelligence service for a scanned policy PDF.
// All the free-text fields are untrusted OCR output; mapping them onto the
// master tables is the reconciler's job.

type CuotaDetalle struct {
	Numero           int     `json:"numero"`
	FechaVencimiento string  `json:"fechaVencimiento"`
	Monto            float64 `json:"monto"`
	Estado           string  `json:"estado"`
}

type DetalleCuotas struct {
	TieneCuotasDetalladas bool           `json:"tieneCuotasDetalladas"`
	CantidadTotal         int            `json:"cantidadTotal"`
	MontoPromedio         float64        `json:"montoPromedio"`
	PrimerVencimiento     string         `json:"primerVencimiento"`
	Cuotas                []CuotaDetalle `json:"cuotas"`
}

type DatosBasicos struct {
	Asegurado    string `json:"asegurado"`
	Documento    string `json:"documento"`
	Domicilio    string `json:"domicilio"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
	Departamento string `json:"departamento"`
	Localidad    string `json:"localidad"`
}

type DatosPoliza struct {
	NumeroPoliza string `json:"numeroPoliza"`
	Endoso       string `json:"endoso"`
	Desde        string `json:"desde"`
	Hasta        string `json:"hasta"`
	Certificado  string `json:"certificado"`
}

type DatosVehiculo struct {
	MarcaModelo string `json:"marcaModelo"`
	Anio        string `json:"anio"`
	Matricula   string `json:"matricula"`
	Motor       string `json:"motor"`
	Chasis      string `json:"chasis"`
	Categoria   string `json:"categoria"`
	Destino     string `json:"destino"`
	Calidad     string `json:"calidad"`
	Combustible string `json:"combustible"`
}

type CondicionesPago struct {
	Premio        float64        `json:"premio"`
	Total         float64        `json:"total"`
	FormaPago     string         `json:"formaPago"`
	Cuotas        int            `json:"cuotas"`
	ValorCuota    float64        `json:"valorCuota"`
	Moneda        string         `json:"moneda"`
	DetalleCuotas *DetalleCuotas `json:"detalleCuotas,omitempty"`
}

type DatosCobertura struct {
	Cobertura       string `json:"cobertura"`
	ZonaCirculacion string `json:"zonaCirculacion"`
	Moneda          string `json:"moneda"`
}

type DatosVelneo struct {
	DatosBasicos    DatosBasicos    `json:"datosBasicos"`
	DatosPoliza     DatosPoliza     `json:"datosPoliza"`
	DatosVehiculo   DatosVehiculo   `json:"datosVehiculo"`
	CondicionesPago CondicionesPago `json:"condicionesPago"`
	DatosCobertura  DatosCobertura  `json:"datosCobertura"`
}

// ProcessResult is the full envelope returned by the extraction service,
// including completeness metrics echoed back to the review step.
type ProcessResult struct {
	Archivo               string      `json:"archivo"`
	DatosVelneo           DatosVelneo `json:"datosVelneo"`
	PorcentajeCompletitud int         `json:"porcentajeCompletitud"`
	CamposExtraidos       int         `json:"camposExtraidos"`
	CamposFaltantes       []string    `json:"camposFaltantes"`
	CamposConfianzaBaja   []string    `json:"camposConfianzaBaja,omitempty"`
	ProcesamientoExitoso  bool        `json:"procesamientoExitoso"`
	TiempoProcesamientoMs int64       `json:"tiempoProcesamiento"`
}
