package models

// Payment method codes in Velneo's fixed vocabulary. Card payment settles
// like cash, so it normalizes to contado.
const (
	FormaPagoContado = "1"
	FormaPagoCuotas  = "2"
)

// Constant codes stamped on every creation request. These are Velneo
// conventions for a freshly entered póliza, not derived from any input.
const (
	TramiteNuevo           = "1"
	GestionPendiente       = "1"
	EstadoGestionIngresada = "1"
	VigenciaVigente        = "1"
	RamoAutomoviles        = "AUTOMOVILES"
)

// Moneda id 1 is the local currency (peso uruguayo) and the default payment
// currency when extraction resolves nothing.
const MonedaPesoUruguayo = 1

// PolizaCreateRequest is the exact payload the Velneo creation endpoint
// expects. Key names must match byte-for-byte; do not rename.
type PolizaCreateRequest struct {
	Comcod  int `json:"comcod"`
	Seccod  int `json:"seccod"`
	Clinro  int `json:"clinro"`
	Clinro1 int `json:"clinro1"`

	Conpol    string `json:"conpol"`
	Confchdes string `json:"confchdes"`
	Confchhas string `json:"confchhas"`
	Conend    string `json:"conend"`

	Conpremio float64 `json:"conpremio"`
	Contot    float64 `json:"contot"`
	Concuo    int     `json:"concuo"`
	Moncod    int     `json:"moncod"`
	Conviamon int     `json:"conviamon"`

	Asegurado    string `json:"asegurado"`
	Clinom       string `json:"clinom"`
	Condom       string `json:"condom"`
	Documento    string `json:"documento"`
	Email        string `json:"email,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Departamento string `json:"departamento,omitempty"`

	Conmaraut   string `json:"conmaraut"`
	Conanioaut  int    `json:"conanioaut"`
	Conmataut   string `json:"conmataut"`
	Conmotor    string `json:"conmotor"`
	Conchasis   string `json:"conchasis"`
	Marca       string `json:"marca"`
	Modelo      string `json:"modelo"`
	Combustible string `json:"combustible"`

	Catdsc int `json:"catdsc"`
	Desdsc int `json:"desdsc"`
	Caldsc int `json:"caldsc"`

	// Fixed Velneo status/type codes, see the constants above.
	Contra   string `json:"contra"`
	Congesti string `json:"congesti"`
	Congeses string `json:"congeses"`
	Convig   string `json:"convig"`
	Ramo     string `json:"ramo"`

	Consta         string  `json:"consta"`
	CantidadCuotas int     `json:"cantidadCuotas"`
	ValorCuota     float64 `json:"valorCuota"`

	Observaciones  string `json:"observaciones"`
	ProcesadoConIA bool   `json:"procesadoConIA"`
}

type CreatePolizaResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	NumeroPoliza string `json:"numeroPoliza"`
}

// ValidationResult carries every violated rule, in the fixed rule order, so
// the caller can display the complete list at once.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
