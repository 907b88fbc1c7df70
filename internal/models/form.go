package models

// PolizaForm is the editable draft the reconciler produces and the user
// reviews before submission. Once created it is user-owned: the reconciler
// never overwrites it unless the extraction itself is replaced.
type PolizaForm struct {
	ClienteID  int `json:"clienteId"`
	CompaniaID int `json:"companiaId"`
	SeccionID  int `json:"seccionId"`

	NumeroPoliza string `json:"numeroPoliza"`
	Endoso       string `json:"endoso"`
	FechaDesde   string `json:"fechaDesde"`
	FechaHasta   string `json:"fechaHasta"`
	Certificado  string `json:"certificado"`

	MarcaModelo   string `json:"marcaModelo"`
	Anio          string `json:"anio"`
	Matricula     string `json:"matricula"`
	Motor         string `json:"motor"`
	Chasis        string `json:"chasis"`
	CategoriaID   int    `json:"categoriaId"`
	DestinoID     int    `json:"destinoId"`
	CalidadID     int    `json:"calidadId"`
	CombustibleID string `json:"combustibleId"`

	Premio     float64 `json:"premio"`
	Total      float64 `json:"total"`
	FormaPago  string  `json:"formaPago"`
	Cuotas     int     `json:"cuotas"`
	ValorCuota float64 `json:"valorCuota"`
	MonedaID   int     `json:"monedaId"`

	CoberturaID       int `json:"coberturaId"`
	ZonaCirculacionID int `json:"zonaCirculacionId"`
	MonedaCoberturaID int `json:"monedaCoberturaId"`

	DireccionCobro string `json:"direccionCobro"`
	Observaciones  string `json:"observaciones"`

	ProcesadoConIA bool `json:"procesadoConIA"`
}
