package models

import "time"

// PolizaCreadaEvent is published after Velneo accepts a póliza so the
// notification service can inform the back office.
type PolizaCreadaEvent struct {
	SessionID      string    `json:"session_id"`
	NumeroPoliza   string    `json:"numero_poliza"`
	ClienteID      int       `json:"cliente_id"`
	ClienteNombre  string    `json:"cliente_nombre"`
	CompaniaID     int       `json:"compania_id"`
	MontoTotal     float64   `json:"monto_total"`
	ProcesadoConIA bool      `json:"procesado_con_ia"`
	CreatedAt      time.Time `json:"created_at"`
}
