package models

import (
	"time"

	"github.com/google/uuid"
)

// PolizaRecord is one row of the local creation history, written after
// Velneo accepts a póliza.
type PolizaRecord struct {
	ID             uuid.UUID `json:"id" db:"id"`
	NumeroPoliza   string    `json:"numeroPoliza" db:"numero_poliza"`
	ClienteID      int       `json:"clienteId" db:"cliente_id"`
	ClienteNombre  string    `json:"clienteNombre" db:"cliente_nombre"`
	CompaniaID     int       `json:"companiaId" db:"compania_id"`
	CompaniaNombre string    `json:"companiaNombre" db:"compania_nombre"`
	SeccionID      int       `json:"seccionId" db:"seccion_id"`
	Estado         string    `json:"estado" db:"estado"`
	MontoTotal     float64   `json:"montoTotal" db:"monto_total"`
	Archivo        string    `json:"archivo,omitempty" db:"archivo"`
	ProcesadoConIA bool      `json:"procesadoConIA" db:"procesado_con_ia"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// HistoryFilters narrows the history listing. Zero values mean "no filter".
type HistoryFilters struct {
	NumeroPoliza string `json:"numeroPoliza"`
	ClienteID    int    `json:"clienteId"`
	CompaniaID   int    `json:"companiaId"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
}

type HistoryPage struct {
	Polizas    []PolizaRecord `json:"polizas"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}
