package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"poliza-service/internal/models"
)

// ErrHistoryUnavailable is returned while the postgres connection is down.
// History is local bookkeeping; callers degrade instead of failing.
var ErrHistoryUnavailable = errors.New("poliza history store unavailable")

// PolizaRepository keeps the local history of pólizas this service pushed
// into Velneo. Velneo stays the system of record; this table exists so the
// back office can list what was entered and by which path.
type PolizaRepository struct {
	mu sync.RWMutex
	db *sqlx.DB
}

func NewPolizaRepository(db *sqlx.DB) *PolizaRepository {
	return &PolizaRepository{db: db}
}

// SetDB swaps the connection handle. The service boots without postgres and
// retries the connection in the background; the retry loop installs the live
// handle here once it lands.
func (r *PolizaRepository) SetDB(db *sqlx.DB) {
	r.mu.Lock()
	r.db = db
	r.mu.Unlock()
}

func (r *PolizaRepository) handle() *sqlx.DB {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db
}

const polizaSchema = `
CREATE TABLE IF NOT EXISTS poliza_history (
	id UUID PRIMARY KEY,
	numero_poliza VARCHAR(64) NOT NULL,
	cliente_id INTEGER NOT NULL,
	cliente_nombre VARCHAR(255) NOT NULL,
	compania_id INTEGER NOT NULL,
	compania_nombre VARCHAR(255) NOT NULL,
	seccion_id INTEGER NOT NULL,
	estado VARCHAR(32) NOT NULL,
	monto_total NUMERIC(14,2) NOT NULL DEFAULT 0,
	archivo VARCHAR(255) NOT NULL DEFAULT '',
	procesado_con_ia BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_poliza_history_numero ON poliza_history (numero_poliza);
CREATE INDEX IF NOT EXISTS idx_poliza_history_cliente ON poliza_history (cliente_id);
`

// EnsureSchema creates the history table when it does not exist yet.
func (r *PolizaRepository) EnsureSchema() error {
	db := r.handle()
	if db == nil {
		return ErrHistoryUnavailable
	}
	if _, err := db.Exec(polizaSchema); err != nil {
		return fmt.Errorf("failed to ensure poliza_history schema: %w", err)
	}
	return nil
}

func (r *PolizaRepository) Create(record *models.PolizaRecord) error {
	// Until the background retry installs a live handle, history writes
	// degrade to a warning in the caller.
	db := r.handle()
	if db == nil {
		return ErrHistoryUnavailable
	}
	record.CreatedAt = time.Now()

	query := `
		INSERT INTO poliza_history (
			id, numero_poliza, cliente_id, cliente_nombre, compania_id,
			compania_nombre, seccion_id, estado, monto_total, archivo,
			procesado_con_ia, created_at
		) VALUES (
			:id, :numero_poliza, :cliente_id, :cliente_nombre, :compania_id,
			:compania_nombre, :seccion_id, :estado, :monto_total, :archivo,
			:procesado_con_ia, :created_at
		)`

	if _, err := db.NamedExec(query, record); err != nil {
		return fmt.Errorf("failed to insert poliza history row: %w", err)
	}

	slog.Info("Recorded póliza in history",
		"numero_poliza", record.NumeroPoliza,
		"cliente_id", record.ClienteID,
		"compania_id", record.CompaniaID)
	return nil
}

// List returns a page of the creation history, newest first.
func (r *PolizaRepository) List(filters models.HistoryFilters) (*models.HistoryPage, error) {
	db := r.handle()
	if db == nil {
		return nil, ErrHistoryUnavailable
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	where := "WHERE 1=1"
	args := map[string]any{
		"numero":   "%" + filters.NumeroPoliza + "%",
		"cliente":  filters.ClienteID,
		"compania": filters.CompaniaID,
		"limit":    limit,
		"offset":   (page - 1) * limit,
	}
	if filters.NumeroPoliza != "" {
		where += " AND numero_poliza ILIKE :numero"
	}
	if filters.ClienteID != 0 {
		where += " AND cliente_id = :cliente"
	}
	if filters.CompaniaID != 0 {
		where += " AND compania_id = :compania"
	}

	countQuery := "SELECT COUNT(*) FROM poliza_history " + where
	rows, err := db.NamedQuery(countQuery, args)
	if err != nil {
		return nil, fmt.Errorf("failed to count poliza history: %w", err)
	}
	var total int
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan history count: %w", err)
		}
	}
	rows.Close()

	listQuery := `SELECT * FROM poliza_history ` + where +
		` ORDER BY created_at DESC LIMIT :limit OFFSET :offset`
	listRows, err := db.NamedQuery(listQuery, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list poliza history: %w", err)
	}
	defer listRows.Close()

	polizas := []models.PolizaRecord{}
	for listRows.Next() {
		var rec models.PolizaRecord
		if err := listRows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		polizas = append(polizas, rec)
	}

	totalPages := (total + limit - 1) / limit
	return &models.HistoryPage{
		Polizas:    polizas,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
