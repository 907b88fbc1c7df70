package services

import (
	"context"
	"log/slog"
	"sync"

	"poliza-service/internal/models"
)

// MastersAPI is the slice of the Velneo client the catalog needs.
type MastersAPI interface {
	GetMappingOptions(ctx context.Context) (*models.MasterData, error)
	GetCategorias(ctx context.Context) ([]models.CategoriaDto, error)
	GetDestinos(ctx context.Context) ([]models.DestinoDto, error)
	GetCalidades(ctx context.Context) ([]models.CalidadDto, error)
	GetCombustibles(ctx context.Context) ([]models.CombustibleDto, error)
	GetMonedas(ctx context.Context) ([]models.MonedaDto, error)
	GetDepartamentos(ctx context.Context) ([]models.DepartamentoDto, error)
	GetTarifas(ctx context.Context) ([]models.TarifaDto, error)
}

// MasterDataService loads the maestro snapshot for a wizard session. It holds
// no cache: one call, one fetch; the wizard decides when to reload.
type MasterDataService struct {
	api MastersAPI
}

func NewMasterDataService(api MastersAPI) *MasterDataService {
	return &MasterDataService{api: api}
}

// Load fetches all lookup tables. Strategy: the combined endpoint first;
// when that call fails entirely, seven parallel per-table fetches. Either
// way, a table that individually fails loads as empty rather than failing
// the snapshot; an empty table just yields no matches downstream.
func (s *MasterDataService) Load(ctx context.Context) (*models.MasterData, error) {
	combined, err := s.api.GetMappingOptions(ctx)
	if err != nil {
		slog.Warn("Combined maestros endpoint failed, falling back to per-table fetches", "error", err)
		return s.loadIndividual(ctx), nil
	}

	s.backfill(ctx, combined)
	return combined, nil
}

// backfill fetches, in parallel, any table the combined endpoint omitted.
// The middleware's combined payload routinely lacks tarifas and
// departamentos.
func (s *MasterDataService) backfill(ctx context.Context, md *models.MasterData) {
	var wg sync.WaitGroup
	fill := func(run func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run()
		}()
	}

	if len(md.Categorias) == 0 {
		fill(func() { md.Categorias = s.fetchCategorias(ctx) })
	}
	if len(md.Destinos) == 0 {
		fill(func() { md.Destinos = s.fetchDestinos(ctx) })
	}
	if len(md.Calidades) == 0 {
		fill(func() { md.Calidades = s.fetchCalidades(ctx) })
	}
	if len(md.Combustibles) == 0 {
		fill(func() { md.Combustibles = s.fetchCombustibles(ctx) })
	}
	if len(md.Monedas) == 0 {
		fill(func() { md.Monedas = s.fetchMonedas(ctx) })
	}
	if len(md.Departamentos) == 0 {
		fill(func() { md.Departamentos = s.fetchDepartamentos(ctx) })
	}
	if len(md.Tarifas) == 0 {
		fill(func() { md.Tarifas = s.fetchTarifas(ctx) })
	}

	wg.Wait()
}

// loadIndividual issues all seven table fetches concurrently and assembles
// whatever arrived.
func (s *MasterDataService) loadIndividual(ctx context.Context) *models.MasterData {
	md := &models.MasterData{}
	var wg sync.WaitGroup
	wg.Add(7)
	go func() { defer wg.Done(); md.Categorias = s.fetchCategorias(ctx) }()
	go func() { defer wg.Done(); md.Destinos = s.fetchDestinos(ctx) }()
	go func() { defer wg.Done(); md.Calidades = s.fetchCalidades(ctx) }()
	go func() { defer wg.Done(); md.Combustibles = s.fetchCombustibles(ctx) }()
	go func() { defer wg.Done(); md.Monedas = s.fetchMonedas(ctx) }()
	go func() { defer wg.Done(); md.Departamentos = s.fetchDepartamentos(ctx) }()
	go func() { defer wg.Done(); md.Tarifas = s.fetchTarifas(ctx) }()
	wg.Wait()

	slog.Info("Loaded maestros individually",
		"categorias", len(md.Categorias),
		"destinos", len(md.Destinos),
		"calidades", len(md.Calidades),
		"combustibles", len(md.Combustibles),
		"monedas", len(md.Monedas),
		"departamentos", len(md.Departamentos),
		"tarifas", len(md.Tarifas))

	return md
}

func (s *MasterDataService) fetchCategorias(ctx context.Context) []models.CategoriaDto {
	out, err := s.api.GetCategorias(ctx)
	if err != nil {
		slog.Warn("Failed to load categorias, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchDestinos(ctx context.Context) []models.DestinoDto {
	out, err := s.api.GetDestinos(ctx)
	if err != nil {
		slog.Warn("Failed to load destinos, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchCalidades(ctx context.Context) []models.CalidadDto {
	out, err := s.api.GetCalidades(ctx)
	if err != nil {
		slog.Warn("Failed to load calidades, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchCombustibles(ctx context.Context) []models.CombustibleDto {
	out, err := s.api.GetCombustibles(ctx)
	if err != nil {
		slog.Warn("Failed to load combustibles, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchMonedas(ctx context.Context) []models.MonedaDto {
	out, err := s.api.GetMonedas(ctx)
	if err != nil {
		slog.Warn("Failed to load monedas, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchDepartamentos(ctx context.Context) []models.DepartamentoDto {
	out, err := s.api.GetDepartamentos(ctx)
	if err != nil {
		slog.Warn("Failed to load departamentos, continuing with empty table", "error", err)
		return nil
	}
	return out
}

func (s *MasterDataService) fetchTarifas(ctx context.Context) []models.TarifaDto {
	out, err := s.api.GetTarifas(ctx)
	if err != nil {
		slog.Warn("Failed to load tarifas, continuing with empty table", "error", err)
		return nil
	}
	return out
}
