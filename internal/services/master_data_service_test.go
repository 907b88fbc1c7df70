package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"poliza-service/internal/models"
)

// fakeMastersAPI serves canned tables and counts per-table calls. The table
// fetches run concurrently, so the counters are guarded.
type fakeMastersAPI struct {
	combined    *models.MasterData
	combinedErr error

	tableErrs map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func newFakeMastersAPI() *fakeMastersAPI {
	return &fakeMastersAPI{
		tableErrs: map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeMastersAPI) count(table string) {
	f.mu.Lock()
	f.calls[table]++
	f.mu.Unlock()
}

func (f *fakeMastersAPI) callCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[table]
}

func (f *fakeMastersAPI) GetMappingOptions(_ context.Context) (*models.MasterData, error) {
	f.count("combined")
	if f.combinedErr != nil {
		return nil, f.combinedErr
	}
	return f.combined, nil
}

func (f *fakeMastersAPI) GetCategorias(_ context.Context) ([]models.CategoriaDto, error) {
	f.count("categorias")
	if err := f.tableErrs["categorias"]; err != nil {
		return nil, err
	}
	return testCategorias(), nil
}

func (f *fakeMastersAPI) GetDestinos(_ context.Context) ([]models.DestinoDto, error) {
	f.count("destinos")
	if err := f.tableErrs["destinos"]; err != nil {
		return nil, err
	}
	return []models.DestinoDto{{ID: 1, Desnom: "PARTICULAR"}}, nil
}

func (f *fakeMastersAPI) GetCalidades(_ context.Context) ([]models.CalidadDto, error) {
	f.count("calidades")
	return []models.CalidadDto{{ID: 1, Caldsc: "PROPIETARIO"}}, nil
}

func (f *fakeMastersAPI) GetCombustibles(_ context.Context) ([]models.CombustibleDto, error) {
	f.count("combustibles")
	return []models.CombustibleDto{{ID: "GAS", Name: "Nafta"}}, nil
}

func (f *fakeMastersAPI) GetMonedas(_ context.Context) ([]models.MonedaDto, error) {
	f.count("monedas")
	return testMonedas(), nil
}

func (f *fakeMastersAPI) GetDepartamentos(_ context.Context) ([]models.DepartamentoDto, error) {
	f.count("departamentos")
	return []models.DepartamentoDto{{ID: 1, Nombre: "Montevideo"}}, nil
}

func (f *fakeMastersAPI) GetTarifas(_ context.Context) ([]models.TarifaDto, error) {
	f.count("tarifas")
	return []models.TarifaDto{{ID: 10, CompaniaID: 1, Nombre: "Todo Riesgo", Activa: true}}, nil
}

// ============================================================================
// TEST SUITE: LOAD STRATEGY
// ============================================================================

func TestLoad_CombinedEndpointWins(t *testing.T) {
	api := newFakeMastersAPI()
	api.combined = testMasters()
	service := NewMasterDataService(api)

	md, err := service.Load(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, md.Categorias)
	assert.Equal(t, 1, api.callCount("combined"))
	// Nothing was missing, so no per-table fetch went out.
	assert.Equal(t, 0, api.callCount("categorias"))
	assert.Equal(t, 0, api.callCount("tarifas"))
}

func TestLoad_BackfillsOmittedTables(t *testing.T) {
	api := newFakeMastersAPI()
	// The combined payload carries everything but tarifas and departamentos,
	// the tables the middleware routinely omits.
	api.combined = testMasters()
	api.combined.Tarifas = nil
	api.combined.Departamentos = nil
	service := NewMasterDataService(api)

	md, err := service.Load(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, md.Tarifas)
	assert.NotEmpty(t, md.Departamentos)
	assert.Equal(t, 1, api.callCount("tarifas"))
	assert.Equal(t, 1, api.callCount("departamentos"))
	assert.Equal(t, 0, api.callCount("categorias"))
}

func TestLoad_FallsBackToIndividualFetches(t *testing.T) {
	api := newFakeMastersAPI()
	api.combinedErr = errors.New("combined endpoint unavailable")
	service := NewMasterDataService(api)

	md, err := service.Load(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, md.Categorias)
	assert.NotEmpty(t, md.Destinos)
	assert.NotEmpty(t, md.Calidades)
	assert.NotEmpty(t, md.Combustibles)
	assert.NotEmpty(t, md.Monedas)
	assert.NotEmpty(t, md.Departamentos)
	assert.NotEmpty(t, md.Tarifas)

	for _, table := range []string{"categorias", "destinos", "calidades", "combustibles", "monedas", "departamentos", "tarifas"} {
		assert.Equal(t, 1, api.callCount(table), table)
	}
}

func TestLoad_PerTableFailureLoadsEmpty(t *testing.T) {
	api := newFakeMastersAPI()
	api.combinedErr = errors.New("combined endpoint unavailable")
	api.tableErrs["categorias"] = errors.New("categorias unavailable")
	api.tableErrs["destinos"] = errors.New("destinos unavailable")
	service := NewMasterDataService(api)

	md, err := service.Load(context.Background())

	// A broken table never fails the snapshot; it just yields no matches.
	assert.NoError(t, err)
	assert.Empty(t, md.Categorias)
	assert.Empty(t, md.Destinos)
	assert.NotEmpty(t, md.Monedas)
}
