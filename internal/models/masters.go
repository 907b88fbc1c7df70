package models

// Master (maestro) lookup tables served by the Velneo middleware. Ids are
// integers except combustible, whose ids are externally defined short codes
// ("GAS", "DIS", ...).

type CategoriaDto struct {
	ID     int    `json:"id"`
	Catdsc string `json:"catdsc"`
}

type DestinoDto struct {
	ID     int    `json:"id"`
	Desnom string `json:"desnom"`
}

type CalidadDto struct {
	ID     int    `json:"id"`
	Caldsc string `json:"caldsc"`
}

type CombustibleDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MonedaDto struct {
	ID      int    `json:"id"`
	Nombre  string `json:"nombre"`
	Simbolo string `json:"simbolo,omitempty"`
}

type DepartamentoDto struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// TarifaDto is a company-specific coverage product. Tarifas must be filtered
// by compañía and activa before they are offered as mapping candidates.
type TarifaDto struct {
	ID          int    `json:"id"`
	CompaniaID  int    `json:"companiaId"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	Activa      bool   `json:"activa"`
}

// MasterData is the per-session snapshot of every lookup table. A table that
// failed to load is simply empty; it yields no matches downstream.
type MasterData struct {
	Categorias    []CategoriaDto    `json:"categorias"`
	Destinos      []DestinoDto      `json:"destinos"`
	Calidades     []CalidadDto      `json:"calidades"`
	Combustibles  []CombustibleDto  `json:"combustibles"`
	Monedas       []MonedaDto       `json:"monedas"`
	Departamentos []DepartamentoDto `json:"departamentos"`
	Tarifas       []TarifaDto       `json:"tarifas"`
}

// TarifasForCompany returns the active tarifas of one compañía, preserving
// table order.
func (m *MasterData) TarifasForCompany(companiaID int) []TarifaDto {
	if m == nil {
		return nil
	}
	var out []TarifaDto
	for _, t := range m.Tarifas {
		if t.CompaniaID == companiaID && t.Activa {
			out = append(out, t)
		}
	}
	return out
}
