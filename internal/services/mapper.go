package services

import (
	"strings"

	"poliza-service/internal/models"
)

// Auto-mapping of free-text OCR values onto master table ids. Matching is
// case-insensitive bidirectional substring: the candidate label may contain
// the extracted text or vice versa, which tolerates both OCR noise and
// partial phrase extraction ("Peso Uruguayo" matches a "Peso" candidate).
//
// The first candidate in table order wins. That is a determinism choice,
// not a best-match ranking. No match is a normal outcome: the unresolved
// sentinel is 0 for integer ids and "" for combustible.

func matchesLabel(label, text string) bool {
	// A blank master-table row must never match: Contains(text, "") is
	// always true and would shadow every later candidate.
	if label == "" {
		return false
	}
	l := strings.ToLower(label)
	t := strings.ToLower(text)
	return strings.Contains(l, t) || strings.Contains(t, l)
}

// MatchCategoria resolves a vehicle category text to a categoría id.
func MatchCategoria(texto string, categorias []models.CategoriaDto) int {
	if texto == "" {
		return 0
	}
	for _, c := range categorias {
		if matchesLabel(c.Catdsc, texto) {
			return c.ID
		}
	}
	return 0
}

func MatchDestino(texto string, destinos []models.DestinoDto) int {
	if texto == "" {
		return 0
	}
	for _, d := range destinos {
		if matchesLabel(d.Desnom, texto) {
			return d.ID
		}
	}
	return 0
}

func MatchCalidad(texto string, calidades []models.CalidadDto) int {
	if texto == "" {
		return 0
	}
	for _, c := range calidades {
		if matchesLabel(c.Caldsc, texto) {
			return c.ID
		}
	}
	return 0
}

func MatchCombustible(texto string, combustibles []models.CombustibleDto) string {
	if texto == "" {
		return ""
	}
	for _, c := range combustibles {
		if matchesLabel(c.Name, texto) {
			return c.ID
		}
	}
	return ""
}

// MatchMoneda resolves a currency text to a moneda id. Besides the substring
// match it accepts the local-currency synonyms: "uyu", "peso uruguayo" and
// any text containing "uruguayo" all match a moneda whose name contains
// "peso". Returns 0 when unresolved; the caller decides the default.
func MatchMoneda(texto string, monedas []models.MonedaDto) int {
	if texto == "" {
		return 0
	}
	t := strings.ToLower(texto)
	for _, m := range monedas {
		if m.Nombre == "" {
			continue
		}
		nombre := strings.ToLower(m.Nombre)
		if strings.Contains(nombre, t) || strings.Contains(t, nombre) {
			return m.ID
		}
		if (t == "uyu" || t == "peso uruguayo" || strings.Contains(t, "uruguayo")) &&
			strings.Contains(nombre, "peso") {
			return m.ID
		}
	}
	return 0
}

func MatchDepartamento(texto string, departamentos []models.DepartamentoDto) int {
	if texto == "" {
		return 0
	}
	for _, d := range departamentos {
		if matchesLabel(d.Nombre, texto) {
			return d.ID
		}
	}
	return 0
}

// MatchTarifa resolves a coverage text against tarifa candidates. Callers
// must pass the company-filtered active set, see MasterData.TarifasForCompany.
func MatchTarifa(texto string, tarifas []models.TarifaDto) int {
	if texto == "" {
		return 0
	}
	for _, t := range tarifas {
		if matchesLabel(t.Nombre, texto) {
			return t.ID
		}
	}
	return 0
}
