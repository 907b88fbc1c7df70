package services

import (
	"strings"

	"poliza-service/internal/models"
)

// Pre-flight rules for the creation payload. Every rule is evaluated, in
// this order, so the caller gets the complete list of violations at once.
var createRules = []struct {
	message string
	ok      func(*models.PolizaCreateRequest) bool
}{
	{"compañía es requerida", func(r *models.PolizaCreateRequest) bool { return r.Comcod != 0 }},
	{"cliente es requerido", func(r *models.PolizaCreateRequest) bool { return r.Clinro != 0 }},
	{"sección es requerida", func(r *models.PolizaCreateRequest) bool { return r.Seccod != 0 }},
	{"número de póliza es requerido", func(r *models.PolizaCreateRequest) bool { return strings.TrimSpace(r.Conpol) != "" }},
	{"fecha de vigencia desde es requerida", func(r *models.PolizaCreateRequest) bool { return r.Confchdes != "" }},
	{"fecha de vigencia hasta es requerida", func(r *models.PolizaCreateRequest) bool { return r.Confchhas != "" }},
	{"premio debe ser mayor a cero", func(r *models.PolizaCreateRequest) bool { return r.Conpremio > 0 }},
	{"asegurado es requerido", func(r *models.PolizaCreateRequest) bool { return strings.TrimSpace(r.Asegurado) != "" }},
}

// ValidateCreateRequest checks the built payload against every required-field
// rule. It never short-circuits.
func ValidateCreateRequest(req *models.PolizaCreateRequest) models.ValidationResult {
	var violations []string
	for _, rule := range createRules {
		if !rule.ok(req) {
			violations = append(violations, rule.message)
		}
	}
	return models.ValidationResult{
		Valid:  len(violations) == 0,
		Errors: violations,
	}
}
