package models

// ClientDto is a client record as served by the Velneo middleware.
// Field names follow the Velneo column naming (clinom, cliruc, ...).
type ClientDto struct {
	ID       int    `json:"id"`
	Clinom   string `json:"clinom"`
	Cliruc   string `json:"cliruc"`
	Clidir   string `json:"clidir"`
	Clitel   string `json:"clitel,omitempty"`
	Cliemail string `json:"cliemail,omitempty"`
}

type CompanyDto struct {
	ID       int    `json:"id"`
	Comnom   string `json:"comnom"`
	Comalias string `json:"comalias"`
	Activo   bool   `json:"activo"`
}

type SeccionDto struct {
	ID      int    `json:"id"`
	Seccion string `json:"seccion"`
	Activo  bool   `json:"activo"`
}
