package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"poliza-service/internal/apiutil"
	"poliza-service/internal/models"
	"poliza-service/internal/repository"
	"poliza-service/internal/services"
	"poliza-service/internal/velneo"
)

type WizardHandler struct {
	wizardService *services.WizardService
}

func NewWizardHandler(wizardService *services.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

func (h *WizardHandler) Register(app *fiber.App, authMiddleware fiber.Handler) {
	api := app.Group("/api/v1", authMiddleware)

	api.Get("/clientes", h.SearchClients)
	api.Get("/companies", h.ListCompanies)
	api.Get("/secciones", h.ListSecciones)

	sessions := api.Group("/wizard/sessions")
	sessions.Post("/", h.StartSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Post("/:id/client", h.SelectClient)
	sessions.Post("/:id/company", h.SelectCompany)
	sessions.Post("/:id/masters", h.LoadMasters)
	sessions.Post("/:id/document", h.ProcessDocument)
	sessions.Put("/:id/form", h.UpdateForm)
	sessions.Post("/:id/submit", h.Submit)
	sessions.Post("/:id/back", h.GoBack)
	sessions.Post("/:id/reset", h.ResetSession)
}

func (h *WizardHandler) StartSession(c fiber.Ctx) error {
	session, err := h.wizardService.StartSession(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) GetSession(c fiber.Ctx) error {
	session, err := h.wizardService.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) SearchClients(c fiber.Ctx) error {
	filtro := c.Query("filtro")
	if filtro == "" {
		return c.JSON(apiutil.CreateSuccessResponse([]models.ClientDto{}))
	}
	clients, err := h.wizardService.SearchClients(c.Context(), filtro)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(clients))
}

func (h *WizardHandler) ListCompanies(c fiber.Ctx) error {
	companies, err := h.wizardService.ListCompanies(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(companies))
}

func (h *WizardHandler) ListSecciones(c fiber.Ctx) error {
	secciones, err := h.wizardService.ListSecciones(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(secciones))
}

func (h *WizardHandler) SelectClient(c fiber.Ctx) error {
	var client models.ClientDto
	if err := c.Bind().Body(&client); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "invalid client payload: "+err.Error()))
	}
	if client.ID == 0 {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "client id is required"))
	}
	session, err := h.wizardService.SelectClient(c.Context(), c.Params("id"), client)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

type selectCompanyRequest struct {
	Company models.CompanyDto `json:"company"`
	Section models.SeccionDto `json:"section"`
}

func (h *WizardHandler) SelectCompany(c fiber.Ctx) error {
	var req selectCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "invalid company payload: "+err.Error()))
	}
	if req.Company.ID == 0 || req.Section.ID == 0 {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "company and section ids are required"))
	}
	session, err := h.wizardService.SelectCompany(c.Context(), c.Params("id"), req.Company, req.Section)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) LoadMasters(c fiber.Ctx) error {
	session, err := h.wizardService.LoadMasters(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) ProcessDocument(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "file part is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "could not open upload: "+err.Error()))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "could not read upload: "+err.Error()))
	}

	session, err := h.wizardService.ProcessDocument(c.Context(), c.Params("id"), fileHeader.Filename, data)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) UpdateForm(c fiber.Ctx) error {
	var form models.PolizaForm
	if err := c.Bind().Body(&form); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "invalid form payload: "+err.Error()))
	}
	session, err := h.wizardService.UpdateForm(c.Context(), c.Params("id"), form)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) Submit(c fiber.Ctx) error {
	response, validation, err := h.wizardService.Submit(c.Context(), c.Params("id"))
	if errors.Is(err, services.ErrValidationFailed) {
		return c.Status(http.StatusUnprocessableEntity).JSON(
			apiutil.CreateValidationErrorResponse(validation.Errors))
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(response))
}

type goBackRequest struct {
	Step models.WizardStep `json:"step"`
}

func (h *WizardHandler) GoBack(c fiber.Ctx) error {
	var req goBackRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_REQUEST", "invalid step payload: "+err.Error()))
	}
	session, err := h.wizardService.GoBack(c.Context(), c.Params("id"), req.Step)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

func (h *WizardHandler) ResetSession(c fiber.Ctx) error {
	session, err := h.wizardService.ResetSession(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(apiutil.CreateSuccessResponse(session))
}

// fail maps service errors onto HTTP statuses.
func (h *WizardHandler) fail(c fiber.Ctx, err error) error {
	var svcErr *velneo.ServiceError

	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return c.Status(http.StatusNotFound).JSON(
			apiutil.CreateErrorResponse("SESSION_NOT_FOUND", err.Error()))
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrInvalidStep):
		return c.Status(http.StatusConflict).JSON(
			apiutil.CreateErrorResponse("INVALID_TRANSITION", err.Error()))
	case errors.Is(err, models.ErrSelectionIncomplete):
		return c.Status(http.StatusConflict).JSON(
			apiutil.CreateErrorResponse("SELECTION_INCOMPLETE", err.Error()))
	case errors.Is(err, models.ErrSubmissionInFlight):
		return c.Status(http.StatusConflict).JSON(
			apiutil.CreateErrorResponse("SUBMISSION_IN_FLIGHT", err.Error()))
	case errors.Is(err, services.ErrNotAPDF):
		return c.Status(http.StatusBadRequest).JSON(
			apiutil.CreateErrorResponse("INVALID_DOCUMENT", err.Error()))
	case errors.As(err, &svcErr):
		slog.Error("Collaborator rejected request", "status", svcErr.StatusCode, "body", svcErr.Body)
		return c.Status(http.StatusBadGateway).JSON(
			apiutil.CreateErrorResponse("UPSTREAM_ERROR", err.Error()))
	case errors.Is(err, velneo.ErrUnreachable):
		return c.Status(http.StatusBadGateway).JSON(
			apiutil.CreateErrorResponse("UPSTREAM_UNREACHABLE", err.Error()))
	default:
		slog.Error("Unhandled wizard error", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(
			apiutil.CreateErrorResponse("INTERNAL_ERROR", err.Error()))
	}
}
