package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"poliza-service/internal/apiutil"
	"poliza-service/internal/models"
	"poliza-service/internal/repository"
)

type HistoryHandler struct {
	polizaRepo *repository.PolizaRepository
}

func NewHistoryHandler(polizaRepo *repository.PolizaRepository) *HistoryHandler {
	return &HistoryHandler{polizaRepo: polizaRepo}
}

func (h *HistoryHandler) Register(app *fiber.App, authMiddleware fiber.Handler) {
	api := app.Group("/api/v1", authMiddleware)
	api.Get("/polizas/historial", h.ListHistory)
}

// ListHistory returns the local record of pólizas pushed into Velneo.
func (h *HistoryHandler) ListHistory(c fiber.Ctx) error {
	filters := models.HistoryFilters{
		NumeroPoliza: c.Query("numeroPoliza"),
		ClienteID:    queryInt(c, "clienteId"),
		CompaniaID:   queryInt(c, "companiaId"),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	}

	page, err := h.polizaRepo.List(filters)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(
			apiutil.CreateErrorResponse("INTERNAL_ERROR", err.Error()))
	}
	return c.JSON(apiutil.CreateSuccessResponse(page))
}

func queryInt(c fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
