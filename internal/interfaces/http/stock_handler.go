package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocy-stock/internal/application/dto"
	appstock "github.com/jhoicas/grocy-stock/internal/application/stock"
	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// StockHandler expone la vista agrupada y las intenciones de mutación.
type StockHandler struct {
	refresher *appstock.RefreshUseCase
	mutations *appstock.MutationCoordinator
}

// NewStockHandler construye el handler.
func NewStockHandler(refresher *appstock.RefreshUseCase, mutations *appstock.MutationCoordinator) *StockHandler {
	return &StockHandler{refresher: refresher, mutations: mutations}
}

// Get godoc
// @Summary      Vista agrupada del stock
// @Description  Devuelve la última vista confirmada; si no existe, ejecuta un refresco.
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockViewResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	snap, err := h.refresher.Current(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(appstock.ToViewResponse(snap))
}

// Refresh godoc
// @Summary      Refrescar el stock
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.StockViewResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/refresh [post]
func (h *StockHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.refresher.Refresh(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(appstock.ToViewResponse(snap))
}

// Consume godoc
// @Summary      Consumir una unidad
// @Tags         stock
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockViewResponse
// @Success      202  {object}  dto.ErrorResponse  "aplicado, vista no refrescada"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de producto inválido"})
	}
	snap, err := h.mutations.Consume(c.UserContext(), id)
	return h.mutationResponse(c, snap, err)
}

// Add godoc
// @Summary      Añadir una unidad
// @Tags         stock
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockViewResponse
// @Success      202  {object}  dto.ErrorResponse  "aplicado, vista no refrescada"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de producto inválido"})
	}
	snap, err := h.mutations.AddOne(c.UserContext(), id)
	return h.mutationResponse(c, snap, err)
}

func (h *StockHandler) mutationResponse(c *fiber.Ctx, snap appstock.Snapshot, err error) error {
	if err == nil {
		return c.JSON(appstock.ToViewResponse(snap))
	}
	var rej *appstock.RejectionError
	switch {
	case errors.Is(err, domain.ErrAppliedNotRefreshed):
		return c.Status(fiber.StatusAccepted).JSON(dto.ErrorResponse{Code: "APPLIED_REFRESH_FAILED", Message: domain.ErrAppliedNotRefreshed.Error()})
	case errors.As(err, &rej):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "REJECTED", Message: rej.Message})
	case errors.Is(err, domain.ErrConnectivity):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CONNECTIVITY", Message: domain.ErrConnectivity.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
