package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// StockHandler expone el snapshot de stock por tienda.
type StockHandler struct {
	uc  *usecase.StockUseCase
	log *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar el stock de una tienda
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        store_id  query     string  true   "código de tienda"
// @Param        limit     query     int     false  "tamaño de página"  default(50)
// @Param        offset    query     int     false  "desplazamiento"     default(0)
// @Success      200       {object}  dto.StoreStockListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), c.Query("store_id"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una fila de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "id de la fila de stock"
// @Success      200  {object}  dto.StoreStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
