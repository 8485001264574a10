package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/usecase"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ReferenceHandler atiende las listas de consulta de los formularios de captura.
type ReferenceHandler struct {
	uc  *usecase.ReferenceUseCase
	log *logger.Logger
}

// NewReferenceHandler construye el handler.
func NewReferenceHandler(uc *usecase.ReferenceUseCase, log *logger.Logger) *ReferenceHandler {
	return &ReferenceHandler{uc: uc, log: log}
}

// Items godoc
// @Summary      Maestro de ítems
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Item
// @Router       /api/items [get]
func (h *ReferenceHandler) Items(c *fiber.Ctx) error {
	list, err := h.uc.Items(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Stores godoc
// @Summary      Lista de tiendas
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Store
// @Router       /api/stores [get]
func (h *ReferenceHandler) Stores(c *fiber.Ctx) error {
	list, err := h.uc.Stores(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Suppliers godoc
// @Summary      Lista de proveedores
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Supplier
// @Router       /api/suppliers [get]
func (h *ReferenceHandler) Suppliers(c *fiber.Ctx) error {
	list, err := h.uc.Suppliers(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
