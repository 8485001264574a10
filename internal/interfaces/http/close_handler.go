package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// CloseHandler ejecuta el cierre de mes (월마감) e imprime la hoja de stock.
type CloseHandler struct {
	uc  *inventory.CloseUseCase
	log *logger.Logger
}

// NewCloseHandler construye el handler.
func NewCloseHandler(uc *inventory.CloseUseCase, log *logger.Logger) *CloseHandler {
	return &CloseHandler{uc: uc, log: log}
}

// Close godoc
// @Summary      Cierre de mes
// @Description  Asigna a cada ítem contado su último conteo en el snapshot. Ejecutarlo dos veces no hace daño.
// @Tags         closes
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.CloseRequest  true  "tienda y mes opcional (YYYY-MM)"
// @Success      200   {object}  dto.Envelope{data=dto.CloseResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/closes [post]
func (h *CloseHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if err := validateStruct(&in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Close(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "close completed", Data: out})
}

// Sheet godoc
// @Summary      Hoja de stock imprimible
// @Description  PDF del snapshot de la tienda con una columna en blanco para la cantidad contada.
// @Tags         closes
// @Security     Bearer
// @Produce      application/pdf
// @Param        store_id  query     string  true  "código de tienda"
// @Success      200       {file}    file
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/closes/sheet [get]
func (h *CloseHandler) Sheet(c *fiber.Ctx) error {
	storeID := c.Query("store_id")
	if storeID == "" {
		return writeError(c, h.log, fmt.Errorf("%w: store_id is required", domain.ErrInvalidInput))
	}
	pdf, err := h.uc.Sheet(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="stock-%s.pdf"`, storeID))
	return c.Send(pdf)
}
