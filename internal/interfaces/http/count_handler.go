package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// CountHandler atiende los conteos físicos (재고조사).
type CountHandler struct {
	uc  *inventory.CountUseCase
	log *logger.Logger
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *inventory.CountUseCase, log *logger.Logger) *CountHandler {
	return &CountHandler{uc: uc, log: log}
}

func (h *CountHandler) bind(c *fiber.Ctx) (dto.CountRequest, error) {
	var in dto.CountRequest
	if err := bindBody(c, &in); err != nil {
		return in, err
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetRecorder(c)
	}
	return in, validateStruct(&in)
}

// Record godoc
// @Summary      Registrar un conteo físico
// @Description  Un conteo por tienda, ítem y fecha. Un conteo de cero es válido.
// @Tags         counts
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.CountRequest  true  "conteo"
// @Success      201   {object}  dto.Envelope{data=dto.CountResponse}
// @Failure      400   {object}  dto.ErrorResponse  "validación o conteo duplicado"
// @Router       /api/counts [post]
func (h *CountHandler) Record(c *fiber.Ctx) error {
	in, err := h.bind(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Message: "count recorded", Data: out})
}

// Update godoc
// @Summary      Actualizar un conteo físico
// @Tags         counts
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      int               true  "id del conteo"
// @Param        body  body      dto.CountRequest  true  "conteo"
// @Success      200   {object}  dto.Envelope{data=dto.CountResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [put]
func (h *CountHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	in, err := h.bind(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "count updated", Data: out})
}

// GetByID godoc
// @Summary      Obtener un conteo físico
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "id del conteo"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [get]
func (h *CountHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar los conteos de una tienda
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        store_id  query     string  true   "código de tienda"
// @Param        from      query     string  false  "YYYY-MM-DD"
// @Param        to        query     string  false  "YYYY-MM-DD"
// @Param        limit     query     int     false  "tamaño de página"  default(50)
// @Param        offset    query     int     false  "desplazamiento"     default(0)
// @Success      200       {object}  dto.CountListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), inventory.CountQuery{
		StoreID: c.Query("store_id"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Page:    dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)},
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
