package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// PurchaseHandler atiende el libro de compras (사입).
type PurchaseHandler struct {
	uc  *inventory.PurchaseUseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar una compra
// @Description  Inserta un asiento de compra. Si viene id se edita el asiento existente.
// @Tags         purchases
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.PurchaseRequest  true  "línea de compra"
// @Success      201   {object}  dto.Envelope{data=dto.LedgerEntryResponse}
// @Success      200   {object}  dto.Envelope{data=dto.LedgerEntryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Record(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	return h.record(c, in)
}

// Update godoc
// @Summary      Actualizar una compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      int                  true  "id del asiento"
// @Param        body  body      dto.PurchaseRequest  true  "línea de compra"
// @Success      200   {object}  dto.Envelope{data=dto.LedgerEntryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.PurchaseRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	in.ID = id
	return h.record(c, in)
}

func (h *PurchaseHandler) record(c *fiber.Ctx, in dto.PurchaseRequest) error {
	if in.CreatedBy == "" {
		in.CreatedBy = GetRecorder(c)
	}
	if err := validateStruct(&in); err != nil {
		return writeError(c, h.log, err)
	}
	out, created, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Message: "purchase recorded", Data: out})
	}
	return c.JSON(dto.Envelope{Success: true, Message: "purchase updated", Data: out})
}

// GetByID godoc
// @Summary      Obtener un asiento del libro
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "id del asiento"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar asientos del libro
// @Description  Del más nuevo al más viejo. status filtra por new, update o move; from/to acotan la fecha del movimiento.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        store_id  query     string  false  "código de tienda"
// @Param        status    query     string  false  "new, update o move"
// @Param        from      query     string  false  "YYYY-MM-DD"
// @Param        to        query     string  false  "YYYY-MM-DD"
// @Param        limit     query     int     false  "tamaño de página"  default(50)
// @Param        offset    query     int     false  "desplazamiento"     default(0)
// @Success      200       {object}  dto.LedgerListResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	q := inventory.LedgerQuery{
		StoreID: c.Query("store_id"),
		Status:  c.Query("status"),
		From:    c.Query("from"),
		To:      c.Query("to"),
		Page:    dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)},
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
