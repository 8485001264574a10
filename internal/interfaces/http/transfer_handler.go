package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// TransferHandler atiende los traslados entre tiendas (점간이동).
type TransferHandler struct {
	uc  *inventory.TransferUseCase
	log *logger.Logger
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase, log *logger.Logger) *TransferHandler {
	return &TransferHandler{uc: uc, log: log}
}

// Execute godoc
// @Summary      Trasladar stock entre tiendas
// @Description  Debita from_store, acredita store_id y escribe un asiento move en una sola transacción.
// @Description  stock_id y new_qty, si se envían, deben coincidir con la fila de origen bloqueada.
// @Tags         transfers
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      dto.TransferRequest  true  "traslado"
// @Success      201   {object}  dto.Envelope{data=dto.TransferResponse}
// @Failure      400   {object}  dto.ErrorResponse  "validación o stock insuficiente"
// @Failure      404   {object}  dto.ErrorResponse  "el origen no tiene fila de stock"
// @Failure      409   {object}  dto.ErrorResponse  "el snapshot cambió desde que se abrió el formulario"
// @Router       /api/transfers [post]
func (h *TransferHandler) Execute(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetRecorder(c)
	}
	if err := validateStruct(&in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Message: "transfer completed", Data: out})
}
