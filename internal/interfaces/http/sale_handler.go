package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/sales"
	"github.com/jhoicas/optica-erp/internal/domain"
)

// SaleHandler maneja el ciclo de vida de las ventas: borrador, confirmación, cancelación y pagos.
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create POST /api/sales. Cliente o producto inexistente es un 400: el recurso que falta es parte del cuerpo.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Location == "" {
		in.Location = GetLocation(c)
	}
	out, err := h.uc.CreateDraft(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return writeErrorStatus(c, fiber.StatusBadRequest, "NOT_FOUND", err)
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/sales/:id.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/sales?status=&clientId=&limit=&offset=.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.SaleQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReplaceItems PUT /api/sales/:id/items. Solo en borrador.
func (h *SaleHandler) ReplaceItems(c *fiber.Ctx) error {
	var in dto.ReplaceItemsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.ReplaceItems(c.UserContext(), c.Params("id"), in.Items)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) && domain.ResourceID(err) != c.Params("id") {
			return writeErrorStatus(c, fiber.StatusBadRequest, "NOT_FOUND", err)
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm POST /api/sales/:id/confirm. 400 con el producto en resourceId si falta stock.
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel DELETE /api/sales/:id.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Advance POST /api/sales/:id/status.
func (h *SaleHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceStatusRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Advance(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterPayment POST /api/sales/:id/payments.
func (h *SaleHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterPayment(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments GET /api/sales/:id/payments.
func (h *SaleHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.uc.ListPayments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Receipt GET /api/sales/:id/receipt. Devuelve el comprovante en PDF.
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Receipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
