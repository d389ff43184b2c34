package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optica-erp/internal/application/dto"
	"github.com/jhoicas/optica-erp/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler maneja registros, movimientos y reportes de inventario.
type InventoryHandler struct {
	register      *inventory.RegisterMovementUseCase
	query         *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	query *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{register: register, query: query, replenishment: replenishment}
}

// location toma ?location= y si falta el local del token.
func location(c *fiber.Ctx) string {
	if loc := c.Query("location"); loc != "" {
		return loc
	}
	return GetLocation(c)
}

// RegisterMovement POST /api/inventory/movements. Devuelve las entradas escritas (dos en un traslado).
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Location == "" && in.Type != "transfer" {
		in.Location = GetLocation(c)
	}
	out, err := h.register.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movements": out})
}

// ListRecords GET /api/inventory?location=.
func (h *InventoryHandler) ListRecords(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	page.DefaultPage()
	out, err := h.query.ListByLocation(c.UserContext(), location(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "page": dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// GetRecord GET /api/inventory/:productId?location=. 404 si el registro no existe.
func (h *InventoryHandler) GetRecord(c *fiber.Ctx) error {
	out, err := h.query.GetRecord(c.UserContext(), c.Params("productId"), location(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetLevels PUT /api/inventory/:productId/levels.
func (h *InventoryHandler) SetLevels(c *fiber.Ctx) error {
	var in dto.SetLevelsRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if in.Location == "" {
		in.Location = location(c)
	}
	out, err := h.query.SetLevels(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// movementQuery lee los filtros del libro; from/to en RFC3339 o AAAA-MM-DD.
func movementQuery(c *fiber.Ctx) (dto.MovementQuery, bool, error) {
	var q dto.MovementQuery
	if ok, err := parseQuery(c, &q); !ok {
		return q, false, err
	}
	for key, dst := range map[string]**time.Time{"from": &q.From, "to": &q.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := parseTime(raw)
		if err != nil {
			return q, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: key + " debe ser una fecha RFC3339 o AAAA-MM-DD"})
		}
		*dst = &t
	}
	return q, true, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

// ListMovements GET /api/inventory/movements?productId=&referenceId=&location=&type=&from=&to=.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	q, ok, err := movementQuery(c)
	if !ok {
		return err
	}
	q.DefaultPage()
	out, err := h.query.ListMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "page": dto.PageResponse{Limit: q.Limit, Offset: q.Offset}})
}

// ExportMovements GET /api/inventory/movements/export. Mismos filtros, sin paginación.
func (h *InventoryHandler) ExportMovements(c *fiber.Ctx) error {
	q, ok, err := movementQuery(c)
	if !ok {
		return err
	}
	out, err := h.query.ExportMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimentos.xlsx"`)
	return c.Send(out)
}

// GetReplenishmentList GET /api/inventory/replenishment?location=.
// Registros bajo su mínimo con la cantidad sugerida de pedido, ordenados por déficit.
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), location(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
