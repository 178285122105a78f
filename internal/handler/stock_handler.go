package handler

import (
	"go-mesinkasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.ListStocks()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stocks)
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	id, err := paramID(c, "id", service.ErrStockNotFound)
	if err != nil {
		return err
	}

	stock, err := h.service.GetStock(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stock)
}

func (h *StockHandler) CreateStock(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	var req service.CreateStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	stock, err := h.service.CreateStock(actorRole(c), &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Stock created", stock)
}

func (h *StockHandler) UpdateStock(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	id, err := paramID(c, "id", service.ErrStockNotFound)
	if err != nil {
		return err
	}

	var req service.UpdateStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	stock, err := h.service.UpdateStock(actorRole(c), id, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Stock updated", stock)
}

func (h *StockHandler) DeleteStock(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	id, err := paramID(c, "id", service.ErrStockNotFound)
	if err != nil {
		return err
	}

	if err := h.service.DeleteStock(actorRole(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Stock deleted", nil)
}

// GET /api/stocks/:id/histories
func (h *StockHandler) GetStockHistories(c *fiber.Ctx) error {
	id, err := paramID(c, "id", service.ErrStockNotFound)
	if err != nil {
		return err
	}

	rows, err := h.service.ListStockHistories(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", rows)
}

// GET /api/stocks/products/:id/stocks
func (h *StockHandler) GetProductStocks(c *fiber.Ctx) error {
	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	rows, err := h.service.ListProductStocks(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", rows)
}

func (h *StockHandler) AttachToProduct(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	var req service.AttachStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	row, err := h.service.AttachToProduct(actorRole(c), id, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Attached", row)
}

func (h *StockHandler) UpdateProductStock(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	productID, stockID, err := pairParams(c)
	if err != nil {
		return err
	}

	var req service.UpdateAttachedStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	row, err := h.service.UpdateProductStock(actorRole(c), productID, stockID, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Updated", row)
}

func (h *StockHandler) DetachFromProduct(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	productID, stockID, err := pairParams(c)
	if err != nil {
		return err
	}

	if err := h.service.DetachFromProduct(actorRole(c), productID, stockID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Detached", nil)
}
