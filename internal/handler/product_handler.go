package handler

import (
	"strconv"

	"go-mesinkasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GET /api/products?search=&category_id=&active=&page=&per_page=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	q := service.ProductListQuery{
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: service.DefaultPerPage,
	}

	if raw := c.Query("per_page"); raw != "" {
		// non numeric clamps to 1
		q.PerPage, _ = strconv.Atoi(raw)
	}
	if raw := c.Query("category_id"); raw != "" {
		id, _ := strconv.ParseUint(raw, 10, 64)
		categoryID := uint(id)
		q.CategoryID = &categoryID
	}
	if c.Context().QueryArgs().Has("active") {
		active := queryBool(c.Query("active"))
		q.Active = &active
	}

	page, err := h.service.ListProducts(q)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", page)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	var req service.CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(actorRole(c), &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Product created", product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	var req service.UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(actorRole(c), id, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product updated", product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(actorRole(c), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product deleted", nil)
}

// GET /api/products/stocks-master
func (h *ProductHandler) GetStockMaster(c *fiber.Ctx) error {
	stocks, err := h.service.ListStockMaster()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stocks)
}

// GET /api/products/:id/stocks
func (h *ProductHandler) GetProductStocks(c *fiber.Ctx) error {
	id, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return err
	}

	stocks, err := h.service.ListProductStocks(id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", stocks)
}

// POST /api/products/:id/stocks
func (h *ProductHandler) AttachStock(c *fiber.Ctx) error {
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

	row, err := h.service.AttachStock(actorRole(c), id, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Stock attached", row)
}

// PATCH /api/products/:id/stocks/:stockId
func (h *ProductHandler) UpdateAttachedStock(c *fiber.Ctx) error {
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

	row, err := h.service.UpdateAttachedStock(actorRole(c), productID, stockID, &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product stock updated", row)
}

// DELETE /api/products/:id/stocks/:stockId
func (h *ProductHandler) DetachStock(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	productID, stockID, err := pairParams(c)
	if err != nil {
		return err
	}

	if err := h.service.DetachStock(actorRole(c), productID, stockID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Stock detached", nil)
}

func pairParams(c *fiber.Ctx) (uint, uint, error) {
	productID, err := paramID(c, "id", service.ErrProductNotFound)
	if err != nil {
		return 0, 0, err
	}
	stockID, err := paramID(c, "stockId", service.ErrStockNotFound)
	if err != nil {
		return 0, 0, err
	}
	return productID, stockID, nil
}
