package handler

import (
	"go-mesinkasir/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "OK", categories)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	if err := service.EnsureAdmin(actorRole(c)); err != nil {
		return err
	}

	var req service.CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(actorRole(c), &req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Category created", category)
}
