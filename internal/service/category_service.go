package service

import (
	"strings"

	"go-mesinkasir/internal/model"
)

type CategoryService interface {
	ListCategories() ([]model.ProductCategory, error)
	CreateCategory(role string, req *CreateCategoryRequest) (*model.ProductCategory, error)
}

type CreateCategoryRequest struct {
	Name *string `json:"name" validate:"required,max=80"`
}

type categoryService struct {
	repo categoryStore
}

// categoryStore is the subset of the category repository the service needs.
type categoryStore interface {
	FindAll() ([]model.ProductCategory, error)
	ExistsByName(name string) (bool, error)
	Create(category *model.ProductCategory) error
}

func NewCategoryService(repo categoryStore) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) ListCategories() ([]model.ProductCategory, error) {
	categories, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.ProductCategory{}
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(role string, req *CreateCategoryRequest) (*model.ProductCategory, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	v := validateRequest(req)
	requireText(v, "name", req.Name)
	if req.Name != nil && v.Fields["name"] == nil {
		taken, err := s.repo.ExistsByName(*req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			v.Add("name", takenMessage("name"))
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	category := &model.ProductCategory{Name: *req.Name}
	if err := s.repo.Create(category); err != nil {
		return nil, duplicateName(err)
	}
	return category, nil
}
