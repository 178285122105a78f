package service

import (
	"errors"
	"fmt"
	"strings"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/pkg/nullable"
)

type ProductService interface {
	ListProducts(q ProductListQuery) (*Paginated[model.ProductResponse], error)
	GetProduct(id uint) (*model.ProductResponse, error)
	CreateProduct(role string, req *CreateProductRequest) (*model.ProductResponse, error)
	UpdateProduct(role string, id uint, req *UpdateProductRequest) (*model.ProductResponse, error)
	DeleteProduct(role string, id uint) error

	ListStockMaster() ([]model.StockRef, error)
	ListProductStocks(productID uint) ([]model.AttachedStock, error)
	AttachStock(role string, productID uint, req *AttachStockRequest) (*model.ProductStock, error)
	UpdateAttachedStock(role string, productID, stockID uint, req *UpdateAttachedStockRequest) (*model.ProductStock, error)
	DetachStock(role string, productID, stockID uint) error
}

// ProductListQuery: nil filters are not applied.
type ProductListQuery struct {
	Search     string
	CategoryID *uint
	Active     *bool
	Page       int
	PerPage    int
}

type CreateProductRequest struct {
	CategoryID *int64  `json:"category_id" validate:"required"`
	Name       *string `json:"name" validate:"required,max=120"`
	Price      *int64  `json:"price" validate:"required,min=0"`
	Qty        *int64  `json:"qty" validate:"omitempty,min=0"`
	Active     *bool   `json:"active"`
}

// UpdateProductRequest: only keys present in the body are applied.
// category_id, name and price may not be null; a null qty stores 0; a null
// active leaves the flag as it is.
type UpdateProductRequest struct {
	CategoryID nullable.Field[int64]  `json:"category_id"`
	Name       nullable.Field[string] `json:"name" validate:"omitempty,max=120"`
	Price      nullable.Field[int64]  `json:"price" validate:"omitempty,min=0"`
	Qty        nullable.Field[int64]  `json:"qty" validate:"omitempty,min=0"`
	Active     nullable.Field[bool]   `json:"active"`
}

type productService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	categoryRepo repository.CategoryRepository
	attachments  *attachments
	publisher    Publisher
}

func NewProductService(
	pRepo repository.ProductRepository,
	sRepo repository.StockRepository,
	cRepo repository.CategoryRepository,
	psRepo repository.ProductStockRepository,
	publisher Publisher,
) ProductService {
	return &productService{
		productRepo:  pRepo,
		stockRepo:    sRepo,
		categoryRepo: cRepo,
		attachments: &attachments{
			productRepo: pRepo,
			stockRepo:   sRepo,
			pivotRepo:   psRepo,
		},
		publisher: publisher,
	}
}

func (s *productService) publish(action string, data interface{}, message string) {
	if s.publisher != nil {
		s.publisher.Publish(action, data, message)
	}
}

func (s *productService) ListProducts(q ProductListQuery) (*Paginated[model.ProductResponse], error) {
	perPage := ClampPerPage(q.PerPage)
	page := q.Page
	if page < 1 {
		page = 1
	}

	products, total, err := s.productRepo.FindPaginated(repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
		Active:     q.Active,
	}, page, perPage)
	if err != nil {
		return nil, err
	}

	data := make([]model.ProductResponse, len(products))
	for i := range products {
		data[i] = products[i].ToResponse(true)
	}
	return newPaginated(data, page, perPage, total), nil
}

func (s *productService) findProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *productService) GetProduct(id uint) (*model.ProductResponse, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}
	resp := product.ToResponse(true)
	return &resp, nil
}

// checkCategory adds a category_id error when id does not reference a category.
func (s *productService) checkCategory(v *ValidationError, id int64) error {
	exists := false
	if id > 0 {
		var err error
		if exists, err = s.categoryRepo.Exists(uint(id)); err != nil {
			return err
		}
	}
	if !exists {
		v.Add("category_id", invalidSelectionMessage("category_id"))
	}
	return nil
}

func (s *productService) CreateProduct(role string, req *CreateProductRequest) (*model.ProductResponse, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	v := validateRequest(req)
	requireText(v, "name", req.Name)
	if req.CategoryID != nil && v.Fields["category_id"] == nil {
		if err := s.checkCategory(v, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID: uint(*req.CategoryID),
		Name:       *req.Name,
		Price:      *req.Price,
		Qty:        0,
		Active:     true,
	}
	if req.Qty != nil {
		product.Qty = *req.Qty
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	// reload to attach category {id, name}
	created, err := s.findProduct(product.ID)
	if err != nil {
		return nil, err
	}

	resp := created.ToResponse(false)
	s.publish("product_created", resp, fmt.Sprintf("Product '%s' created", created.Name))
	return &resp, nil
}

func (s *productService) UpdateProduct(role string, id uint, req *UpdateProductRequest) (*model.ProductResponse, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}

	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name.Present() {
		req.Name.Value = strings.TrimSpace(req.Name.Value)
	}

	v := validateRequest(req)
	if req.CategoryID.Blank() {
		v.Replace("category_id", requiredMessage("category_id"))
	} else if req.CategoryID.Present() {
		if err := s.checkCategory(v, req.CategoryID.Value); err != nil {
			return nil, err
		}
	}
	if req.Name.Blank() {
		v.Replace("name", requiredMessage("name"))
	}
	if req.Price.Blank() {
		v.Replace("price", requiredMessage("price"))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if req.CategoryID.Present() {
		product.CategoryID = uint(req.CategoryID.Value)
	}
	if req.Name.Present() {
		product.Name = req.Name.Value
	}
	if req.Price.Present() {
		product.Price = req.Price.Value
	}
	if req.Qty.Set {
		// explicit null stores 0
		product.Qty = req.Qty.OrElse(0)
	}
	if req.Active.Present() {
		product.Active = req.Active.Value
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	updated, err := s.findProduct(product.ID)
	if err != nil {
		return nil, err
	}

	resp := updated.ToResponse(false)
	s.publish("product_updated", resp, fmt.Sprintf("Product '%s' updated", updated.Name))
	return &resp, nil
}

func (s *productService) DeleteProduct(role string, id uint) error {
	if err := EnsureAdmin(role); err != nil {
		return err
	}

	err := s.productRepo.Delete(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrProductInUse
	case err != nil:
		return err
	}

	s.publish("product_deleted", map[string]uint{"id": id}, "Product deleted")
	return nil
}

func (s *productService) ListStockMaster() ([]model.StockRef, error) {
	stocks, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	refs := make([]model.StockRef, len(stocks))
	for i := range stocks {
		refs[i] = stocks[i].ToRef()
	}
	return refs, nil
}

func (s *productService) ListProductStocks(productID uint) ([]model.AttachedStock, error) {
	rows, err := s.attachments.listAttached(productID)
	if err != nil {
		return nil, err
	}
	out := make([]model.AttachedStock, len(rows))
	for i, r := range rows {
		out[i] = r.ToAttachedStock()
	}
	return out, nil
}

func (s *productService) AttachStock(role string, productID uint, req *AttachStockRequest) (*model.ProductStock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}
	row, err := s.attachments.attach(productID, req)
	if err != nil {
		return nil, err
	}
	s.publish("product_stock_attached", row, "Stock attached")
	return row, nil
}

func (s *productService) UpdateAttachedStock(role string, productID, stockID uint, req *UpdateAttachedStockRequest) (*model.ProductStock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}
	row, err := s.attachments.update(productID, stockID, req)
	if err != nil {
		return nil, err
	}
	s.publish("product_stock_updated", row, "Product stock updated")
	return row, nil
}

func (s *productService) DetachStock(role string, productID, stockID uint) error {
	if err := EnsureAdmin(role); err != nil {
		return err
	}
	if err := s.attachments.detach(productID, stockID); err != nil {
		return err
	}
	s.publish("product_stock_detached", map[string]uint{"product_id": productID, "stock_id": stockID}, "Stock detached")
	return nil
}
