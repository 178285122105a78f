package service

import (
	"errors"
	"fmt"
	"strings"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/pkg/nullable"
)

const stockHistoryLimit = 100

type StockService interface {
	ListStocks() ([]model.Stock, error)
	GetStock(id uint) (*model.Stock, error)
	CreateStock(role string, req *CreateStockRequest) (*model.Stock, error)
	UpdateStock(role string, id uint, req *UpdateStockRequest) (*model.Stock, error)
	DeleteStock(role string, id uint) error
	ListStockHistories(stockID uint) ([]model.StockHistory, error)

	ListProductStocks(productID uint) ([]model.AttachedStockDetail, error)
	AttachToProduct(role string, productID uint, req *AttachStockRequest) (*model.ProductStock, error)
	UpdateProductStock(role string, productID, stockID uint, req *UpdateAttachedStockRequest) (*model.ProductStock, error)
	DetachFromProduct(role string, productID, stockID uint) error
}

type CreateStockRequest struct {
	Name        *string `json:"name" validate:"required,max=80"`
	Unit        *string `json:"unit" validate:"required,oneof=pcs gram kg"`
	UnitMeasure *string `json:"unitmeasure" validate:"omitempty,max=50"`
	Qty         *int64  `json:"qty" validate:"omitempty,min=0"`
	BuyPrice    *int64  `json:"buy_price" validate:"omitempty,min=0"`
	Active      *bool   `json:"active"`
}

// UpdateStockRequest: only keys present in the body are applied. A null qty
// or buy_price stores 0, a null unitmeasure clears it.
type UpdateStockRequest struct {
	Name        nullable.Field[string] `json:"name" validate:"omitempty,max=80"`
	Unit        nullable.Field[string] `json:"unit" validate:"omitempty,oneof=pcs gram kg"`
	UnitMeasure nullable.Field[string] `json:"unitmeasure" validate:"omitempty,max=50"`
	Qty         nullable.Field[int64]  `json:"qty" validate:"omitempty,min=0"`
	BuyPrice    nullable.Field[int64]  `json:"buy_price" validate:"omitempty,min=0"`
	Active      nullable.Field[bool]   `json:"active"`
}

type stockService struct {
	stockRepo   repository.StockRepository
	historyRepo repository.StockHistoryRepository
	attachments *attachments
	publisher   Publisher
}

func NewStockService(
	sRepo repository.StockRepository,
	pRepo repository.ProductRepository,
	psRepo repository.ProductStockRepository,
	hRepo repository.StockHistoryRepository,
	publisher Publisher,
) StockService {
	return &stockService{
		stockRepo:   sRepo,
		historyRepo: hRepo,
		attachments: &attachments{
			productRepo: pRepo,
			stockRepo:   sRepo,
			pivotRepo:   psRepo,
		},
		publisher: publisher,
	}
}

func (s *stockService) publish(action string, data interface{}, message string) {
	if s.publisher != nil {
		s.publisher.Publish(action, data, message)
	}
}

func (s *stockService) ListStocks() ([]model.Stock, error) {
	stocks, err := s.stockRepo.FindAll()
	if err != nil {
		return nil, err
	}
	if stocks == nil {
		stocks = []model.Stock{}
	}
	return stocks, nil
}

func (s *stockService) GetStock(id uint) (*model.Stock, error) {
	stock, err := s.stockRepo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStockNotFound
	}
	return stock, err
}

func (s *stockService) checkNameTaken(v *ValidationError, name string, excludeID uint) error {
	taken, err := s.stockRepo.ExistsByName(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		v.Add("name", takenMessage("name"))
	}
	return nil
}

// duplicateName turns a unique violation that slipped past checkNameTaken
// (concurrent create) into the same 422.
func duplicateName(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		v := &ValidationError{}
		v.Add("name", takenMessage("name"))
		return v
	}
	return err
}

func (s *stockService) CreateStock(role string, req *CreateStockRequest) (*model.Stock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	v := validateRequest(req)
	requireText(v, "name", req.Name)
	requireText(v, "unit", req.Unit)
	if req.Name != nil && v.Fields["name"] == nil {
		if err := s.checkNameTaken(v, *req.Name, 0); err != nil {
			return nil, err
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	stock := &model.Stock{
		Name:        *req.Name,
		Unit:        model.StockUnit(*req.Unit),
		UnitMeasure: req.UnitMeasure,
		Active:      true,
	}
	if req.Qty != nil {
		stock.Qty = *req.Qty
	}
	if req.BuyPrice != nil {
		stock.BuyPrice = *req.BuyPrice
	}
	if req.Active != nil {
		stock.Active = *req.Active
	}

	if err := s.stockRepo.Create(stock); err != nil {
		return nil, duplicateName(err)
	}

	s.publish("stock_created", stock, fmt.Sprintf("Stock '%s' created", stock.Name))
	return stock, nil
}

func (s *stockService) UpdateStock(role string, id uint, req *UpdateStockRequest) (*model.Stock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}

	stock, err := s.GetStock(id)
	if err != nil {
		return nil, err
	}

	if req.Name.Present() {
		req.Name.Value = strings.TrimSpace(req.Name.Value)
	}

	v := validateRequest(req)
	if req.Name.Blank() {
		v.Replace("name", requiredMessage("name"))
	} else if req.Name.Present() && v.Fields["name"] == nil {
		if err := s.checkNameTaken(v, req.Name.Value, stock.ID); err != nil {
			return nil, err
		}
	}
	if req.Unit.Blank() {
		v.Replace("unit", requiredMessage("unit"))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if req.Name.Present() {
		stock.Name = req.Name.Value
	}
	if req.Unit.Present() {
		stock.Unit = model.StockUnit(req.Unit.Value)
	}
	if req.UnitMeasure.Set {
		if req.UnitMeasure.Null {
			stock.UnitMeasure = nil
		} else {
			um := req.UnitMeasure.Value
			stock.UnitMeasure = &um
		}
	}
	if req.Qty.Set {
		stock.Qty = req.Qty.OrElse(0)
	}
	if req.BuyPrice.Set {
		stock.BuyPrice = req.BuyPrice.OrElse(0)
	}
	if req.Active.Present() {
		stock.Active = req.Active.Value
	}

	if err := s.stockRepo.Update(stock); err != nil {
		return nil, duplicateName(err)
	}

	s.publish("stock_updated", stock, fmt.Sprintf("Stock '%s' updated", stock.Name))
	return stock, nil
}

func (s *stockService) DeleteStock(role string, id uint) error {
	if err := EnsureAdmin(role); err != nil {
		return err
	}

	err := s.stockRepo.Delete(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrStockNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrStockInUse
	case err != nil:
		return err
	}

	s.publish("stock_deleted", map[string]uint{"id": id}, "Stock deleted")
	return nil
}

func (s *stockService) ListStockHistories(stockID uint) ([]model.StockHistory, error) {
	ok, err := s.stockRepo.Exists(stockID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrStockNotFound
	}

	rows, err := s.historyRepo.FindByStock(stockID, stockHistoryLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.StockHistory{}
	}
	return rows, nil
}

func (s *stockService) ListProductStocks(productID uint) ([]model.AttachedStockDetail, error) {
	rows, err := s.attachments.listAttached(productID)
	if err != nil {
		return nil, err
	}
	out := make([]model.AttachedStockDetail, len(rows))
	for i, r := range rows {
		out[i] = r.ToAttachedStockDetail()
	}
	return out, nil
}

func (s *stockService) AttachToProduct(role string, productID uint, req *AttachStockRequest) (*model.ProductStock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}
	row, err := s.attachments.attach(productID, req)
	if err != nil {
		return nil, err
	}
	s.publish("product_stock_attached", row, "Attached")
	return row, nil
}

func (s *stockService) UpdateProductStock(role string, productID, stockID uint, req *UpdateAttachedStockRequest) (*model.ProductStock, error) {
	if err := EnsureAdmin(role); err != nil {
		return nil, err
	}
	row, err := s.attachments.update(productID, stockID, req)
	if err != nil {
		return nil, err
	}
	s.publish("product_stock_updated", row, "Updated")
	return row, nil
}

func (s *stockService) DetachFromProduct(role string, productID, stockID uint) error {
	if err := EnsureAdmin(role); err != nil {
		return err
	}
	if err := s.attachments.detach(productID, stockID); err != nil {
		return err
	}
	s.publish("product_stock_detached", map[string]uint{"product_id": productID, "stock_id": stockID}, "Detached")
	return nil
}
