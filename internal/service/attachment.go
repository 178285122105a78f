package service

import (
	"errors"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/pkg/nullable"
)

type AttachStockRequest struct {
	StockID *int64 `json:"stock_id" validate:"required"`
	Qty     *int64 `json:"qty" validate:"required,min=0"`
	Active  *bool  `json:"active"`
}

// UpdateAttachedStockRequest: only keys that were sent are written. An
// explicit null active means true; qty may not be null.
type UpdateAttachedStockRequest struct {
	Qty    nullable.Field[int64] `json:"qty" validate:"omitempty,min=0"`
	Active nullable.Field[bool]  `json:"active"`
}

// Publisher receives change events after successful mutations.
type Publisher interface {
	Publish(action string, data interface{}, message string)
}

// attachments implements attach / update / detach of the product_stock pivot
// once, for both the product side and the stock side of the API.
type attachments struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	pivotRepo   repository.ProductStockRepository
}

func (a *attachments) requireProduct(productID uint) error {
	ok, err := a.productRepo.Exists(productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// requirePair resolves both path parameters, 404 on either.
func (a *attachments) requirePair(productID, stockID uint) error {
	if err := a.requireProduct(productID); err != nil {
		return err
	}
	ok, err := a.stockRepo.Exists(stockID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStockNotFound
	}
	return nil
}

func (a *attachments) listAttached(productID uint) ([]model.AttachedStockRow, error) {
	if err := a.requireProduct(productID); err != nil {
		return nil, err
	}
	return a.pivotRepo.FindAttached(productID)
}

// attach upserts the (product, stock) pair. Other attachments of the product
// are left alone.
func (a *attachments) attach(productID uint, req *AttachStockRequest) (*model.ProductStock, error) {
	if err := a.requireProduct(productID); err != nil {
		return nil, err
	}

	v := validateRequest(req)
	if req.StockID != nil && v.Fields["stock_id"] == nil {
		exists := false
		if *req.StockID > 0 {
			var err error
			if exists, err = a.stockRepo.Exists(uint(*req.StockID)); err != nil {
				return nil, err
			}
		}
		if !exists {
			v.Add("stock_id", invalidSelectionMessage("stock_id"))
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	row := &model.ProductStock{
		ProductID: productID,
		StockID:   uint(*req.StockID),
		Qty:       *req.Qty,
		Active:    active,
	}
	if err := a.pivotRepo.Upsert(row); err != nil {
		return nil, err
	}
	return row, nil
}

// update checks that the pair is attached before looking at the payload.
func (a *attachments) update(productID, stockID uint, req *UpdateAttachedStockRequest) (*model.ProductStock, error) {
	if err := a.requirePair(productID, stockID); err != nil {
		return nil, err
	}

	attached, err := a.pivotRepo.Exists(productID, stockID)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, ErrStockNotAttached
	}

	v := validateRequest(req)
	if req.Qty.Blank() {
		v.Add("qty", requiredMessage("qty"))
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Qty.Present() {
		fields["qty"] = req.Qty.Value
	}
	if req.Active.Set {
		fields["active"] = req.Active.OrElse(true)
	}

	if len(fields) > 0 {
		affected, err := a.pivotRepo.UpdateFields(productID, stockID, fields)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			// detached between the existence check and the update
			return nil, ErrStockNotAttached
		}
	}

	row, err := a.pivotRepo.FindByPair(productID, stockID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrStockNotAttached
	}
	return row, err
}

func (a *attachments) detach(productID, stockID uint) error {
	if err := a.requirePair(productID, stockID); err != nil {
		return err
	}

	deleted, err := a.pivotRepo.Delete(productID, stockID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrStockNotAttached
	}
	return nil
}
