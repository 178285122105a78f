package service

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture(t *testing.T) (*memDB, StockService, ProductService) {
	t.Helper()
	db := newMemDB()
	repos := db.repos()
	stocks := NewStockService(repos.Stocks, repos.Products, repos.ProductStock, repos.Histories, nil)
	products := NewProductService(repos.Products, repos.Stocks, repos.Categories, repos.ProductStock, nil)
	return db, stocks, products
}

func decodeStockUpdate(t *testing.T, body string) *UpdateStockRequest {
	t.Helper()
	var req UpdateStockRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestCreateStock(t *testing.T) {
	db, svc, _ := newStockFixture(t)

	sugar, err := svc.CreateStock(model.RoleAdmin, &CreateStockRequest{Name: ptr("Sugar"), Unit: ptr("kg")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sugar.Qty)
	assert.Equal(t, int64(0), sugar.BuyPrice)
	assert.True(t, sugar.Active)
	assert.Nil(t, sugar.UnitMeasure)

	tests := []struct {
		name   string
		req    *CreateStockRequest
		fields []string
	}{
		{"duplicate name", &CreateStockRequest{Name: ptr("Sugar"), Unit: ptr("kg")}, []string{"name"}},
		{"bad unit", &CreateStockRequest{Name: ptr("Salt"), Unit: ptr("liter")}, []string{"unit"}},
		{"blank name and unit", &CreateStockRequest{Name: ptr("  "), Unit: ptr("")}, []string{"name", "unit"}},
		{"negative numbers", &CreateStockRequest{Name: ptr("Salt"), Unit: ptr("gram"), Qty: ptr(int64(-1)), BuyPrice: ptr(int64(-1))}, []string{"qty", "buy_price"}},
		{"name too long", &CreateStockRequest{Name: ptr(strings.Repeat("a", 81)), Unit: ptr("pcs")}, []string{"name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateStock(model.RoleAdmin, tt.req)
			var v *ValidationError
			require.ErrorAs(t, err, &v)
			for _, f := range tt.fields {
				assert.Contains(t, v.Fields, f)
			}
			assert.Len(t, v.Fields, len(tt.fields))
		})
	}

	_, err = svc.CreateStock(model.RoleCashier, &CreateStockRequest{Name: ptr("Salt"), Unit: ptr("kg")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, db.stocks, 1)
}

func TestCreateStockDuplicateRace(t *testing.T) {
	assert.IsType(t, &ValidationError{}, duplicateName(repository.ErrDuplicate))
}

func TestUpdateStock(t *testing.T) {
	db, svc, _ := newStockFixture(t)
	sugar := db.addStock("Sugar", model.UnitKg)
	sugar.Qty = 10
	sugar.BuyPrice = 15000
	um := "karung"
	sugar.UnitMeasure = &um
	db.addStock("Salt", model.UnitKg)

	t.Run("null qty and buy_price become zero", func(t *testing.T) {
		got, err := svc.UpdateStock(model.RoleAdmin, sugar.ID, decodeStockUpdate(t, `{"qty": null, "buy_price": null}`))
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Qty)
		assert.Equal(t, int64(0), got.BuyPrice)
		require.NotNil(t, got.UnitMeasure)
		assert.Equal(t, "karung", *got.UnitMeasure)
	})

	t.Run("null unitmeasure clears it", func(t *testing.T) {
		got, err := svc.UpdateStock(model.RoleAdmin, sugar.ID, decodeStockUpdate(t, `{"unitmeasure": null}`))
		require.NoError(t, err)
		assert.Nil(t, got.UnitMeasure)
	})

	t.Run("own name is not a duplicate", func(t *testing.T) {
		got, err := svc.UpdateStock(model.RoleAdmin, sugar.ID, decodeStockUpdate(t, `{"name": "Sugar", "unit": "gram"}`))
		require.NoError(t, err)
		assert.Equal(t, model.UnitGram, got.Unit)
	})

	t.Run("other stock's name is taken", func(t *testing.T) {
		_, err := svc.UpdateStock(model.RoleAdmin, sugar.ID, decodeStockUpdate(t, `{"name": "Salt"}`))
		var v *ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, []string{"The name has already been taken."}, v.Fields["name"])
	})

	t.Run("null unit is rejected", func(t *testing.T) {
		_, err := svc.UpdateStock(model.RoleAdmin, sugar.ID, decodeStockUpdate(t, `{"unit": null}`))
		var v *ValidationError
		require.ErrorAs(t, err, &v)
		assert.Equal(t, []string{"The unit field is required."}, v.Fields["unit"])
	})

	t.Run("unknown stock", func(t *testing.T) {
		_, err := svc.UpdateStock(model.RoleAdmin, 999, decodeStockUpdate(t, `{}`))
		assert.ErrorIs(t, err, ErrStockNotFound)
	})
}

func TestDeleteStock(t *testing.T) {
	db, svc, products := newStockFixture(t)
	cat := db.addCategory("Umum")
	p := db.addProduct(cat.ID, "Kopi", 8000)
	sugar := db.addStock("Sugar", model.UnitKg)

	_, err := products.AttachStock(model.RoleAdmin, p.ID, &AttachStockRequest{StockID: ptr(int64(sugar.ID)), Qty: ptr(int64(2))})
	require.NoError(t, err)

	err = svc.DeleteStock(model.RoleAdmin, sugar.ID)
	assert.ErrorIs(t, err, ErrStockInUse)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Stock tidak bisa dihapus karena masih dipakai product", err.Error())
	assert.Contains(t, db.stocks, sugar.ID)

	require.NoError(t, svc.DetachFromProduct(model.RoleAdmin, p.ID, sugar.ID))
	require.NoError(t, svc.DeleteStock(model.RoleAdmin, sugar.ID))
	assert.NotContains(t, db.stocks, sugar.ID)
	assert.ErrorIs(t, svc.DeleteStock(model.RoleAdmin, sugar.ID), ErrStockNotFound)
}

// Sugar scenario: create, attach, re-attach, detach twice, seen from the stock side.
func TestStockSideAttachments(t *testing.T) {
	db, svc, _ := newStockFixture(t)
	cat := db.addCategory("Umum")
	p := db.addProduct(cat.ID, "Kopi Susu", 18000)
	other := db.addStock("Cup", model.UnitPcs)
	db.pivots[[2]uint{p.ID, other.ID}] = &model.ProductStock{ProductID: p.ID, StockID: other.ID, Qty: 1, Active: true}

	sugar, err := svc.CreateStock(model.RoleAdmin, &CreateStockRequest{Name: ptr("Sugar"), Unit: ptr("kg"), BuyPrice: ptr(int64(14000))})
	require.NoError(t, err)

	row, err := svc.AttachToProduct(model.RoleAdmin, p.ID, &AttachStockRequest{StockID: ptr(int64(sugar.ID)), Qty: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), row.Qty)
	assert.True(t, row.Active)

	_, err = svc.AttachToProduct(model.RoleAdmin, p.ID, &AttachStockRequest{StockID: ptr(int64(sugar.ID)), Qty: ptr(int64(5))})
	require.NoError(t, err)

	detail, err := svc.ListProductStocks(p.ID)
	require.NoError(t, err)
	require.Len(t, detail, 2, "other attachments are untouched")
	assert.Equal(t, "Sugar", detail[1].Name)
	assert.Equal(t, int64(5), detail[1].Pivot.Qty)
	assert.Equal(t, int64(14000), detail[1].BuyPrice)

	var req UpdateAttachedStockRequest
	require.NoError(t, json.Unmarshal([]byte(`{"qty": 7}`), &req))
	row, err = svc.UpdateProductStock(model.RoleAdmin, p.ID, sugar.ID, &req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.Qty)
	assert.True(t, row.Active)

	require.NoError(t, svc.DetachFromProduct(model.RoleAdmin, p.ID, sugar.ID))
	assert.ErrorIs(t, svc.DetachFromProduct(model.RoleAdmin, p.ID, sugar.ID), ErrStockNotAttached)
	_, err = svc.UpdateProductStock(model.RoleAdmin, p.ID, sugar.ID, &req)
	assert.ErrorIs(t, err, ErrStockNotAttached)

	_, err = svc.ListProductStocks(999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AttachToProduct(model.RoleCashier, p.ID, &AttachStockRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListStocksAndHistories(t *testing.T) {
	db, svc, _ := newStockFixture(t)
	cat := db.addCategory("Umum")
	p := db.addProduct(cat.ID, "Kopi", 8000)
	db.addStock("Sugar", model.UnitKg)
	cup := db.addStock("Cup", model.UnitPcs)

	stocks, err := svc.ListStocks()
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "Cup", stocks[0].Name)

	rows, err := svc.ListStockHistories(cup.ID)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	repos := db.repos()
	for i := 1; i <= 3; i++ {
		require.NoError(t, repos.Histories.Append(&model.StockHistory{
			StockID: cup.ID, ProductID: p.ID, Qty: int64(i), Unit: "pcs", LoggedAt: time.Now(),
		}))
	}
	rows, err = svc.ListStockHistories(cup.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(3), rows[0].Qty, "newest first")

	_, err = svc.ListStockHistories(999)
	assert.ErrorIs(t, err, ErrStockNotFound)
}

type memSnapshot struct {
	products map[uint]model.Product
	stocks   map[uint]model.Stock
	pivots   map[[2]uint]model.ProductStock
	history  int
}

func snapshot(db *memDB) memSnapshot {
	s := memSnapshot{
		products: map[uint]model.Product{},
		stocks:   map[uint]model.Stock{},
		pivots:   map[[2]uint]model.ProductStock{},
		history:  len(db.histories),
	}
	for id, p := range db.products {
		s.products[id] = *p
	}
	for id, st := range db.stocks {
		s.stocks[id] = *st
	}
	for key, ps := range db.pivots {
		s.pivots[key] = *ps
	}
	return s
}

func TestCashierCannotMutate(t *testing.T) {
	db := newMemDB()
	repos := db.repos()
	pub := &recordingPublisher{}
	stocks := NewStockService(repos.Stocks, repos.Products, repos.ProductStock, repos.Histories, pub)
	products := NewProductService(repos.Products, repos.Stocks, repos.Categories, repos.ProductStock, pub)

	cat := db.addCategory("Umum")
	p := db.addProduct(cat.ID, "Kopi Susu", 18000)
	sugar := db.addStock("Sugar", model.UnitKg)
	db.pivots[[2]uint{p.ID, sugar.ID}] = &model.ProductStock{ProductID: p.ID, StockID: sugar.ID, Qty: 2, Active: true}

	pivotUpdate := func() *UpdateAttachedStockRequest {
		var req UpdateAttachedStockRequest
		require.NoError(t, json.Unmarshal([]byte(`{"qty": 9, "active": false}`), &req))
		return &req
	}

	testCases := []struct {
		name string
		call func() error
	}{
		{"update stock", func() error {
			_, err := stocks.UpdateStock(model.RoleCashier, sugar.ID, decodeStockUpdate(t, `{"name": "Salt", "qty": 99}`))
			return err
		}},
		{"delete stock", func() error {
			return stocks.DeleteStock(model.RoleCashier, sugar.ID)
		}},
		{"update product stock", func() error {
			_, err := stocks.UpdateProductStock(model.RoleCashier, p.ID, sugar.ID, pivotUpdate())
			return err
		}},
		{"detach from product", func() error {
			return stocks.DetachFromProduct(model.RoleCashier, p.ID, sugar.ID)
		}},
		{"update product", func() error {
			_, err := products.UpdateProduct(model.RoleCashier, p.ID, decodeUpdate(t, `{"name": "Teh", "price": 1}`))
			return err
		}},
		{"delete product", func() error {
			return products.DeleteProduct(model.RoleCashier, p.ID)
		}},
		{"update attached stock", func() error {
			_, err := products.UpdateAttachedStock(model.RoleCashier, p.ID, sugar.ID, pivotUpdate())
			return err
		}},
		{"detach stock", func() error {
			return products.DetachStock(model.RoleCashier, p.ID, sugar.ID)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := snapshot(db)

			err := tc.call()
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Equal(t, before, snapshot(db))
			assert.Empty(t, pub.actions)
		})
	}
}
