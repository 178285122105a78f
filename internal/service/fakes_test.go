package service

import (
	"sort"
	"strings"
	"sync"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
)

// memDB is an in-memory stand-in for the postgres schema, including the
// unique (product_id, stock_id) pair and the RESTRICT on stock delete.
type memDB struct {
	mu         sync.Mutex
	nextID     uint
	categories map[uint]*model.ProductCategory
	products   map[uint]*model.Product
	stocks     map[uint]*model.Stock
	pivots     map[[2]uint]*model.ProductStock
	histories  []model.StockHistory
	users      map[uint]*model.User
}

func newMemDB() *memDB {
	return &memDB{
		categories: map[uint]*model.ProductCategory{},
		products:   map[uint]*model.Product{},
		stocks:     map[uint]*model.Stock{},
		pivots:     map[[2]uint]*model.ProductStock{},
		users:      map[uint]*model.User{},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

func (db *memDB) repos() *repository.Repositories {
	return &repository.Repositories{
		Users:        &fakeUsers{db},
		Categories:   &fakeCategories{db},
		Products:     &fakeProducts{db},
		Stocks:       &fakeStocks{db},
		ProductStock: &fakePivots{db},
		Histories:    &fakeHistories{db},
	}
}

func (db *memDB) addCategory(name string) *model.ProductCategory {
	c := &model.ProductCategory{Name: name}
	c.ID = db.id()
	db.categories[c.ID] = c
	return c
}

func (db *memDB) addStock(name string, unit model.StockUnit) *model.Stock {
	s := &model.Stock{Name: name, Unit: unit, Active: true}
	s.ID = db.id()
	db.stocks[s.ID] = s
	return s
}

func (db *memDB) addProduct(categoryID uint, name string, price int64) *model.Product {
	p := &model.Product{CategoryID: categoryID, Name: name, Price: price, Active: true}
	p.ID = db.id()
	db.products[p.ID] = p
	return p
}

// ---- categories

type fakeCategories struct{ db *memDB }

func (r *fakeCategories) FindAll() ([]model.ProductCategory, error) {
	var out []model.ProductCategory
	for _, c := range r.db.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategories) Exists(id uint) (bool, error) {
	_, ok := r.db.categories[id]
	return ok, nil
}

func (r *fakeCategories) ExistsByName(name string) (bool, error) {
	for _, c := range r.db.categories {
		if strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategories) Create(c *model.ProductCategory) error {
	if ok, _ := r.ExistsByName(c.Name); ok {
		return repository.ErrDuplicate
	}
	c.ID = r.db.id()
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategories) FirstOrCreate(name string) (*model.ProductCategory, error) {
	for _, c := range r.db.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	c := &model.ProductCategory{Name: name}
	return c, r.Create(c)
}

// ---- products

type fakeProducts struct{ db *memDB }

func (r *fakeProducts) load(p model.Product) model.Product {
	if c, ok := r.db.categories[p.CategoryID]; ok {
		cp := *c
		p.Category = &cp
	}
	p.ProductStocks = nil
	for _, ps := range r.db.pivots {
		if ps.ProductID != p.ID {
			continue
		}
		row := *ps
		if s, ok := r.db.stocks[ps.StockID]; ok {
			sc := *s
			row.Stock = &sc
		}
		p.ProductStocks = append(p.ProductStocks, row)
	}
	return p
}

func (r *fakeProducts) Create(p *model.Product) error {
	p.ID = r.db.id()
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *fakeProducts) FindPaginated(f repository.ProductFilter, page, perPage int) ([]model.Product, int64, error) {
	var all []model.Product
	for _, p := range r.db.products {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		all = append(all, r.load(*p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, total, nil
	}
	end := min(start+perPage, len(all))
	return all[start:end], total, nil
}

func (r *fakeProducts) FindByID(id uint) (*model.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	loaded := r.load(*p)
	return &loaded, nil
}

func (r *fakeProducts) Exists(id uint) (bool, error) {
	_, ok := r.db.products[id]
	return ok, nil
}

func (r *fakeProducts) Update(p *model.Product) error {
	cp := *p
	cp.Category = nil
	cp.ProductStocks = nil
	r.db.products[p.ID] = &cp
	return nil
}

func (r *fakeProducts) Delete(id uint) error {
	if _, ok := r.db.products[id]; !ok {
		return repository.ErrNotFound
	}
	for _, h := range r.db.histories {
		if h.ProductID == id {
			return repository.ErrReferenced
		}
	}
	delete(r.db.products, id)
	for key := range r.db.pivots {
		if key[0] == id {
			delete(r.db.pivots, key)
		}
	}
	return nil
}

// ---- stocks

type fakeStocks struct{ db *memDB }

func (r *fakeStocks) Create(s *model.Stock) error {
	if taken, _ := r.ExistsByName(s.Name, 0); taken {
		return repository.ErrDuplicate
	}
	s.ID = r.db.id()
	cp := *s
	r.db.stocks[s.ID] = &cp
	return nil
}

func (r *fakeStocks) FindAll() ([]model.Stock, error) {
	var out []model.Stock
	for _, s := range r.db.stocks {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStocks) FindByID(id uint) (*model.Stock, error) {
	s, ok := r.db.stocks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStocks) Exists(id uint) (bool, error) {
	_, ok := r.db.stocks[id]
	return ok, nil
}

func (r *fakeStocks) ExistsByName(name string, excludeID uint) (bool, error) {
	for _, s := range r.db.stocks {
		if s.Name == name && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStocks) Update(s *model.Stock) error {
	cp := *s
	r.db.stocks[s.ID] = &cp
	return nil
}

func (r *fakeStocks) Delete(id uint) error {
	if _, ok := r.db.stocks[id]; !ok {
		return repository.ErrNotFound
	}
	for key := range r.db.pivots {
		if key[1] == id {
			return repository.ErrReferenced
		}
	}
	delete(r.db.stocks, id)
	return nil
}

// ---- product_stock

type fakePivots struct{ db *memDB }

func (r *fakePivots) Upsert(ps *model.ProductStock) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := [2]uint{ps.ProductID, ps.StockID}
	if existing, ok := r.db.pivots[key]; ok {
		existing.Qty = ps.Qty
		existing.Active = ps.Active
	} else {
		row := *ps
		row.ID = r.db.id()
		r.db.pivots[key] = &row
	}
	*ps = *r.db.pivots[key]
	return nil
}

func (r *fakePivots) FindByPair(productID, stockID uint) (*model.ProductStock, error) {
	ps, ok := r.db.pivots[[2]uint{productID, stockID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *ps
	return &cp, nil
}

func (r *fakePivots) Exists(productID, stockID uint) (bool, error) {
	_, ok := r.db.pivots[[2]uint{productID, stockID}]
	return ok, nil
}

func (r *fakePivots) UpdateFields(productID, stockID uint, fields map[string]interface{}) (int64, error) {
	ps, ok := r.db.pivots[[2]uint{productID, stockID}]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["qty"]; ok {
		ps.Qty = v.(int64)
	}
	if v, ok := fields["active"]; ok {
		ps.Active = v.(bool)
	}
	return 1, nil
}

func (r *fakePivots) Delete(productID, stockID uint) (int64, error) {
	key := [2]uint{productID, stockID}
	if _, ok := r.db.pivots[key]; !ok {
		return 0, nil
	}
	delete(r.db.pivots, key)
	return 1, nil
}

func (r *fakePivots) FindAttached(productID uint) ([]model.AttachedStockRow, error) {
	var rows []model.AttachedStockRow
	for _, ps := range r.db.pivots {
		if ps.ProductID != productID {
			continue
		}
		s := r.db.stocks[ps.StockID]
		rows = append(rows, model.AttachedStockRow{
			StockID:       s.ID,
			Name:          s.Name,
			Unit:          s.Unit,
			StockQty:      s.Qty,
			StockBuyPrice: s.BuyPrice,
			StockActive:   s.Active,
			PivotID:       ps.ID,
			PivotQty:      ps.Qty,
			PivotActive:   ps.Active,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

// ---- stock_histories

type fakeHistories struct{ db *memDB }

func (r *fakeHistories) Append(h *model.StockHistory) error {
	h.ID = r.db.id()
	r.db.histories = append(r.db.histories, *h)
	return nil
}

func (r *fakeHistories) FindByStock(stockID uint, limit int) ([]model.StockHistory, error) {
	var out []model.StockHistory
	for i := len(r.db.histories) - 1; i >= 0 && len(out) < limit; i-- {
		if r.db.histories[i].StockID == stockID {
			out = append(out, r.db.histories[i])
		}
	}
	return out, nil
}

// ---- users

type fakeUsers struct{ db *memDB }

func (r *fakeUsers) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUsers) FindByID(id uint) (*model.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsers) Create(u *model.User) error {
	if _, err := r.FindByUsername(u.Username); err == nil {
		return repository.ErrDuplicate
	}
	u.ID = r.db.id()
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *fakeUsers) Update(u *model.User) error {
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *fakeUsers) UpdatePassword(userID uint, hashed string) error {
	r.db.users[userID].Password = hashed
	return nil
}

func (r *fakeUsers) UpdatePinHash(userID uint, pinHash string) error {
	r.db.users[userID].PinHash = &pinHash
	return nil
}

func (r *fakeUsers) UpdateTokenVersion(userID uint, version string) error {
	r.db.users[userID].TokenVersion = version
	return nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	actions []string
}

func (p *recordingPublisher) Publish(action string, data interface{}, message string) {
	p.actions = append(p.actions, action)
}
