package seed

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

const DefaultCategory = "Umum"

type Seeder struct {
	repos *repository.Repositories
}

func New(repos *repository.Repositories) *Seeder {
	return &Seeder{repos: repos}
}

// AdminAccount is the default back-office login.
type AdminAccount struct {
	Username string
	Password string
	PIN      string
}

// Admin creates the admin user when the username is not taken yet.
// It never touches an existing account.
func (s *Seeder) Admin(acc AdminAccount) (*model.User, bool, error) {
	existing, err := s.repos.Users.FindByUsername(acc.Username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	admin := &model.User{
		Name:     "Administrator",
		Email:    acc.Username + "@mesinkasir.local",
		Username: acc.Username,
		Role:     model.RoleAdmin,
		Active:   true,
	}
	if err := admin.SetPassword(acc.Password); err != nil {
		return nil, false, fmt.Errorf("hash admin password: %w", err)
	}
	if acc.PIN != "" {
		if err := admin.SetPIN(acc.PIN); err != nil {
			return nil, false, fmt.Errorf("hash admin pin: %w", err)
		}
	}
	if err := s.repos.Users.Create(admin); err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

func (s *Seeder) DefaultCategory() (*model.ProductCategory, error) {
	return s.repos.Categories.FirstOrCreate(DefaultCategory)
}

// Defaults seeds the admin account and the default category.
func (s *Seeder) Defaults(acc AdminAccount) error {
	_, created, err := s.Admin(acc)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Printf("✅ Admin user created: %s (role admin)", acc.Username)
	}

	if _, err := s.DefaultCategory(); err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	return nil
}

// Demo fills the store with fake stocks and products, attaches a few stocks to
// every product and writes some history rows.
func (s *Seeder) Demo(products, stocks int, actor *model.User) error {
	category, err := s.DefaultCategory()
	if err != nil {
		return err
	}

	units := []model.StockUnit{model.UnitPcs, model.UnitGram, model.UnitKg}
	created := make([]model.Stock, 0, stocks)
	for i := 0; i < stocks; i++ {
		stock := model.Stock{
			Name:     fakeName(faker.Word(), 80),
			Unit:     units[rand.Intn(len(units))],
			Qty:      int64(rand.Intn(500)),
			BuyPrice: int64(rand.Intn(50)+1) * 500,
			Active:   true,
		}
		if err := s.repos.Stocks.Create(&stock); err != nil {
			return fmt.Errorf("create stock: %w", err)
		}
		created = append(created, stock)
	}

	var actorID *uint
	if actor != nil {
		actorID = &actor.ID
	}

	for i := 0; i < products; i++ {
		product := &model.Product{
			CategoryID: category.ID,
			Name:       fakeName(faker.Name(), 120),
			Price:      int64(rand.Intn(100)+1) * 1000,
			Qty:        int64(rand.Intn(50)),
			Active:     true,
		}
		if err := s.repos.Products.Create(product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}

		if len(created) == 0 {
			continue
		}
		for _, idx := range rand.Perm(len(created))[:min(3, len(created))] {
			stock := created[idx]
			pivot := &model.ProductStock{
				ProductID: product.ID,
				StockID:   stock.ID,
				Qty:       int64(rand.Intn(5) + 1),
				Active:    true,
			}
			if err := s.repos.ProductStock.Upsert(pivot); err != nil {
				return fmt.Errorf("attach stock: %w", err)
			}

			history := &model.StockHistory{
				StockID:     stock.ID,
				ProductID:   product.ID,
				Qty:         pivot.Qty,
				Unit:        string(stock.Unit),
				LoggedAt:    time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour),
				ActorUserID: actorID,
			}
			if err := s.repos.Histories.Append(history); err != nil {
				return fmt.Errorf("append history: %w", err)
			}
		}
	}
	return nil
}

// fakeName appends a short random suffix so repeated runs never collide on
// unique names.
func fakeName(base string, max int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "Item"
	}
	name := strings.ToUpper(base[:1]) + base[1:] + " " + uuid.NewString()[:6]
	if len(name) > max {
		name = name[len(name)-max:]
	}
	return name
}
