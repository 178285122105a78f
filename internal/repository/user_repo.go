package repository

import (
	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	UpdatePassword(userID uint, hashedPassword string) error
	UpdatePinHash(userID uint, pinHash string) error
	UpdateTokenVersion(userID uint, version string) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return translateError(r.db.Create(user).Error)
}

func (r *userRepo) Update(user *model.User) error {
	return translateError(r.db.Save(user).Error)
}

func (r *userRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return translateError(r.db.Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error)
}

func (r *userRepo) UpdatePinHash(userID uint, pinHash string) error {
	return translateError(r.db.Model(&model.User{}).Where("id = ?", userID).Update("pin_hash", pinHash).Error)
}

func (r *userRepo) UpdateTokenVersion(userID uint, version string) error {
	return translateError(r.db.Model(&model.User{}).Where("id = ?", userID).Update("token_version", version).Error)
}
