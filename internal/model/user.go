package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Name         string     `gorm:"type:varchar(255)" json:"name"`
	Email        string     `gorm:"type:varchar(255)" json:"email"`
	Username     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	PinHash      *string    `gorm:"type:varchar(255)" json:"-"`
	Role         string     `gorm:"type:varchar(30);not null;default:'cashier'" json:"role"`
	Active       bool       `gorm:"not null" json:"active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// SetPIN hashes and stores the short cashier PIN.
func (u *User) SetPIN(pin string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hashed)
	u.PinHash = &h
	return nil
}

// CheckPIN is false for users without a PIN.
func (u *User) CheckPIN(pin string) bool {
	if u.PinHash == nil || *u.PinHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.PinHash), []byte(pin)) == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	HasPIN      bool       `json:"has_pin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		Active:      u.Active,
		HasPIN:      u.PinHash != nil && *u.PinHash != "",
		LastLoginAt: u.LastLoginAt,
	}
}
