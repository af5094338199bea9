package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

// Profile is a staff account. Sales users prepare quotations, admins manage everything.
type Profile struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FullName     string    `json:"full_name" example:"Ravi Kumar"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" example:"ravi@raiselabequip.com"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role" gorm:"default:sales" example:"sales"`
	Active       bool      `json:"active" example:"true"`
	Phone        string    `json:"phone" example:"+91 98480 00000"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Role == "" {
		p.Role = RoleSales
	}
	return nil
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Agent returns the preparer identity printed in the signature block.
func (p Profile) Agent() Agent {
	return Agent{FullName: p.FullName, Phone: p.Phone}
}

// Agent is the person who prepared a quotation.
type Agent struct {
	FullName string `json:"full_name" example:"Ravi Kumar"`
	Phone    string `json:"phone" example:"+91 98480 00000"`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ravi@raiselabequip.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   int64   `json:"expires_at"`
	Profile     Profile `json:"profile"`
}

// CreateUserRequest is the admin user-management form.
type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     Role   `json:"role" binding:"omitempty,oneof=admin sales"`
	Phone    string `json:"phone"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1"`
	Role     *Role   `json:"role" binding:"omitempty,oneof=admin sales"`
	Active   *bool   `json:"active"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// Apply copies the profile fields onto p. The password is hashed by the caller.
func (r UpdateUserRequest) Apply(p *Profile) {
	if r.FullName != nil {
		p.FullName = *r.FullName
	}
	if r.Role != nil {
		p.Role = *r.Role
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
}
