package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAssessor Role = "assessor"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAssessor
}

type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password       string     `gorm:"not null;column:hashed_password" json:"-"`
	FullName       string     `gorm:"not null;column:full_name" json:"full_name"`
	Role           Role       `gorm:"not null;column:role" json:"role"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index;column:organization_id" json:"organization_id,omitempty"`
	IsActive       bool       `gorm:"not null;column:is_active" json:"is_active"`
	LastLogin      *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
