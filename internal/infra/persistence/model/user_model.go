package model

import (
	"time"
)

// IdentityModel mirrors the 'users' table. IDs are assigned by the remote
// profile service, so the column never auto-increments.
type IdentityModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement:false"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Enabled      bool       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	Roles []RoleModel `gorm:"many2many:user_roles;joinForeignKey:UserID;joinReferences:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "users"
}

// RoleModel mirrors the 'roles' reference table.
type RoleModel struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (RoleModel) TableName() string {
	return "roles"
}
