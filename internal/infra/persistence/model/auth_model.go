package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table. The unique index on
// identity_id backs the one-live-token-per-identity rule at the schema level.
type RefreshTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	IdentityID int64     `gorm:"not null;uniqueIndex"`
	TokenHash  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time

	Identity IdentityModel `gorm:"foreignKey:IdentityID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// All lists every model for auto-migration, parents first.
func All() []any {
	return []any{&RoleModel{}, &IdentityModel{}, &RefreshTokenModel{}}
}
