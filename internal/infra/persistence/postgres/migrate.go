package postgres

import (
	"context"

	"authcore/internal/domain/entity"
	"authcore/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var referenceRoles = []model.RoleModel{
	{Name: entity.RoleUser.String(), Description: "Self-registered identity"},
	{Name: entity.RoleAdmin.String(), Description: "May register identities with an explicit role"},
}

// Migrate creates the identity schema and inserts the reference roles that are missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate identity schema")
	}

	return seedRoles(ctx, db)
}

func seedRoles(ctx context.Context, db *gorm.DB) error {
	roles := make([]model.RoleModel, len(referenceRoles))
	copy(roles, referenceRoles)

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roles).Error
	if err != nil {
		return errors.Wrap(err, "failed to seed roles")
	}

	return nil
}
