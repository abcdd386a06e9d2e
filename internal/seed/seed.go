package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userdomain "github.com/omvsuite/omvadmin/internal/user/domain"
)

const (
	defaultAdminName  = "Administrator"
	defaultAdminEmail = "admin@omvadmin.local"
)

// EnsureDefaultAdmin seeds the superadmin account so a fresh install has a
// working operator. Existing installs are left untouched.
func EnsureDefaultAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userdomain.User
		err := tx.WithContext(ctx).
			Where("email = ?", defaultAdminEmail).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		admin := userdomain.User{
			ID:          node.Generate().String(),
			Name:        defaultAdminName,
			Email:       defaultAdminEmail,
			Role:        userdomain.RoleSuperadmin,
			Permissions: datatypes.NewJSONSlice(userdomain.DefaultPermissions(userdomain.RoleSuperadmin)),
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&admin).Error
	})
}
