package repository

import (
	"context"
	"time"

	"github.com/omvsuite/omvadmin/internal/user/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("id = ?", id).Take(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter, page pagination.Pagination) ([]*domain.User, error) {
	var users []*domain.User
	stmt := db.WithContext(ctx).Model(&domain.User{})
	if filter.Role != "" {
		stmt = stmt.Where("role = ?", filter.Role)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdateUserParams, now time.Time) (bool, error) {
	values := map[string]any{"updated_at": now}
	if params.Name != nil {
		values["name"] = *params.Name
	}
	if params.Role != nil {
		values["role"] = *params.Role
	}
	if params.Permissions != nil {
		values["permissions"] = datatypes.NewJSONSlice(params.Permissions)
	}
	if params.Department != nil {
		values["department"] = *params.Department
	}
	if params.Supervisor != nil {
		values["supervisor"] = *params.Supervisor
	}
	if params.Avatar != nil {
		values["avatar"] = *params.Avatar
	}
	if params.IsActive != nil {
		values["is_active"] = *params.IsActive
	}

	res := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(values)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	return res.RowsAffected > 0, res.Error
}

func (r *repo) TouchLastLogin(ctx context.Context, db *gorm.DB, id string, now time.Time) error {
	return db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_login": now, "updated_at": now}).Error
}
