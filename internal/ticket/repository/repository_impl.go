package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/ticket/domain"
	"github.com/omvsuite/omvadmin/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ticket *domain.Ticket) error {
	return db.WithContext(ctx).Create(ticket).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		Take(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListTicketFilter, page pagination.Pagination) ([]domain.Ticket, error) {
	stmt := db.WithContext(ctx).Model(&domain.Ticket{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		stmt = stmt.Where("priority = ?", filter.Priority)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.AssignedTo != "" {
		stmt = stmt.Where("assigned_to = ?", filter.AssignedTo)
	}

	var tickets []domain.Ticket
	if err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id string, params domain.UpdateTicketParams, now time.Time) (bool, error) {
	updates := map[string]interface{}{"updated_at": now}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Category != nil {
		updates["category"] = *params.Category
	}
	if params.Priority != nil {
		updates["priority"] = *params.Priority
	}
	if params.Status != nil {
		updates["status"] = *params.Status
	}
	if params.AssignedTo != nil {
		updates["assigned_to"] = *params.AssignedTo
	}

	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *repo) AppendComment(ctx context.Context, db *gorm.DB, comment *domain.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *repo) CountOpen(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("status IN ?", []domain.Status{domain.StatusOpen, domain.StatusInProgress}).
		Count(&count).Error
	return count, err
}
