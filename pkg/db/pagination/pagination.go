package pagination

import "gorm.io/gorm"

// Pagination is bound from list query strings. Page numbers start at 1.
type Pagination struct {
	Page     int `form:"page,default=1" validate:"gte=1"`
	PageSize int `form:"page_size,default=50" validate:"gte=1,lte=250"`
}

func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 250 {
		p.PageSize = 250
	}
	return p
}

// Apply adds limit/offset to the statement.
func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Limit(p.PageSize).Offset((p.Page - 1) * p.PageSize)
}
