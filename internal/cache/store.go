package cache

import (
	"context"
	"time"

	"github.com/omvsuite/omvadmin/internal/clock"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a cache row in the primary store, used only when redis is down.
type Entry struct {
	Key       string     `gorm:"column:cache_key;primaryKey" json:"key"`
	Value     []byte     `gorm:"not null" json:"value"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Entry) TableName() string {
	return "cache_entries"
}

// StoreBackend imitates the cache contract on top of the primary store.
// Expired rows are invisible to Get but linger physically until Sweep or a
// later Set overwrites them.
type StoreBackend struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewStoreBackend(db *gorm.DB, clk clock.Clock) *StoreBackend {
	return &StoreBackend{db: db, clock: clk}
}

func (b *StoreBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := b.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", b.clock.Now()).
		Take(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrMiss
		}
		return nil, err
	}
	return entry.Value, nil
}

func (b *StoreBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := b.clock.Now()
	entry := Entry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		entry.ExpiresAt = &expires
	}

	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (b *StoreBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.db.WithContext(ctx).
		Where("cache_key IN ?", keys).
		Delete(&Entry{}).Error
}

// FlushAll is an accepted capability gap in store-backed mode: callers must
// surface the warning, not swallow it as a successful no-op.
func (b *StoreBackend) FlushAll(ctx context.Context) error {
	return ErrFlushUnsupported
}

func (b *StoreBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Sweep deletes rows whose expiry has passed. It substitutes for the TTL
// index the ephemeral cache provides natively.
func (b *StoreBackend) Sweep(ctx context.Context) (int64, error) {
	res := b.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", b.clock.Now()).
		Delete(&Entry{})
	return res.RowsAffected, res.Error
}
