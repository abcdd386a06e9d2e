package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/analytics/domain"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/clock"
	"github.com/omvsuite/omvadmin/internal/config"
	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	ticketdomain "github.com/omvsuite/omvadmin/internal/ticket/domain"
	txndomain "github.com/omvsuite/omvadmin/internal/transaction/domain"
)

const dayLayout = "2006-01-02"

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	SimRepo    simdomain.Repository
	TxnRepo    txndomain.Repository
	TicketRepo ticketdomain.Repository
	Facade     *cache.Facade
	TTL        *config.TTLPolicyHolder
}

type service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	simRepo    simdomain.Repository
	txnRepo    txndomain.Repository
	ticketRepo ticketdomain.Repository
	facade     *cache.Facade
	ttl        *config.TTLPolicyHolder
}

func New(p Params) domain.Service {
	return &service{
		db:         p.DB,
		log:        p.Log.Named("analytics.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		simRepo:    p.SimRepo,
		txnRepo:    p.TxnRepo,
		ticketRepo: p.TicketRepo,
		facade:     p.Facade,
		ttl:        p.TTL,
	}
}

func (s *service) Track(ctx context.Context, req domain.TrackRequest) error {
	if req.UserID == "" {
		return domain.ErrInvalidUserID
	}
	name := strings.TrimSpace(req.Activity)
	if name == "" {
		return domain.ErrInvalidActivity
	}

	now := s.clock.Now()
	activity := &domain.Activity{
		ID:        s.genID.Generate().String(),
		UserID:    req.UserID,
		Activity:  name,
		Metadata:  req.Metadata,
		Day:       now.Format(dayLayout),
		CreatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, activity); err != nil {
		s.log.Error("track activity", zap.Error(err), zap.String("user_id", req.UserID))
		return err
	}
	return nil
}

func (s *service) UserDailyStats(ctx context.Context, userID string, days int) ([]domain.DailyStat, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	if days <= 0 || days > 365 {
		return nil, domain.ErrInvalidWindow
	}

	fromDay := s.clock.Now().AddDate(0, 0, -days+1).Format(dayLayout)
	key := cache.ReportKey("user_activity", struct {
		UserID  string
		FromDay string
	}{userID, fromDay})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Reports,
		func(ctx context.Context) ([]domain.DailyStat, error) {
			return s.repo.UserDailyStats(ctx, s.db, userID, fromDay)
		})
}

func (s *service) GlobalActivity(ctx context.Context, days int) ([]domain.ActivityCount, error) {
	if days <= 0 || days > 365 {
		return nil, domain.ErrInvalidWindow
	}

	fromDay := s.clock.Now().AddDate(0, 0, -days+1).Format(dayLayout)
	key := cache.ReportKey("global_activity", struct {
		FromDay string
	}{fromDay})

	return cache.GetCached(ctx, s.facade, key, s.ttl.Get().Reports,
		func(ctx context.Context) ([]domain.ActivityCount, error) {
			return s.repo.GlobalActivityCounts(ctx, s.db, fromDay)
		})
}

// SystemMetrics is cached under the stats key so transaction writes can
// invalidate it; the short TTL bounds staleness for everything else.
func (s *service) SystemMetrics(ctx context.Context) (*domain.SystemMetrics, error) {
	return cache.GetCached(ctx, s.facade, cache.SystemStatsKey(), s.ttl.Get().SystemStats,
		func(ctx context.Context) (*domain.SystemMetrics, error) {
			return s.buildMetrics(ctx)
		})
}

func (s *service) buildMetrics(ctx context.Context) (*domain.SystemMetrics, error) {
	now := s.clock.Now()
	startOfDay := now.Truncate(24 * time.Hour)

	activeUsers, err := s.repo.CountActiveUsers(ctx, s.db)
	if err != nil {
		return nil, err
	}
	totalCustomers, activeCustomers, err := s.repo.CountCustomers(ctx, s.db)
	if err != nil {
		return nil, err
	}
	simCounts, err := s.simRepo.CountByStatus(ctx, s.db)
	if err != nil {
		return nil, err
	}
	txnCount, err := s.txnRepo.CountSince(ctx, s.db, startOfDay)
	if err != nil {
		return nil, err
	}
	revenue, err := s.txnRepo.SumCompletedSince(ctx, s.db, startOfDay)
	if err != nil {
		return nil, err
	}
	openTickets, err := s.ticketRepo.CountOpen(ctx, s.db)
	if err != nil {
		return nil, err
	}

	return &domain.SystemMetrics{
		ActiveUsers:       activeUsers,
		TotalCustomers:    totalCustomers,
		ActiveCustomers:   activeCustomers,
		SimsByStatus:      simCounts,
		TransactionsToday: txnCount,
		RevenueToday:      revenue,
		OpenTickets:       openTickets,
		GeneratedAt:       now,
	}, nil
}
