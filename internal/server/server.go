package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omvsuite/omvadmin/internal/analytics"
	analyticsdomain "github.com/omvsuite/omvadmin/internal/analytics/domain"
	"github.com/omvsuite/omvadmin/internal/cache"
	"github.com/omvsuite/omvadmin/internal/config"
	"github.com/omvsuite/omvadmin/internal/customer"
	customerdomain "github.com/omvsuite/omvadmin/internal/customer/domain"
	"github.com/omvsuite/omvadmin/internal/notification"
	notifdomain "github.com/omvsuite/omvadmin/internal/notification/domain"
	"github.com/omvsuite/omvadmin/internal/plan"
	plandomain "github.com/omvsuite/omvadmin/internal/plan/domain"
	"github.com/omvsuite/omvadmin/internal/ratelimit"
	"github.com/omvsuite/omvadmin/internal/session"
	"github.com/omvsuite/omvadmin/internal/sim"
	simdomain "github.com/omvsuite/omvadmin/internal/sim/domain"
	"github.com/omvsuite/omvadmin/internal/ticket"
	ticketdomain "github.com/omvsuite/omvadmin/internal/ticket/domain"
	"github.com/omvsuite/omvadmin/internal/transaction"
	txndomain "github.com/omvsuite/omvadmin/internal/transaction/domain"
	"github.com/omvsuite/omvadmin/internal/user"
	userdomain "github.com/omvsuite/omvadmin/internal/user/domain"
	"github.com/omvsuite/omvadmin/internal/warehouse"
	warehousedomain "github.com/omvsuite/omvadmin/internal/warehouse/domain"
	"github.com/omvsuite/omvadmin/internal/webhooklog"
	webhookdomain "github.com/omvsuite/omvadmin/internal/webhooklog/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	user.Module,
	customer.Module,
	sim.Module,
	plan.Module,
	warehouse.Module,
	transaction.Module,
	ticket.Module,
	analytics.Module,
	notification.Module,
	session.Module,
	webhooklog.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(ErrorHandlingMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func registerGin(logger *zap.Logger) *gin.Engine {
	return NewEngine(logger)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	facade       *cache.Facade
	userSvc      userdomain.Service
	customerSvc  customerdomain.Service
	simSvc       simdomain.Service
	planSvc      plandomain.Service
	warehouseSvc warehousedomain.Service
	txnSvc       txndomain.Service
	ticketSvc    ticketdomain.Service
	analyticsSvc analyticsdomain.Service
	notifSvc     notifdomain.Service
	sessionSvc   session.Service
	webhookSvc   webhookdomain.Service
	writeLimiter *ratelimit.WriteLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Facade       *cache.Facade
	UserSvc      userdomain.Service
	CustomerSvc  customerdomain.Service
	SimSvc       simdomain.Service
	PlanSvc      plandomain.Service
	WarehouseSvc warehousedomain.Service
	TxnSvc       txndomain.Service
	TicketSvc    ticketdomain.Service
	AnalyticsSvc analyticsdomain.Service
	NotifSvc     notifdomain.Service
	SessionSvc   session.Service
	WebhookSvc   webhookdomain.Service
	WriteLimiter *ratelimit.WriteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		facade:       p.Facade,
		userSvc:      p.UserSvc,
		customerSvc:  p.CustomerSvc,
		simSvc:       p.SimSvc,
		planSvc:      p.PlanSvc,
		warehouseSvc: p.WarehouseSvc,
		txnSvc:       p.TxnSvc,
		ticketSvc:    p.TicketSvc,
		analyticsSvc: p.AnalyticsSvc,
		notifSvc:     p.NotifSvc,
		sessionSvc:   p.SessionSvc,
		webhookSvc:   p.WebhookSvc,
		writeLimiter: p.WriteLimiter,
	}

	svc.registerHealthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerHealthRoutes() {
	s.engine.GET("/health", s.Health)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	limited := s.WriteRateLimit()

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", limited, s.CreateUser)
	api.GET("/users/:id", s.GetUserByID)
	api.GET("/users/:id/permissions", s.GetUserPermissions)
	api.PATCH("/users/:id", limited, s.UpdateUser)
	api.DELETE("/users/:id", limited, s.DeleteUser)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", limited, s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", limited, s.UpdateCustomer)

	// -------- SIMs --------
	api.GET("/sims", s.ListSims)
	api.POST("/sims", limited, s.CreateSim)
	api.GET("/sims/:id", s.GetSimByID)
	api.PATCH("/sims/:id", limited, s.UpdateSim)
	api.DELETE("/sims/:id", limited, s.DeleteSim)

	// -------- Plans --------
	api.GET("/plans", s.ListPlans)
	api.POST("/plans", limited, s.CreatePlan)
	api.GET("/plans/:id", s.GetPlanByID)
	api.PATCH("/plans/:id", limited, s.UpdatePlan)

	// -------- Warehouses --------
	api.GET("/warehouses", s.ListWarehouses)
	api.POST("/warehouses", limited, s.CreateWarehouse)
	api.GET("/warehouses/:id", s.GetWarehouseByID)
	api.PATCH("/warehouses/:id", limited, s.UpdateWarehouse)
	api.GET("/warehouses/:id/sims", s.ListWarehouseSims)

	// -------- Transactions --------
	api.GET("/transactions", s.ListTransactions)
	api.GET("/transactions/:id", s.GetTransactionByID)
	api.GET("/customers/:id/transactions", s.GetTransactionHistory)
	api.POST("/activations", limited, s.Activate)
	api.POST("/recharges", limited, s.Recharge)
	api.POST("/balance/transfer", limited, s.Transfer)
	api.POST("/suspensions", limited, s.Suspend)

	// -------- Tickets --------
	api.GET("/tickets", s.ListTickets)
	api.POST("/tickets", limited, s.CreateTicket)
	api.GET("/tickets/:id", s.GetTicketByID)
	api.PATCH("/tickets/:id", limited, s.UpdateTicket)
	api.POST("/tickets/:id/comments", limited, s.AddTicketComment)

	// -------- Analytics / Reports --------
	api.POST("/analytics", s.TrackActivity)
	api.GET("/analytics/users/:id", s.GetUserDailyStats)
	api.GET("/analytics/global", s.GetGlobalActivity)
	api.GET("/reports/system", s.GetSystemReport)

	// -------- Notifications --------
	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications", limited, s.SendNotification)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	api.GET("/notifications/unread-count", s.GetUnreadCount)

	// -------- Sessions --------
	api.POST("/sessions", limited, s.CreateSession)
	api.GET("/sessions/:token", s.GetSession)
	api.DELETE("/sessions/:token", s.DeleteSession)
	api.DELETE("/users/:id/sessions", limited, s.DeleteUserSessions)

	// -------- Webhook logs --------
	api.POST("/webhooks/logs", limited, s.RecordWebhookLog)
	api.GET("/webhooks/logs", s.ListWebhookLogs)

	// Cache administration.
	api.POST("/cache/flush", limited, s.FlushCache)
}
