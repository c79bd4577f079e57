package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/jeffersontgc/credistore-be/internal/config"
	"github.com/jeffersontgc/credistore-be/internal/event"
	"github.com/jeffersontgc/credistore-be/internal/handler"
	"github.com/jeffersontgc/credistore-be/internal/middleware"
	"github.com/jeffersontgc/credistore-be/internal/repository"
	"github.com/jeffersontgc/credistore-be/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Event bus ────────────────────────────────────────────────────────────
	bus := event.NewBus()

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo)
	inventorySvc := service.NewInventoryService(productRepo)
	productSvc := service.NewProductService(productRepo, debtRepo, inventorySvc, rdb)
	debtSvc := service.NewDebtService(debtRepo, userRepo, inventorySvc, bus)
	reportSvc := service.NewReportService(reportRepo, debtRepo)

	// Every debt event triggers a full recomputation of the affected buckets
	bus.Subscribe(event.DebtCreated, reportSvc.HandleDebtEvent)
	bus.Subscribe(event.DebtStatusUpdated, reportSvc.HandleDebtEvent)
	bus.Subscribe(event.DebtCancelled, reportSvc.HandleDebtEvent)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc, debtSvc)
	productsH := handler.NewProductsHandler(productSvc)
	inventoryH := handler.NewInventoryHandler(productSvc)
	debtsH := handler.NewDebtsHandler(debtSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		users := v1.Group("/users")
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.PATCH("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Delete)
			users.GET("/:id/debts", usersH.Debts)
			users.GET("/:id/debts/stats", usersH.DebtStats)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/low-stock", inventoryH.LowStock)
			products.GET("/:id", productsH.Get)
			products.PATCH("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/:id/restock", inventoryH.Restock)
			products.POST("/:id/withdraw", inventoryH.Withdraw)
		}

		debts := v1.Group("/debts")
		{
			debts.POST("", debtsH.Create)
			debts.GET("", debtsH.List)
			debts.GET("/overdue", debtsH.Overdue)
			debts.GET("/:id", debtsH.Get)
			debts.PATCH("/:id/status", debtsH.UpdateStatus)
			debts.DELETE("/:id", debtsH.Cancel)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/daily", reportsH.ListDaily)
			reports.GET("/daily/:date", reportsH.GetDaily)
			reports.GET("/monthly", reportsH.ListMonthly)
			reports.GET("/monthly/:year/:month", reportsH.GetMonthly)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
