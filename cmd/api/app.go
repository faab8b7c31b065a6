package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/docs"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/controller"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/api/route"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/adapter/repository"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/cache"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/config"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/infrastructure/database"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/internal/service"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/logger"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	log    logger.Logger
	router *gin.Engine
	db     *database.PostgresDB
	redis  *redis.Client
}

// NewApp cria uma nova instância do aplicativo
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	// Configurar banco de dados
	dbConfig := database.NewPostgresConfigFromEnv()
	if cfg.RunMigrations {
		if err := database.RunMigrations(dbConfig, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		log.Info("migrações aplicadas", "path", cfg.MigrationsPath)
	}

	db, err := database.NewPostgresDB(dbConfig, log)
	if err != nil {
		return nil, err
	}

	// Redis é opcional: sem endereço, cache e locks ficam desligados
	rdb, err := cache.NewRedisClient(context.Background(), cache.RedisConfig{
		Address:  cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	var reports *cache.ReportCache
	if cfg.ReportCache {
		reports = cache.NewReportCache(rdb, cfg.ReportCacheTTL, log)
	}
	locker := cache.NewLocker(rdb, cfg.LockTTL, log)
	loc := cfg.Location()

	// Criar repositórios
	componentRepo := repository.NewPostgresCostComponentRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)
	transactionRepo := repository.NewPostgresTransactionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	procurementRepo := repository.NewPostgresProcurementRepository(db)

	// Criar serviços
	catalog := service.NewCatalogService(productRepo, componentRepo, reports, locker, logger.WithFields(log, "component", "catalog"))
	ledger := service.NewLedgerService(transactionRepo, reports, logger.WithFields(log, "component", "ledger"))
	orders := service.NewOrderService(orderRepo, productRepo, customerRepo, reports, logger.WithFields(log, "component", "orders"))
	procurements := service.NewProcurementService(procurementRepo, orderRepo, reports, locker, loc, logger.WithFields(log, "component", "procurement"))
	reportService := service.NewReportService(transactionRepo, orderRepo, productRepo, reports, loc, logger.WithFields(log, "component", "reports"))

	// Configurar router com modo correto
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(cfg.BasePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": "1.0.0", "redis": rdb != nil})
	})

	route.RegisterCatalogRoutes(api,
		controller.NewCostComponentController(catalog, log),
		controller.NewHPPController(catalog, log),
		controller.NewProductController(catalog, log),
		cfg.JWTSecret,
	)
	route.RegisterOrderRoutes(api, controller.NewOrderController(orders, loc, log), cfg.JWTSecret)
	route.RegisterStorefrontRoutes(api, controller.NewStorefrontController(catalog, orders, loc, log))
	route.RegisterProcurementRoutes(api, controller.NewProcurementController(procurements, loc, log), cfg.JWTSecret)
	route.RegisterFinanceRoutes(api,
		controller.NewTransactionController(ledger, loc, log),
		controller.NewReportController(reportService, loc, log),
		cfg.JWTSecret,
	)
	route.RegisterCustomerRoutes(api, controller.NewCustomerController(customerRepo, log), cfg.JWTSecret)

	return &App{cfg: cfg, log: log, router: router, db: db, redis: rdb}, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	c.AddAllowHeaders("Authorization")
	c.AddExposeHeaders("Content-Disposition")
	return c
}

// Run inicia o servidor e espera SIGINT/SIGTERM para encerrar
func (a *App) Run() error {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()
	a.log.Info("servidor iniciado", "port", a.cfg.Port, "base_path", a.cfg.BasePath)

	select {
	case <-sigCtx.Done():
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	a.log.Info("encerrando servidor")
	return srv.Shutdown(shutdownCtx)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("erro ao fechar redis", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
