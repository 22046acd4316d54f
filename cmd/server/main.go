// Command server runs the StockBar HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nicole276/Api-Stockbar/internal/config"
	"github.com/nicole276/Api-Stockbar/internal/domain/auth"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/category"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/client"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/product"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/supplier"
	"github.com/nicole276/Api-Stockbar/internal/domain/documents/purchase"
	"github.com/nicole276/Api-Stockbar/internal/domain/documents/sale"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/cache"
	v1 "github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/handlers"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/document_repo"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Default().Fatalw("config load failed", "error", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		logger.Default().Fatalw("logger init failed", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		logger.Fatal(ctx, "database connect failed", "error", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Fatal(ctx, "redis connect failed", "error", err)
	}
	defer redisClient.Close()

	txManager := postgres.NewTxManager(pool)
	auditor, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		logger.Fatal(ctx, "audit recorder init failed", "error", err)
	}

	stockRepo := ledger_repo.NewStockRepository(txManager)
	productRepo := catalog_repo.NewProductRepository(txManager)
	categoryRepo := catalog_repo.NewCategoryRepository(txManager)
	clientRepo := catalog_repo.NewClientRepository(txManager)
	supplierRepo := catalog_repo.NewSupplierRepository(txManager)
	purchaseRepo := document_repo.NewPurchaseRepository(txManager)
	saleRepo := document_repo.NewSaleRepository(txManager)
	userRepo := auth_repo.NewUserRepository(txManager)
	roleRepo := auth_repo.NewRoleRepository(txManager)

	ledgerSvc := ledger.NewService(stockRepo, txManager)
	productSvc := product.NewService(productRepo, txManager)
	categorySvc := category.NewService(categoryRepo, txManager)
	clientSvc := client.NewService(clientRepo, txManager)
	supplierSvc := supplier.NewService(supplierRepo, txManager)
	purchaseSvc := purchase.NewService(purchaseRepo, ledgerSvc, txManager, auditor)
	saleSvc := sale.NewService(saleRepo, ledgerSvc, txManager, auditor)

	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTokenTTL)
	codeStore := cache.NewResetCodeStore(redisClient, cfg.ResetCodeTTL)
	authSvc := auth.NewService(userRepo, roleRepo, codeStore, tokenIssuer, txManager)

	router := v1.NewRouter(v1.Handlers{
		Health:   handlers.NewHealthHandler(pool),
		Auth:     handlers.NewAuthHandler(authSvc),
		Product:  handlers.NewProductHandler(productSvc, ledgerSvc),
		Category: handlers.NewCategoryHandler(categorySvc),
		Client:   handlers.NewClientHandler(clientSvc),
		Supplier: handlers.NewSupplierHandler(supplierSvc),
		Purchase: handlers.NewPurchaseHandler(purchaseSvc),
		Sale:     handlers.NewSaleHandler(saleSvc),
	}, authSvc, cfg.IsProduction())

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info(ctx, "server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown failed", "error", err)
	}
	logger.Info(ctx, "server stopped")
}
