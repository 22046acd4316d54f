// Command seed creates the admin role and user, and optionally demo
// catalog data.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/nicole276/Api-Stockbar/internal/config"
	"github.com/nicole276/Api-Stockbar/internal/core/apperror"
	"github.com/nicole276/Api-Stockbar/internal/core/types"
	"github.com/nicole276/Api-Stockbar/internal/domain/auth"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/category"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/client"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/product"
	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/supplier"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

type noopCodeStore struct{}

func (noopCodeStore) Set(context.Context, string, string) error { return nil }
func (noopCodeStore) Consume(context.Context, string, string) (bool, error) {
	return false, nil
}

func main() {
	adminEmail := flag.String("admin-email", "admin@stockbar.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required)")
	demo := flag.Bool("demo", false, "seed demo catalog data")
	flag.Parse()

	_ = godotenv.Load()
	ctx := context.Background()

	if *adminPassword == "" {
		logger.Fatal(ctx, "admin-password flag is required")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "config load failed", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		logger.Fatal(ctx, "database connect failed", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	userRepo := auth_repo.NewUserRepository(txManager)
	roleRepo := auth_repo.NewRoleRepository(txManager)
	authSvc := auth.NewService(userRepo, roleRepo, noopCodeStore{}, auth.NewTokenIssuer(cfg.JWTSecret, time.Hour), txManager)

	adminRole := seedAdminRole(ctx, authSvc)
	seedAdminUser(ctx, authSvc, adminRole, *adminEmail, *adminPassword)

	if *demo {
		seedDemoData(ctx, txManager)
	}

	logger.Info(ctx, "seeding complete")
}

func seedAdminRole(ctx context.Context, svc *auth.Service) *auth.Role {
	roles, err := svc.ListRoles(ctx)
	if err != nil {
		logger.Fatal(ctx, "list roles failed", "error", err)
	}
	for _, r := range roles {
		if r.Name == "admin" {
			return r
		}
	}

	role, err := svc.CreateRole(ctx, &auth.Role{Name: "admin", Description: "Full access"})
	if err != nil {
		logger.Fatal(ctx, "create admin role failed", "error", err)
	}
	logger.Info(ctx, "admin role created", "role_id", role.ID)
	return role
}

func seedAdminUser(ctx context.Context, svc *auth.Service, role *auth.Role, email, password string) {
	_, err := svc.CreateUser(ctx, &auth.User{
		FullName: "Administrator",
		Email:    email,
		RoleID:   role.ID,
	}, password)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
			logger.Info(ctx, "admin user already exists", "email", email)
			return
		}
		logger.Fatal(ctx, "create admin user failed", "error", err)
	}
	logger.Info(ctx, "admin user created", "email", email)
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager) {
	categoryRepo := catalog_repo.NewCategoryRepository(txManager)
	clientRepo := catalog_repo.NewClientRepository(txManager)
	supplierRepo := catalog_repo.NewSupplierRepository(txManager)
	productRepo := catalog_repo.NewProductRepository(txManager)

	categorySvc := category.NewService(categoryRepo, txManager)
	clientSvc := client.NewService(clientRepo, txManager)
	supplierSvc := supplier.NewService(supplierRepo, txManager)
	productSvc := product.NewService(productRepo, txManager)

	drinks, err := categorySvc.Create(ctx, &category.Category{Name: "Drinks", Description: "Bottled and draft"})
	if err != nil {
		logger.Fatal(ctx, "seed category failed", "error", err)
	}

	if _, err := clientSvc.Create(ctx, &client.Client{Name: "Walk-in"}); err != nil {
		logger.Fatal(ctx, "seed client failed", "error", err)
	}

	sup, err := supplierSvc.Create(ctx, &supplier.Supplier{Name: "Main Beverages Ltd", Email: "orders@mainbev.example"})
	if err != nil {
		logger.Fatal(ctx, "seed supplier failed", "error", err)
	}

	demoProducts := []*product.Product{
		{Name: "Lager 330ml", CategoryID: &drinks.ID, PurchasePrice: types.MustMoney("0.80"), SalePrice: types.MustMoney("2.50")},
		{Name: "Cola 500ml", CategoryID: &drinks.ID, PurchasePrice: types.MustMoney("0.40"), SalePrice: types.MustMoney("1.50")},
		{Name: "Still Water 500ml", CategoryID: &drinks.ID, PurchasePrice: types.MustMoney("0.20"), SalePrice: types.MustMoney("1.00")},
	}
	for _, p := range demoProducts {
		if _, err := productSvc.Create(ctx, p); err != nil {
			logger.Fatal(ctx, "seed product failed", "name", p.Name, "error", err)
		}
	}

	logger.Info(ctx, "demo data seeded", "supplier_id", sup.ID)
}
