package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/application/usecase"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Varejo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Varejo-api/internal/interfaces/http"
	"github.com/jhoicas/Varejo-api/pkg/config"
	"github.com/jhoicas/Varejo-api/pkg/logger"
)

// stores repositorios + runner de importación del backend elegido.
type stores struct {
	tenants   repository.TenantRepository
	employees repository.EmployeeRepository
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	importTx  purchasing.ImportTxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	hasher := auth.NewBcryptHasher(0)
	authUC := auth.NewAuthUseCase(st.tenants, st.employees, hasher, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	tenantUC := usecase.NewTenantUseCase(st.tenants, hasher, log.Component("tenants"))
	employeeUC := usecase.NewEmployeeUseCase(st.employees, hasher, log.Component("employees"))
	catalogUC := usecase.NewCatalogUseCase(st.products, st.suppliers)
	importUC := purchasing.NewImportInvoiceUseCase(st.importTx, log.Component("purchasing"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.Import.MaxXMLBytes + 64<<10, // margen para el envoltorio multipart
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Varejo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		TenantUC:        tenantUC,
		EmployeeUC:      employeeUC,
		CatalogUC:       catalogUC,
		ImportUC:        importUC,
		Receipts:        infrapdf.NewReceiptGenerator(),
		JWTSecret:       cfg.JWT.Secret,
		Log:             log.Component("http"),
		MaxXMLBytes:     cfg.Import.MaxXMLBytes,
		LoginRateMax:    cfg.HTTP.LoginRateMax,
		LoginRateWindow: cfg.HTTP.LoginRateWindow,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		s := memory.NewStore()
		return &stores{
			tenants:   s.Tenants(),
			employees: s.Employees(),
			products:  s.Products(),
			suppliers: s.Suppliers(),
			importTx:  memory.NewTxRunner(s),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		tenants:   postgres.NewTenantRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		products:  postgres.NewProductRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		importTx:  postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
