package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/application/usecase"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	TenantUC   *usecase.TenantUseCase
	EmployeeUC *usecase.EmployeeUseCase
	CatalogUC  *usecase.CatalogUseCase
	ImportUC   *purchasing.ImportInvoiceUseCase
	Receipts   purchasing.ReceiptGenerator
	JWTSecret  string
	Log        zerolog.Logger

	MaxXMLBytes int
	// LoginRateMax intentos de login por IP y ventana; 0 desactiva el límite.
	LoginRateMax    int
	LoginRateWindow time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	if deps.LoginRateMax > 0 {
		authGroup.Post("/login", loginLimiter(deps.LoginRateMax, deps.LoginRateWindow), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	requireAuth := AuthMiddleware(deps.JWTSecret)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	// change-password no pasa por RequirePasswordChanged: es la salida del estado MustChange.
	authGroup.Post("/change-password", requireAuth, RequireRole(entity.RoleManager), authHandler.ChangePassword)

	// Administración SaaS (Master)
	tenantHandler := NewTenantHandler(deps.TenantUC, deps.AuthUC)
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleMaster))
	admin.Post("/tenants", tenantHandler.Create)
	admin.Get("/tenants", tenantHandler.List)
	admin.Get("/tenants/:id", tenantHandler.GetByID)
	admin.Patch("/tenants/:id/status", tenantHandler.UpdateStatus)
	admin.Delete("/tenants/:id", tenantHandler.Delete)
	admin.Post("/tenants/:id/reset-password", tenantHandler.ResetPassword)

	// Rutas de negocio del tenant (Gerente u Operador, sin cambio de contraseña pendiente)
	tenant := api.Group("/", requireAuth, RequireRole(entity.RoleManager, entity.RoleOperator), RequirePasswordChanged())
	managerOnly := RequireRole(entity.RoleManager)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	tenant.Get("/products", catalogHandler.ListProducts)
	tenant.Get("/products/low-stock", catalogHandler.ListLowStock)
	tenant.Get("/products/:id", catalogHandler.GetProduct)
	tenant.Get("/suppliers", catalogHandler.ListSuppliers)

	importHandler := NewImportHandler(deps.ImportUC, deps.Receipts, deps.MaxXMLBytes, deps.Log)
	tenant.Post("/purchases/import", managerOnly, importHandler.Import)

	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	tenant.Post("/employees", managerOnly, employeeHandler.Create)
	tenant.Get("/employees", managerOnly, employeeHandler.List)
	tenant.Delete("/employees/:id", managerOnly, employeeHandler.Delete)
}

func loginLimiter(max int, window time.Duration) fiber.Handler {
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "demasiados intentos de login, intente más tarde",
			})
		},
	})
}
