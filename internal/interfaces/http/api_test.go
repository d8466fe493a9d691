package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/application/usecase"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/memory"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Varejo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app    *fiber.App
	store  *memory.Store
	hasher *auth.BcryptHasher
}

func newTestAPI(t *testing.T, loginRateMax int) *testAPI {
	t.Helper()
	return newTestAPIWith(t, loginRateMax, nil)
}

// newTestAPIWith permite ajustar las dependencias del router antes de registrarlo.
func newTestAPIWith(t *testing.T, loginRateMax int, adjust func(*apphttp.RouterDeps)) *testAPI {
	t.Helper()
	store := memory.NewStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	log := zerolog.Nop()

	authUC := auth.NewAuthUseCase(store.Tenants(), store.Employees(), hasher,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)

	deps := apphttp.RouterDeps{
		AuthUC:          authUC,
		TenantUC:        usecase.NewTenantUseCase(store.Tenants(), hasher, log),
		EmployeeUC:      usecase.NewEmployeeUseCase(store.Employees(), hasher, log),
		CatalogUC:       usecase.NewCatalogUseCase(store.Products(), store.Suppliers()),
		ImportUC:        purchasing.NewImportInvoiceUseCase(memory.NewTxRunner(store), log),
		Receipts:        pdf.NewReceiptGenerator(),
		JWTSecret:       testJWTSecret,
		Log:             log,
		MaxXMLBytes:     1 << 20,
		LoginRateMax:    loginRateMax,
		LoginRateWindow: time.Minute,
	}
	if adjust != nil {
		adjust(&deps)
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testAPI{app: app, store: store, hasher: hasher}
}

// seedTenant crea el tenant del escenario (joao@mercado.com / 123456, sin cambio pendiente).
func (a *testAPI) seedTenant(t *testing.T, email, password string, mustChange bool) *entity.Tenant {
	t.Helper()
	hash, err := a.hasher.Hash(password)
	require.NoError(t, err)
	now := time.Now()
	tenant := &entity.Tenant{
		ID: "tenant-" + email, CompanyName: "Mercado do João", OwnerName: "João", Email: email,
		PasswordHash: hash, Document: "doc-" + email, Status: entity.TenantStatusActive,
		NextBilling: now.AddDate(0, 0, 30), JoinedAt: now, MustChangePassword: mustChange,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, a.store.Tenants().Create(context.Background(), tenant))
	return tenant
}

func (a *testAPI) seedProduct(t *testing.T, tenantID, name string, stock, cost, sale string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID: "prod-" + name, TenantID: tenantID, Code: "REF-" + name[:3], Name: name,
		Category: entity.DefaultCategory, Unit: entity.UnitUN,
		CostPrice: decimal.RequireFromString(cost), SalePrice: decimal.RequireFromString(sale),
		Stock: decimal.RequireFromString(stock), MinStock: decimal.NewFromInt(5),
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, a.store.Products().Create(context.Background(), p))
	return p
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (a *testAPI) login(t *testing.T, email, password string) dto.LoginResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginMasterConStoreVacio(t *testing.T) {
	api := newTestAPI(t, 0)
	out := api.login(t, entity.MasterEmail, entity.MasterPassword)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleMaster, out.User.Role)
	assert.Empty(t, out.User.TenantID)
}

func TestAPI_MasterSinTenantNoAccedeADatosDeTenant(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	api.seedProduct(t, tenant.ID, "Refrigerante Cola 2L", "150", "5.50", "8.99")
	master := api.login(t, entity.MasterEmail, entity.MasterPassword)
	require.Empty(t, master.User.TenantID)

	for _, path := range []string{"/api/products", "/api/suppliers", "/api/employees"} {
		resp := api.do(t, http.MethodGet, path, master.Token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
	resp := api.do(t, http.MethodPost, "/api/auth/change-password", master.Token,
		dto.ChangePasswordRequest{CurrentPassword: entity.MasterPassword, NewPassword: "otra-clave"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_LoginFallidoEsIndistinguible(t *testing.T) {
	api := newTestAPI(t, 0)
	api.seedTenant(t, "joao@mercado.com", "123456", false)

	wrongPass := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "joao@mercado.com", Password: "errada"})
	unknown := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@mercado.com", Password: "errada"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decode[dto.ErrorResponse](t, wrongPass), decode[dto.ErrorResponse](t, unknown))
}

func TestAPI_LoginRateLimit(t *testing.T) {
	api := newTestAPI(t, 2)
	for i := 0; i < 2; i++ {
		resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "x@y.com", Password: "z"})
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "x@y.com", Password: "z"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida: alta por master → cambio obligatorio → acceso normal
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_TenantNuevoDebeCambiarPassword(t *testing.T) {
	api := newTestAPI(t, 0)
	master := api.login(t, entity.MasterEmail, entity.MasterPassword)

	created := decode[dto.CreateTenantResponse](t, api.do(t, http.MethodPost, "/api/admin/tenants", master.Token, dto.CreateTenantRequest{
		CompanyName: "Mercado Central", OwnerName: "Ana", Email: "ana@central.com",
		Document: "22.222.222/0001-22", PlanID: "basic", MonthlyFee: decimal.NewFromInt(99),
	}))
	require.Len(t, created.TemporaryPassword, auth.TempPasswordLength)
	assert.True(t, created.Tenant.MustChangePassword)
	assert.Equal(t, entity.TenantStatusActive, created.Tenant.Status)

	first := api.login(t, "ana@central.com", created.TemporaryPassword)
	assert.True(t, first.User.MustChangePassword)
	assert.Equal(t, created.Tenant.ID, first.User.TenantID)

	blocked := api.do(t, http.MethodGet, "/api/products", first.Token, nil)
	defer blocked.Body.Close()
	assert.Equal(t, http.StatusForbidden, blocked.StatusCode)
	assert.Equal(t, "PASSWORD_CHANGE_REQUIRED", decode[dto.ErrorResponse](t, blocked).Code)

	weak := api.do(t, http.MethodPost, "/api/auth/change-password", first.Token, dto.ChangePasswordRequest{
		CurrentPassword: created.TemporaryPassword, NewPassword: "123",
	})
	assert.Equal(t, http.StatusBadRequest, weak.StatusCode)
	assert.Equal(t, "WEAK_PASSWORD", decode[dto.ErrorResponse](t, weak).Code)

	changed := decode[dto.ChangePasswordResponse](t, api.do(t, http.MethodPost, "/api/auth/change-password", first.Token, dto.ChangePasswordRequest{
		CurrentPassword: created.TemporaryPassword, NewPassword: "nova-senha",
	}))
	require.NotEmpty(t, changed.Token)

	ok := api.do(t, http.MethodGet, "/api/products", changed.Token, nil)
	defer ok.Body.Close()
	assert.Equal(t, http.StatusOK, ok.StatusCode)

	again := api.login(t, "ana@central.com", "nova-senha")
	assert.False(t, again.User.MustChangePassword)
}

func TestAPI_ResetPasswordPorMaster(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	master := api.login(t, entity.MasterEmail, entity.MasterPassword)

	reset := decode[dto.TemporaryPasswordResponse](t, api.do(t, http.MethodPost,
		"/api/admin/tenants/"+tenant.ID+"/reset-password", master.Token, nil))
	require.Len(t, reset.TemporaryPassword, auth.TempPasswordLength)

	out := api.login(t, "joao@mercado.com", reset.TemporaryPassword)
	assert.True(t, out.User.MustChangePassword)

	old := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "joao@mercado.com", Password: "123456"})
	defer old.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, old.StatusCode)

	missing := api.do(t, http.MethodPost, "/api/admin/tenants/no-existe/reset-password", master.Token, nil)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestAPI_RutasAdminSoloMaster(t *testing.T) {
	api := newTestAPI(t, 0)
	api.seedTenant(t, "joao@mercado.com", "123456", false)
	manager := api.login(t, "joao@mercado.com", "123456")

	resp := api.do(t, http.MethodGet, "/api/admin/tenants", manager.Token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipo
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_GerenteCreaOperadorQuePuedeLoguear(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	manager := api.login(t, "joao@mercado.com", "123456")

	resp := api.do(t, http.MethodPost, "/api/employees", manager.Token, dto.CreateEmployeeRequest{
		Name: "Caixa 1", Email: "caixa1@mercado.com", Password: "caixa1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	op := api.login(t, "caixa1@mercado.com", "caixa1")
	assert.Equal(t, entity.RoleOperator, op.User.Role)
	assert.Equal(t, tenant.ID, op.User.TenantID)

	// El operador consulta el catálogo pero no importa notas ni gestiona el equipo.
	catalog := api.do(t, http.MethodGet, "/api/products", op.Token, nil)
	catalog.Body.Close()
	assert.Equal(t, http.StatusOK, catalog.StatusCode)

	imp := api.do(t, http.MethodPost, "/api/purchases/import", op.Token, dto.InvoiceImportRequest{})
	imp.Body.Close()
	assert.Equal(t, http.StatusForbidden, imp.StatusCode)

	list := api.do(t, http.MethodGet, "/api/employees", op.Token, nil)
	list.Body.Close()
	assert.Equal(t, http.StatusForbidden, list.StatusCode)

	// Operador no puede cambiar contraseña por la ruta del dueño.
	cp := api.do(t, http.MethodPost, "/api/auth/change-password", op.Token, dto.ChangePasswordRequest{CurrentPassword: "caixa1", NewPassword: "caixa22"})
	cp.Body.Close()
	assert.Equal(t, http.StatusForbidden, cp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de notas
// ──────────────────────────────────────────────────────────────────────────────

func scenarioRequest() dto.InvoiceImportRequest {
	var req dto.InvoiceImportRequest
	req.Supplier.Name = "Dist X"
	req.Supplier.Document = "11.111.111/0001-11"
	req.Items = []dto.InvoiceImportItem{{
		Code: "", Name: "Refrigerante Cola 2L",
		Quantity: decimal.NewFromInt(24), UnitPrice: decimal.RequireFromString("5.80"), Unit: "UN",
	}}
	return req
}

func TestAPI_ImportJSONEscenarioCompleto(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	product := api.seedProduct(t, tenant.ID, "Refrigerante Cola 2L", "150", "5.50", "8.99")
	manager := api.login(t, "joao@mercado.com", "123456")

	resp := api.do(t, http.MethodPost, "/api/purchases/import", manager.Token, scenarioRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.ImportResponse](t, resp)

	assert.True(t, out.SupplierCreated)
	assert.Equal(t, "Dist X", out.SupplierName)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "updated", out.Lines[0].Action)
	assert.True(t, out.Lines[0].Stock.Equal(decimal.NewFromInt(174)))

	got, err := api.store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(174)))
	assert.True(t, got.CostPrice.Equal(decimal.RequireFromString("5.80")))
	assert.True(t, got.SalePrice.Equal(decimal.RequireFromString("8.99")), "precio de venta intacto")

	second := api.do(t, http.MethodPost, "/api/purchases/import", manager.Token, scenarioRequest())
	assert.False(t, decode[dto.ImportResponse](t, second).SupplierCreated)
	suppliers, err := api.store.Suppliers().ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)
}

func TestAPI_ImportInvalidoNoAplicaNada(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	api.seedProduct(t, tenant.ID, "Refrigerante Cola 2L", "150", "5.50", "8.99")
	manager := api.login(t, "joao@mercado.com", "123456")

	req := scenarioRequest()
	req.Items = append(req.Items, dto.InvoiceImportItem{Name: "Arroz", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)})

	resp := api.do(t, http.MethodPost, "/api/purchases/import", manager.Token, req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	products, err := api.store.Products().ListByTenant(context.Background(), tenant.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Stock.Equal(decimal.NewFromInt(150)))
	suppliers, err := api.store.Suppliers().ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

const testNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe"><NFe><infNFe>
<emit><CNPJ>11111111000111</CNPJ><xNome>Dist X</xNome></emit>
<det nItem="1"><prod><cProd>ARZ-5</cProd><cEAN>7890000000001</cEAN><xProd>Arroz 5kg</xProd><uCom>CX</uCom><qCom>10</qCom><vUnCom>20.00</vUnCom></prod></det>
</infNFe></NFe></nfeProc>`

func TestAPI_ImportXMLCreaProducto(t *testing.T) {
	api := newTestAPI(t, 0)
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	manager := api.login(t, "joao@mercado.com", "123456")

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import", strings.NewReader(testNFe))
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Authorization", "Bearer "+manager.Token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.ImportResponse](t, resp)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "created", out.Lines[0].Action)

	p, err := api.store.Products().GetByID(context.Background(), out.Lines[0].ProductID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, p.TenantID)
	assert.Equal(t, "ARZ-5", p.Code)
	assert.Equal(t, "7890000000001", p.Barcode)
	assert.Equal(t, entity.UnitUN, p.Unit, "unidad desconocida cae en UN")
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(30)))
	assert.True(t, p.MinStock.Equal(decimal.NewFromInt(5)))
}

func TestAPI_ImportMultipartDevuelvePDF(t *testing.T) {
	api := newTestAPI(t, 0)
	api.seedTenant(t, "joao@mercado.com", "123456", false)
	manager := api.login(t, "joao@mercado.com", "123456")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "nota.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(testNFe))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import?format=pdf", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+manager.Token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

type brokenReceipts struct{}

func (brokenReceipts) GenerateImportReceipt(context.Context, *purchasing.ImportResult) ([]byte, error) {
	return nil, errors.New("fuente no disponible")
}

func TestAPI_ImportPDFFallidoRespondeJSONYRegistraAviso(t *testing.T) {
	var logs bytes.Buffer
	api := newTestAPIWith(t, 0, func(deps *apphttp.RouterDeps) {
		deps.Receipts = brokenReceipts{}
		deps.Log = zerolog.New(&logs)
	})
	tenant := api.seedTenant(t, "joao@mercado.com", "123456", false)
	api.seedProduct(t, tenant.ID, "Refrigerante Cola 2L", "150", "5.50", "8.99")
	manager := api.login(t, "joao@mercado.com", "123456")

	resp := api.do(t, http.MethodPost, "/api/purchases/import?format=pdf", manager.Token, scenarioRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	out := decode[dto.ImportResponse](t, resp)
	require.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].Stock.Equal(decimal.NewFromInt(174)))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry), logs.String())
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, tenant.ID, entry["tenant_id"])
	assert.Equal(t, "fuente no disponible", entry["error"])
}

func TestAPI_ImportXMLSinEmitente(t *testing.T) {
	api := newTestAPI(t, 0)
	api.seedTenant(t, "joao@mercado.com", "123456", false)
	manager := api.login(t, "joao@mercado.com", "123456")

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/import", strings.NewReader(`<NFe><infNFe></infNFe></NFe>`))
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("Authorization", "Bearer "+manager.Token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_LowStockYProductosAislados(t *testing.T) {
	api := newTestAPI(t, 0)
	a := api.seedTenant(t, "a@mercado.com", "123456", false)
	b := api.seedTenant(t, "b@mercado.com", "123456", false)
	api.seedProduct(t, a.ID, "Feijão 1kg", "3", "7.00", "10.50")
	other := api.seedProduct(t, b.ID, "Leite 1L", "100", "4.00", "6.00")
	manager := api.login(t, "a@mercado.com", "123456")

	low := decode[[]dto.ProductResponse](t, api.do(t, http.MethodGet, "/api/products/low-stock", manager.Token, nil))
	require.Len(t, low, 1)
	assert.Equal(t, "Feijão 1kg", low[0].Name)

	foreign := api.do(t, http.MethodGet, "/api/products/"+other.ID, manager.Token, nil)
	defer foreign.Body.Close()
	assert.Equal(t, http.StatusNotFound, foreign.StatusCode)
}
