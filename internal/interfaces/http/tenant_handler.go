package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/application/usecase"
)

// TenantHandler administración de tenants (solo Master).
type TenantHandler struct {
	uc     *usecase.TenantUseCase
	authUC *auth.AuthUseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *usecase.TenantUseCase, authUC *auth.AuthUseCase) *TenantHandler {
	return &TenantHandler{uc: uc, authUC: authUC}
}

// Create godoc
// @Summary      Crear tenant
// @Description  Genera una contraseña temporal (visible una sola vez) y exige cambio en el primer login.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenantRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CreateTenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Document = strings.TrimSpace(in.Document)
	if in.CompanyName == "" || in.OwnerName == "" || in.Email == "" || in.Document == "" {
		return badRequest(c, "VALIDATION", "company_name, owner_name, email y document son requeridos")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tenants
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.TenantListResponse
// @Router       /api/admin/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tenant
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la suscripción
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del tenant"
// @Param        body  body  dto.UpdateTenantStatusRequest  true  "Active | Blocked | Pending"
// @Success      200   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/status [patch]
func (h *TenantHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateTenantStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tenant (y sus datos)
// @Tags         admin
// @Security     Bearer
// @Param        id   path  string  true  "ID del tenant"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id} [delete]
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResetPassword godoc
// @Summary      Resetear contraseña del dueño del tenant
// @Description  Devuelve una contraseña temporal de 8 caracteres; el próximo login exige cambio.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tenant"
// @Success      200  {object}  dto.TemporaryPasswordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/reset-password [post]
func (h *TenantHandler) ResetPassword(c *fiber.Ctx) error {
	id := c.Params("id")
	temp, err := h.authUC.ResetPassword(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TemporaryPasswordResponse{TenantID: id, TemporaryPassword: temp})
}
