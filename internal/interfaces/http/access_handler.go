package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/application/usecase"
)

// AccessHandler expone permisos efectivos, activación de módulos y gestión de miembros.
type AccessHandler struct {
	modules *usecase.ModuleService
	users   *usecase.UserUseCase
}

// NewAccessHandler construye el handler.
func NewAccessHandler(modules *usecase.ModuleService, users *usecase.UserUseCase) *AccessHandler {
	return &AccessHandler{modules: modules, users: users}
}

// Me godoc
// @Summary      Permisos efectivos del miembro autenticado
// @Description  Rol normalizado y, por módulo, can_view / can_manage / enabled. La UI lo usa para la navegación.
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AccessResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/me/access [get]
func (h *AccessHandler) Me(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return unauthorized(c)
	}
	out, err := h.modules.Access(c.UserContext(), GetUserID(c), organizationID, GetRawRole(c))
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "MODULE_CHECK_FAILED", Message: "no se pudo calcular el acceso, intente más tarde"})
	}
	return c.JSON(out)
}

// ListModules godoc
// @Summary      Estado de los módulos de la organización
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ModuleSettingDTO
// @Router       /api/settings/modules [get]
func (h *AccessHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.modules.ListSettings(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// SetModule godoc
// @Summary      Activar o desactivar un módulo
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        module  path  string                true  "Clave del módulo"
// @Param        body    body  dto.SetModuleRequest  true  "enabled"
// @Success      200  {object}  dto.ModuleSettingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/modules/{module} [put]
func (h *AccessHandler) SetModule(c *fiber.Ctx) error {
	var in dto.SetModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.modules.SetModule(c.UserContext(), GetOrganizationID(c), c.Params("module"), in.Enabled)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ListMembers godoc
// @Summary      Miembros de la organización
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/members [get]
func (h *AccessHandler) ListMembers(c *fiber.Ctx) error {
	out, err := h.users.ListMembers(c.UserContext(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// GetMember godoc
// @Summary      Obtener un miembro
// @Tags         access
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del miembro"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/members/{id} [get]
func (h *AccessHandler) GetMember(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "miembro no encontrado"})
	}
	return c.JSON(out)
}

// UpdateMemberRole godoc
// @Summary      Cambiar el rol de un miembro
// @Tags         members
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del miembro"
// @Param        body  body  dto.UpdateRoleRequest  true  "role"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/members/{id}/role [put]
func (h *AccessHandler) UpdateMemberRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.users.UpdateRole(c.UserContext(), GetOrganizationID(c), GetUserID(c), c.Params("id"), in.Role)
	if err != nil {
		return respondError(c, err, "miembro no encontrado")
	}
	return c.JSON(out)
}
