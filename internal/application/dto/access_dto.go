package dto

// ModuleAccessDTO permisos efectivos del miembro sobre un módulo.
type ModuleAccessDTO struct {
	Key       string `json:"key"`
	CanView   bool   `json:"can_view"`
	CanManage bool   `json:"can_manage"`
	Enabled   bool   `json:"enabled"` // activado para la organización
}

// AccessResponse respuesta de GET /api/me/access.
type AccessResponse struct {
	UserID         string            `json:"user_id"`
	OrganizationID string            `json:"organization_id"`
	Role           string            `json:"role"` // normalizado: owner, staff, restricted
	Modules        []ModuleAccessDTO `json:"modules"`
}

// ModuleSettingDTO estado de un módulo en la configuración de la organización.
type ModuleSettingDTO struct {
	Key        string `json:"key"`
	Enabled    bool   `json:"enabled"`
	Toggleable bool   `json:"toggleable"`
}

// SetModuleRequest body para PUT /api/settings/modules/:module.
type SetModuleRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateRoleRequest body para PUT /api/members/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}
