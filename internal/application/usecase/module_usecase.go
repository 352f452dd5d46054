package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/access"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

// ModuleService sabe qué módulos tiene activos una organización.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos;
// la matriz rol × módulo vive en domain/access.
type ModuleService struct {
	orgRepo repository.OrganizationRepository
	now     func() time.Time
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(orgRepo repository.OrganizationRepository) *ModuleService {
	return &ModuleService{orgRepo: orgRepo, now: time.Now}
}

// Toggleable informa si el módulo puede desactivarse. dashboard y parametres siempre quedan activos.
func Toggleable(module access.ModuleKey) bool {
	return module != access.ModuleDashboard && module != access.ModuleParametres
}

// IsModuleEnabled informa si el módulo está activo para la organización.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) IsModuleEnabled(ctx context.Context, organizationID string, module access.ModuleKey) (bool, error) {
	if organizationID == "" || module == "" {
		return false, fmt.Errorf("module: organizationID y module son obligatorios")
	}
	if !Toggleable(module) {
		return true, nil
	}
	return s.orgRepo.IsModuleEnabled(ctx, organizationID, string(module))
}

// enabledSet devuelve el estado de cada módulo; los que no tienen fila están activos.
func (s *ModuleService) enabledSet(ctx context.Context, organizationID string) (map[access.ModuleKey]bool, error) {
	rows, err := s.orgRepo.ListModules(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make(map[access.ModuleKey]bool)
	for _, k := range access.AllModules() {
		out[k] = true
	}
	for _, r := range rows {
		k, ok := access.ParseModuleKey(r.Module)
		if !ok || !Toggleable(k) {
			continue
		}
		out[k] = r.Enabled
	}
	return out, nil
}

// Access calcula los permisos efectivos del miembro: rol normalizado y, por módulo,
// lo que la matriz permite más si el módulo está activo.
func (s *ModuleService) Access(ctx context.Context, userID, organizationID, rawRole string) (*dto.AccessResponse, error) {
	enabled, err := s.enabledSet(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	role := access.NormalizeRole(rawRole)
	mods := access.AllModules()
	out := &dto.AccessResponse{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           string(role),
		Modules:        make([]dto.ModuleAccessDTO, 0, len(mods)),
	}
	for _, k := range mods {
		c := access.CapabilityFor(role, k)
		out.Modules = append(out.Modules, dto.ModuleAccessDTO{
			Key:       string(k),
			CanView:   c.View,
			CanManage: c.Manage,
			Enabled:   enabled[k],
		})
	}
	return out, nil
}

// ListSettings devuelve el estado de todos los módulos de la organización, en orden de navegación.
func (s *ModuleService) ListSettings(ctx context.Context, organizationID string) ([]dto.ModuleSettingDTO, error) {
	enabled, err := s.enabledSet(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	mods := access.AllModules()
	out := make([]dto.ModuleSettingDTO, 0, len(mods))
	for _, k := range mods {
		out = append(out, dto.ModuleSettingDTO{Key: string(k), Enabled: enabled[k], Toggleable: Toggleable(k)})
	}
	return out, nil
}

// SetModule activa o desactiva un módulo. Clave desconocida o módulo no desactivable -> domain.ErrInvalidInput.
func (s *ModuleService) SetModule(ctx context.Context, organizationID, module string, enabled bool) (*dto.ModuleSettingDTO, error) {
	k, ok := access.ParseModuleKey(module)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !Toggleable(k) {
		if enabled {
			return &dto.ModuleSettingDTO{Key: string(k), Enabled: true, Toggleable: false}, nil
		}
		return nil, domain.ErrInvalidInput
	}
	err := s.orgRepo.SetModule(ctx, &entity.OrganizationModule{
		OrganizationID: organizationID,
		Module:         string(k),
		Enabled:        enabled,
		UpdatedAt:      s.now(),
	})
	if err != nil {
		return nil, err
	}
	return &dto.ModuleSettingDTO{Key: string(k), Enabled: enabled, Toggleable: true}, nil
}
