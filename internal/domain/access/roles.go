// Package access define la política de acceso por rol a los módulos de la aplicación.
// Tablas fijas, sin estado ni I/O: la aplicación real de los permisos la hacen los middlewares HTTP.
package access

// Role rol normalizado de un miembro de la organización.
type Role string

// Roles válidos tras la normalización.
const (
	RoleOwner      Role = "owner"
	RoleStaff      Role = "staff"
	RoleRestricted Role = "restricted"
)

// ModuleKey sección de la aplicación. Conjunto cerrado, definido en compilación.
type ModuleKey string

// Módulos de la aplicación.
const (
	ModuleDashboard      ModuleKey = "dashboard"
	ModuleVentes         ModuleKey = "ventes"
	ModuleAchats         ModuleKey = "achats"
	ModuleFournisseurs   ModuleKey = "fournisseurs"
	ModuleClients        ModuleKey = "clients"
	ModuleInventaire     ModuleKey = "inventaire"
	ModuleReconciliation ModuleKey = "reconciliation"
	ModuleRapports       ModuleKey = "rapports"
	ModuleAnalytique     ModuleKey = "analytique"
	ModuleParametres     ModuleKey = "parametres"
	ModuleAssistance     ModuleKey = "assistance"
)

var allModules = []ModuleKey{
	ModuleDashboard,
	ModuleVentes,
	ModuleAchats,
	ModuleFournisseurs,
	ModuleClients,
	ModuleInventaire,
	ModuleReconciliation,
	ModuleRapports,
	ModuleAnalytique,
	ModuleParametres,
	ModuleAssistance,
}

// Capability par de permisos sobre un módulo.
type Capability struct {
	View   bool `json:"can_view"`
	Manage bool `json:"can_manage"`
}

var (
	viewOnly   = Capability{View: true}
	viewManage = Capability{View: true, Manage: true}
)

// roleAliases alias externos (proveedor de identidad, datos heredados) -> rol. Sensible a mayúsculas.
var roleAliases = map[string]Role{
	"owner":      RoleOwner,
	"admin":      RoleOwner,
	"org:owner":  RoleOwner,
	"staff":      RoleStaff,
	"pharmacist": RoleStaff,
	"restricted": RoleRestricted,
	"viewer":     RoleRestricted,
}

// permissions matriz rol × módulo. Un par ausente vale {false, false}.
var permissions = map[Role]map[ModuleKey]Capability{
	RoleOwner: ownerPermissions(),
	RoleStaff: {
		ModuleDashboard:      viewOnly,
		ModuleVentes:         viewManage,
		ModuleAchats:         viewManage,
		ModuleFournisseurs:   viewManage,
		ModuleClients:        viewManage,
		ModuleInventaire:     viewManage,
		ModuleReconciliation: viewManage,
		ModuleRapports:       viewOnly,
		ModuleAssistance:     viewManage,
	},
	RoleRestricted: {},
}

func ownerPermissions() map[ModuleKey]Capability {
	m := make(map[ModuleKey]Capability, len(allModules))
	for _, k := range allModules {
		m[k] = viewManage
	}
	return m
}

// NormalizeRole traduce el rol crudo a Role. Cadena vacía (rol ausente) o desconocida -> restricted.
func NormalizeRole(raw string) Role {
	if r, ok := roleAliases[raw]; ok {
		return r
	}
	return RoleRestricted
}

// ParseRole como NormalizeRole pero informa si el valor era un alias conocido.
func ParseRole(raw string) (Role, bool) {
	r, ok := roleAliases[raw]
	if !ok {
		return RoleRestricted, false
	}
	return r, true
}

// CapabilityFor devuelve los permisos del rol sobre el módulo.
func CapabilityFor(role Role, module ModuleKey) Capability {
	return permissions[role][module]
}

// CanViewModule informa si el rol puede ver el módulo.
func CanViewModule(role Role, module ModuleKey) bool {
	return CapabilityFor(role, module).View
}

// CanManageModule informa si el rol puede modificar datos del módulo.
func CanManageModule(role Role, module ModuleKey) bool {
	return CapabilityFor(role, module).Manage
}

// AllModules devuelve una copia del conjunto completo de módulos, en orden de navegación.
func AllModules() []ModuleKey {
	out := make([]ModuleKey, len(allModules))
	copy(out, allModules)
	return out
}

// AllRoles devuelve los roles normalizados.
func AllRoles() []Role {
	return []Role{RoleOwner, RoleStaff, RoleRestricted}
}

// ParseModuleKey valida una clave de módulo recibida como texto.
func ParseModuleKey(s string) (ModuleKey, bool) {
	for _, k := range allModules {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
