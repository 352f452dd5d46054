package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/domain/access"
	"github.com/jhoicas/seraphine/pkg/logger"
	"github.com/jhoicas/seraphine/pkg/metrics"
)

// Action nivel de acceso que exige una ruta.
type Action string

const (
	ActionView   Action = "view"
	ActionManage Action = "manage"
)

// ModuleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService.
type ModuleChecker interface {
	IsModuleEnabled(ctx context.Context, organizationID string, module access.ModuleKey) (bool, error)
}

// RoleResolver devuelve el rol vigente de un miembro; ok=false si ya no pertenece a la organización
// o está inactivo. Lo implementa *usecase.UserUseCase.
type RoleResolver interface {
	CurrentRole(ctx context.Context, organizationID, userID string) (role string, ok bool, err error)
}

// RequireModule devuelve un middleware Fiber que aplica la política de acceso a un módulo.
// Debe usarse DESPUÉS de AuthMiddleware (necesita organización y rol en Locals).
// Para ActionManage con roles != nil el rol se relee de la DB en lugar del token, así una
// degradación surte efecto sin esperar a que el token expire.
//
// Comportamiento:
//   - 401 Unauthorized → sin organization_id en el contexto.
//   - 403 MODULE_FORBIDDEN → el rol normalizado no puede ver/gestionar el módulo.
//   - 403 MODULE_DISABLED → el módulo está desactivado para la organización.
//   - 503 MODULE_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequireModule(module access.ModuleKey, action Action, checker ModuleChecker, roles RoleResolver, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("access")
	return func(c *fiber.Ctx) error {
		organizationID := GetOrganizationID(c)
		if organizationID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "organization_id no encontrado en el token",
			})
		}

		role := GetRole(c)
		if action == ActionManage && roles != nil {
			current, ok, err := roles.CurrentRole(c.UserContext(), organizationID, GetUserID(c))
			if err != nil {
				log.Error().Err(err).
					Str("organization_id", organizationID).
					Str("module", string(module)).
					Msg("no se pudo leer el rol vigente")
				return moduleCheckFailed(c)
			}
			role = access.RoleRestricted
			if ok {
				role = access.NormalizeRole(current)
			}
		}

		allowed := access.CanViewModule(role, module)
		if action == ActionManage {
			allowed = access.CanManageModule(role, module)
		}
		if !allowed {
			metrics.AccessDenied.WithLabelValues(string(module), string(action), "forbidden").Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: fmt.Sprintf("el rol %s no puede %s el módulo '%s'", role, actionVerb(action), module),
			})
		}

		enabled, err := checker.IsModuleEnabled(c.UserContext(), organizationID, module)
		if err != nil {
			log.Error().Err(err).
				Str("organization_id", organizationID).
				Str("module", string(module)).
				Msg("no se pudo verificar el módulo")
			return moduleCheckFailed(c)
		}
		if !enabled {
			metrics.AccessDenied.WithLabelValues(string(module), string(action), "disabled").Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + string(module) + "' no está activo para esta organización",
			})
		}

		return c.Next()
	}
}

func moduleCheckFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Code:    "MODULE_CHECK_FAILED",
		Message: "no se pudo verificar el módulo, intente más tarde",
	})
}

func actionVerb(a Action) string {
	if a == ActionManage {
		return "gestionar"
	}
	return "ver"
}
