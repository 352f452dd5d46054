package usecase

import (
	"context"

	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/access"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para los miembros de una organización.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un miembro de la organización. nil si no existe o pertenece a otra.
func (uc *UserUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// CurrentRole rol guardado del miembro. ok=false si no existe, pertenece a otra organización o está inactivo.
func (uc *UserUseCase) CurrentRole(ctx context.Context, organizationID, userID string) (string, bool, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if user == nil || user.OrganizationID != organizationID || user.Status != entity.UserStatusActive {
		return "", false, nil
	}
	return user.Role, true, nil
}

// ListMembers lista los miembros de la organización.
func (uc *UserUseCase) ListMembers(ctx context.Context, organizationID string) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// UpdateRole cambia el rol de un miembro. El rol debe ser un alias conocido y se guarda normalizado.
// Un owner no puede quitarse el rol a sí mismo (domain.ErrConflict).
func (uc *UserUseCase) UpdateRole(ctx context.Context, organizationID, actorID, targetID, rawRole string) (*dto.UserResponse, error) {
	role, ok := access.ParseRole(rawRole)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	if actorID == targetID && access.NormalizeRole(user.Role) == access.RoleOwner && role != access.RoleOwner {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateRole(ctx, targetID, string(role)); err != nil {
		return nil, err
	}
	user.Role = string(role)
	return ToUserResponse(user), nil
}

// ToUserResponse convierte la entidad al DTO (sin password). nil -> nil.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
