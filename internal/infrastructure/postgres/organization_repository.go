package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

// Asegura que OrganizationRepo implementa repository.OrganizationRepository.
var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

const organizationColumns = `id, name, ice, address, phone, email, status, created_at, updated_at`

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

func scanOrganization(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.ICE, &o.Address, &o.Phone, &o.Email, &o.Status,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste una nueva organización.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, name, ice, address, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.ICE, org.Address, org.Phone, org.Email, org.Status,
		org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepo) findOne(ctx context.Context, op, query string, args ...any) (*entity.Organization, error) {
	o, err := scanOrganization(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.findOne(ctx, "get organization", `SELECT `+organizationColumns+` FROM organizations WHERE id = $1`, id)
}

// GetByICE obtiene una organización por ICE.
func (r *OrganizationRepo) GetByICE(ctx context.Context, ice string) (*entity.Organization, error) {
	return r.findOne(ctx, "get organization by ICE", `SELECT `+organizationColumns+` FROM organizations WHERE ice = $1`, ice)
}

// List devuelve organizaciones con paginación.
func (r *OrganizationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+organizationColumns+` FROM organizations ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// IsModuleEnabled informa si el módulo está activo. Sin fila en organization_modules -> activo.
// Consulta por clave primaria para una respuesta O(1) vía índice.
func (r *OrganizationRepo) IsModuleEnabled(ctx context.Context, organizationID, module string) (bool, error) {
	const query = `
		SELECT NOT EXISTS (
			SELECT 1 FROM organization_modules
			 WHERE organization_id = $1
			   AND module          = $2
			   AND enabled         = false
		)`
	var enabled bool
	if err := r.q.QueryRow(ctx, query, organizationID, module).Scan(&enabled); err != nil {
		return false, fmt.Errorf("check module %s: %w", module, err)
	}
	return enabled, nil
}

// ListModules filas de organization_modules de la organización.
func (r *OrganizationRepo) ListModules(ctx context.Context, organizationID string) ([]*entity.OrganizationModule, error) {
	rows, err := r.q.Query(ctx,
		`SELECT organization_id, module, enabled, updated_at FROM organization_modules WHERE organization_id = $1 ORDER BY module`,
		organizationID)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrganizationModule
	for rows.Next() {
		var m entity.OrganizationModule
		if err := rows.Scan(&m.OrganizationID, &m.Module, &m.Enabled, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SetModule inserta o actualiza el estado del módulo.
func (r *OrganizationRepo) SetModule(ctx context.Context, m *entity.OrganizationModule) error {
	const query = `
		INSERT INTO organization_modules (organization_id, module, enabled, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, module)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, m.OrganizationID, m.Module, m.Enabled, m.UpdatedAt); err != nil {
		return fmt.Errorf("set module %s: %w", m.Module, err)
	}
	return nil
}
