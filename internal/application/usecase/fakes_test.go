package usecase_test

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
)

// ── productos ────────────────────────────────────────────────────────────────

type memProducts struct {
	repository.ProductRepository
	items     []*entity.Product
	failOnBar string // Create falla para este código de barras
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	if m.failOnBar != "" && p.Barcode == m.failOnBar {
		return errors.New("insert falló")
	}
	cp := *p
	m.items = append(m.items, &cp)
	return nil
}

func (m *memProducts) GetByID(_ context.Context, organizationID, id string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.ID == id && p.OrganizationID == organizationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) GetByBarcode(_ context.Context, organizationID, barcode string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Barcode == barcode && p.OrganizationID == organizationID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	for i, cur := range m.items {
		if cur.ID == p.ID {
			cp := *p
			m.items[i] = &cp
			return nil
		}
	}
	return errors.New("no existe")
}

func (m *memProducts) ListByOrganization(_ context.Context, organizationID, search string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.items {
		if p.OrganizationID != organizationID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) && p.Barcode != search {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type memMovements struct {
	repository.StockMovementRepository
	created []*entity.StockMovement
}

func (m *memMovements) Create(_ context.Context, mv *entity.StockMovement) error {
	m.created = append(m.created, mv)
	return nil
}

// memTx aplica fn sobre los repos en memoria y deshace las altas si fn falla.
type memTx struct {
	products  *memProducts
	movements *memMovements
	runs      int
}

func (tx *memTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	tx.runs++
	np, nm := len(tx.products.items), len(tx.movements.created)
	if err := fn(tx.products, tx.movements); err != nil {
		tx.products.items = tx.products.items[:np]
		tx.movements.created = tx.movements.created[:nm]
		return err
	}
	return nil
}

// ── organizaciones ───────────────────────────────────────────────────────────

type memOrgs struct {
	orgs    []*entity.Organization
	modules map[string]*entity.OrganizationModule // clave orgID/módulo
	err     error
}

func newMemOrgs() *memOrgs {
	return &memOrgs{modules: map[string]*entity.OrganizationModule{}}
}

func (m *memOrgs) Create(_ context.Context, o *entity.Organization) error {
	m.orgs = append(m.orgs, o)
	return nil
}

func (m *memOrgs) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	for _, o := range m.orgs {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memOrgs) GetByICE(_ context.Context, ice string) (*entity.Organization, error) {
	for _, o := range m.orgs {
		if o.ICE == ice {
			return o, nil
		}
	}
	return nil, nil
}

func (m *memOrgs) List(_ context.Context, _, _ int) ([]*entity.Organization, error) {
	return m.orgs, nil
}

func (m *memOrgs) IsModuleEnabled(_ context.Context, organizationID, module string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	row, ok := m.modules[organizationID+"/"+module]
	return !ok || row.Enabled, nil
}

func (m *memOrgs) ListModules(_ context.Context, organizationID string) ([]*entity.OrganizationModule, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*entity.OrganizationModule
	for _, row := range m.modules {
		if row.OrganizationID == organizationID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memOrgs) SetModule(_ context.Context, row *entity.OrganizationModule) error {
	m.modules[row.OrganizationID+"/"+row.Module] = row
	return nil
}

// ── usuarios ─────────────────────────────────────────────────────────────────

type memUsers struct {
	users []*entity.User
}

func (m *memUsers) CreateMember(_ context.Context, u *entity.User, firstRole, role string) error {
	u.Role = role
	if len(m.membersOf(u.OrganizationID)) == 0 {
		u.Role = firstRole
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) membersOf(organizationID string) []*entity.User {
	var out []*entity.User
	for _, u := range m.users {
		if u.OrganizationID == organizationID {
			out = append(out, u)
		}
	}
	return out
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) ListByOrganization(_ context.Context, organizationID string) ([]*entity.User, error) {
	return m.membersOf(organizationID), nil
}

func (m *memUsers) UpdateRole(_ context.Context, id, role string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return errors.New("no existe")
}
