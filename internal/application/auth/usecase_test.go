package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seraphine/internal/application/auth"
	"github.com/jhoicas/seraphine/internal/application/dto"
	"github.com/jhoicas/seraphine/internal/domain"
	"github.com/jhoicas/seraphine/internal/domain/entity"
	"github.com/jhoicas/seraphine/internal/domain/repository"
	"github.com/jhoicas/seraphine/pkg/jwt"
)

const secret = "test-secret"

// users imita el repositorio postgres: conteo e inserción bajo el mismo bloqueo.
type users struct {
	repository.UserRepository
	mu   sync.Mutex
	list []*entity.User
}

func (u *users) CreateMember(_ context.Context, user *entity.User, firstRole, role string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	user.Role = firstRole
	for _, x := range u.list {
		if x.OrganizationID == user.OrganizationID {
			user.Role = role
			break
		}
	}
	u.list = append(u.list, user)
	return nil
}

func (u *users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, x := range u.list {
		if x.Email == email {
			return x, nil
		}
	}
	return nil, nil
}

type orgs struct {
	repository.OrganizationRepository
}

func (orgs) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	if id == "org-1" {
		return &entity.Organization{ID: id, Name: "Pharmacie Atlas"}, nil
	}
	return nil, nil
}

func newAuth() (*auth.AuthUseCase, *users) {
	u := &users{}
	uc := auth.NewAuthUseCase(u, orgs{}, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).WithMinCost()
	return uc, u
}

func TestRegister_AltasConcurrentes_UnSoloOwner(t *testing.T) {
	uc, u := newAuth()
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterUser(ctx, dto.RegisterRequest{
				Email:          fmt.Sprintf("m%d@pharma.ma", i),
				Password:       "12345678",
				OrganizationID: "org-1",
			})
		}(i)
	}
	wg.Wait()

	owners := 0
	for i := range errs {
		require.NoError(t, errs[i])
	}
	for _, x := range u.list {
		if x.Role == "owner" {
			owners++
		}
	}
	assert.Len(t, u.list, n)
	assert.Equal(t, 1, owners)
}

func TestRegister_PrimerMiembroEsOwner(t *testing.T) {
	uc, u := newAuth()
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Owner@Pharma.ma", Password: "12345678", OrganizationID: "org-1"})
	require.NoError(t, err)
	assert.Equal(t, "owner", first.Role)
	assert.Equal(t, "owner@pharma.ma", first.Email)
	assert.NotEqual(t, "12345678", u.list[0].PasswordHash)

	second, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "b@pharma.ma", Password: "12345678", OrganizationID: "org-1"})
	require.NoError(t, err)
	assert.Equal(t, "restricted", second.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@pharma.ma", Password: "corta", OrganizationID: "org-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@pharma.ma", Password: "12345678", OrganizationID: "org-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@pharma.ma", Password: "12345678", OrganizationID: "org-1"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@pharma.ma", Password: "12345678", OrganizationID: "org-1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, u := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@pharma.ma", Password: "12345678", OrganizationID: "org-1"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "a@pharma.ma", Password: "12345678"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "org-1", id.OrganizationID)
	assert.Equal(t, "owner", id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@pharma.ma", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@pharma.ma", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u.list[0].Status = entity.UserStatusInactive
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@pharma.ma", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
