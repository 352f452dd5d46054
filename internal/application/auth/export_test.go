package auth

import "golang.org/x/crypto/bcrypt"

// WithMinCost baja el coste de bcrypt para que los tests sean rápidos.
func (uc *AuthUseCase) WithMinCost() *AuthUseCase {
	uc.cost = bcrypt.MinCost
	return uc
}
