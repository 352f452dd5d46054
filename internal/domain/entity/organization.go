package entity

import "time"

// Organization tenant del sistema: una farmacia.
type Organization struct {
	ID        string
	Name      string
	ICE       string // Identifiant Commun de l'Entreprise (Marruecos)
	Address   string
	Phone     string
	Email     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationModule activación de un módulo para una organización.
// Un módulo sin fila se considera activo.
type OrganizationModule struct {
	OrganizationID string
	Module         string
	Enabled        bool
	UpdatedAt      time.Time
}
