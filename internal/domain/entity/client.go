package entity

import "time"

// Client representa un cliente de la óptica.
type Client struct {
	ID        string
	Name      string
	TaxID     string // CPF o CNPJ, único
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
