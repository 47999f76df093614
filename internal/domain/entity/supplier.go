package entity

import "time"

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT/CNPJ, único por proveedor
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	IsActive  bool
	CreatedAt time.Time
}
