package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo del catálogo de un proveedor.
// SupplierID es siempre el id del owner, nunca el de un delegado.
type Product struct {
	ID          string
	SupplierID  string
	Name        string
	Description *string
	Price       decimal.Decimal
	Quantity    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
