package entity

import "time"

// Link relación solicitada (IsApproved=false) o activa (IsApproved=true) entre un
// proveedor (owner) y un consumidor. La identidad es el par (SupplierID, ConsumerID).
type Link struct {
	SupplierID string
	ConsumerID string
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
