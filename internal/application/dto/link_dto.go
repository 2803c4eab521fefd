package dto

import "time"

// LinkResponse salida de un link proveedor-consumidor.
type LinkResponse struct {
	SupplierID string    `json:"supplier_id"`
	ConsumerID string    `json:"consumer_id"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
