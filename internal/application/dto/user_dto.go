package dto

import "time"

// RegisterRequest auto-registro de consumidor (por defecto) u owner de proveedor.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	FirstName       string `json:"first_name" validate:"required,max=200"`
	LastName        string `json:"last_name" validate:"omitempty,max=200"`
	IsSupplierOwner bool   `json:"is_supplier_owner"`
}

// RegisterMemberRequest alta de un delegado por parte de un owner.
// Exactamente uno de IsSupplierManager / IsSupplierRepr debe ser true.
type RegisterMemberRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=6"`
	FirstName         string `json:"first_name" validate:"required,max=200"`
	LastName          string `json:"last_name" validate:"omitempty,max=200"`
	IsSupplierManager bool   `json:"is_supplier_manager"`
	IsSupplierRepr    bool   `json:"is_supplier_repr"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token de acceso; no hay refresh token.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken *string      `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name,omitempty"`
	Role              string    `json:"role"`
	IsConsumer        bool      `json:"is_consumer"`
	IsSupplierOwner   bool      `json:"is_supplier_owner"`
	IsSupplierManager bool      `json:"is_supplier_manager"`
	IsSupplierRepr    bool      `json:"is_supplier_repr"`
	SupplierOwnerID   *string   `json:"supplier_owner_id"`
	CreatedAt         time.Time `json:"created_at"`
}
