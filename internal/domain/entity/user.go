package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
)

// Role variante cerrada de rol derivada de los flags persistidos.
type Role string

// Roles válidos para User.
const (
	RoleOwner          Role = "owner"
	RoleManager        Role = "manager"
	RoleRepresentative Role = "representative"
	RoleConsumer       Role = "consumer"
)

// User representa un usuario del marketplace: consumidor, owner de un proveedor
// o delegado (manager / representante) de un owner.
type User struct {
	ID                string
	Email             string
	PasswordHash      string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName         string
	LastName          string
	IsConsumer        bool
	IsSupplierOwner   bool
	IsSupplierManager bool
	IsSupplierRepr    bool
	SupplierOwnerID   *string // solo delegados; owners y consumidores en nil
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Role resuelve los flags a una única variante. Combinaciones contradictorias
// devuelven domain.ErrIntegrity.
func (u *User) Role() (Role, error) {
	n := 0
	for _, f := range []bool{u.IsConsumer, u.IsSupplierOwner, u.IsSupplierManager, u.IsSupplierRepr} {
		if f {
			n++
		}
	}
	if n != 1 {
		return "", fmt.Errorf("usuario %s con %d roles activos: %w", u.ID, n, domain.ErrIntegrity)
	}
	switch {
	case u.IsConsumer:
		if u.SupplierOwnerID != nil {
			return "", fmt.Errorf("consumidor %s con supplier_owner_id: %w", u.ID, domain.ErrIntegrity)
		}
		return RoleConsumer, nil
	case u.IsSupplierOwner:
		if u.SupplierOwnerID != nil {
			return "", fmt.Errorf("owner %s con supplier_owner_id: %w", u.ID, domain.ErrIntegrity)
		}
		return RoleOwner, nil
	case u.IsSupplierManager:
		return RoleManager, nil
	default:
		return RoleRepresentative, nil
	}
}

// IsSupplierSide informa si el usuario pertenece al equipo de un proveedor.
func (u *User) IsSupplierSide() bool {
	return u.IsSupplierOwner || u.IsSupplierManager || u.IsSupplierRepr
}

// EffectiveSupplierID devuelve el owner al que se acota una operación de escritura
// (catálogo, aprobación de links). Representantes y consumidores no tienen id efectivo
// de escritura: ErrForbidden. Un manager sin owner es ErrIntegrity.
func (u *User) EffectiveSupplierID() (string, error) {
	role, err := u.Role()
	if err != nil {
		return "", err
	}
	switch role {
	case RoleOwner:
		return u.ID, nil
	case RoleManager:
		return u.ownerID()
	default:
		return "", domain.ErrForbidden
	}
}

// TeamSupplierID como EffectiveSupplierID pero incluye representantes (lectura de
// catálogo del equipo, chats y mensajes).
func (u *User) TeamSupplierID() (string, error) {
	role, err := u.Role()
	if err != nil {
		return "", err
	}
	switch role {
	case RoleOwner:
		return u.ID, nil
	case RoleManager, RoleRepresentative:
		return u.ownerID()
	default:
		return "", domain.ErrForbidden
	}
}

func (u *User) ownerID() (string, error) {
	if u.SupplierOwnerID == nil || *u.SupplierOwnerID == "" {
		return "", fmt.Errorf("delegado %s sin supplier_owner_id: %w", u.ID, domain.ErrIntegrity)
	}
	return *u.SupplierOwnerID, nil
}
