package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,max=5"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

func TestStruct_Valido(t *testing.T) {
	v := New()
	assert.Nil(t, v.Struct(sample{Email: "a@b.co", Password: "123456", FirstName: "Ana"}))
}

func TestStruct_MensajesPorCampoJSON(t *testing.T) {
	v := New()
	fields := v.Struct(sample{Email: "no-email", Password: "123", Quantity: -1})

	assert.Equal(t, "Email debe ser un email válido", fields["email"])
	assert.Equal(t, "Password debe tener al menos 6 caracteres", fields["password"])
	assert.Equal(t, "First Name es requerido", fields["first_name"])
	assert.Equal(t, "Quantity debe ser mayor o igual a 0", fields["quantity"])
}

func TestStruct_MaxString(t *testing.T) {
	fields := New().Struct(sample{Email: "a@b.co", Password: "123456", FirstName: "Alejandra"})
	assert.Equal(t, "First Name debe tener como máximo 5 caracteres", fields["first_name"])
}

func TestPrettify(t *testing.T) {
	assert.Equal(t, "Supplier Id", prettify("supplier_id"))
	assert.Equal(t, "Content", prettify("content"))
}
