package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"0":         "0,00",
		"25000":     "25.000,00",
		"1234567.5": "1.234.567,50",
		"999.999":   "1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPrice(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateCatalogPDF(t *testing.T) {
	desc := "Caja x 12"
	supplier := &entity.User{ID: "s1", Email: "ventas@proveedor.co", FirstName: "Distribuidora", LastName: "Andina"}
	products := []*entity.Product{
		{ID: "p1", SupplierID: "s1", Name: "Café", Description: &desc, Price: decimal.NewFromInt(32000), Quantity: 40},
		{ID: "p2", SupplierID: "s1", Name: "Panela", Price: decimal.RequireFromString("4500.5"), Quantity: 0},
	}

	out, err := NewCatalogSheetGenerator().GenerateCatalogPDF(context.Background(), supplier, products)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateCatalogPDF_SinProductos(t *testing.T) {
	supplier := &entity.User{ID: "s1", Email: "ventas@proveedor.co"}
	out, err := NewCatalogSheetGenerator().GenerateCatalogPDF(context.Background(), supplier, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateCatalogPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCatalogSheetGenerator().GenerateCatalogPDF(ctx, &entity.User{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
