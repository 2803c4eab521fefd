package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/catalog"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
	"github.com/jhoicas/Marketplace-api/pkg/validator"
)

// ProductHandler maneja el catálogo de productos (protegido).
type ProductHandler struct {
	uc  *catalog.UseCase
	v   *validator.Validator
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *catalog.UseCase, v *validator.Validator, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, v: v, log: log}
}

// Create godoc
// @Summary      Crear producto (owner o manager; supplier_id sale del usuario)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products/add [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/update/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/delete/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Productos visibles para el usuario (filtros por igualdad)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id           query  string  false  "ID"
// @Param        name         query  string  false  "Nombre exacto"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Success      200  {array}   dto.ProductResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/ [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetActor(c), productQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// ListForSupplier godoc
// @Summary      Catálogo de un proveedor (equipo o consumidor vinculado)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  path   string  true   "Proveedor"
// @Param        name         query  string  false  "Nombre exacto"
// @Success      200  {array}   dto.ProductResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/products/supplier/{supplier_id}/ [get]
func (h *ProductHandler) ListForSupplier(c *fiber.Ctx) error {
	list, err := h.uc.ListForSupplier(c.UserContext(), GetActor(c), c.Params("supplier_id"), productQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// ByFilter godoc
// @Summary      Un producto por filtros (id, name, supplier_id) dentro del catálogo visible
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id           query  string  false  "ID"
// @Param        name         query  string  false  "Nombre exacto"
// @Param        supplier_id  query  string  false  "Proveedor"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/by_filter [get]
func (h *ProductHandler) ByFilter(c *fiber.Ctx) error {
	out, err := h.uc.FindOne(c.UserContext(), GetActor(c), productQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CatalogSheet godoc
// @Summary      Ficha PDF del catálogo de un proveedor
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        supplier_id  path  string  true  "Proveedor"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/supplier/{supplier_id}/catalog.pdf [get]
func (h *ProductHandler) CatalogSheet(c *fiber.Ctx) error {
	supplierID := c.Params("supplier_id")
	out, err := h.uc.CatalogSheet(c.UserContext(), GetActor(c), supplierID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="catalogo-%s.pdf"`, supplierID))
	return c.Send(out)
}

func productQuery(c *fiber.Ctx) dto.ProductQuery {
	opt := func(key string) *string {
		if v := queryValue(c, key); v != "" {
			return &v
		}
		return nil
	}
	return dto.ProductQuery{ID: opt("id"), Name: opt("name"), SupplierID: opt("supplier_id")}
}
