package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// SheetGenerator genera la ficha PDF del catálogo de un proveedor.
type SheetGenerator interface {
	GenerateCatalogPDF(ctx context.Context, supplier *entity.User, products []*entity.Product) ([]byte, error)
}

// UseCase control de acceso y CRUD del catálogo de productos.
// Lectura: equipo del proveedor o consumidores con link aprobado.
// Escritura: owner o manager del proveedor dueño del producto.
type UseCase struct {
	products repository.ProductRepository
	links    repository.LinkRepository
	users    repository.UserRepository
	sheets   SheetGenerator
}

// NewUseCase construye el caso de uso. sheets puede ser nil (CatalogSheet deshabilitado).
func NewUseCase(
	products repository.ProductRepository,
	links repository.LinkRepository,
	users repository.UserRepository,
	sheets SheetGenerator,
) *UseCase {
	return &UseCase{products: products, links: links, users: users, sheets: sheets}
}

// AuthorizeRead permite leer el catálogo de supplierID al equipo de ese proveedor
// (owner, manager, representante) o a un consumidor con link aprobado hacia él.
func (uc *UseCase) AuthorizeRead(ctx context.Context, actor *entity.User, supplierID string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	role, err := actor.Role()
	if err != nil {
		return err
	}
	if access.Can(role, access.ActionReadTeamCatalog) {
		team, err := actor.TeamSupplierID()
		if err != nil {
			return err
		}
		if team != supplierID {
			return domain.ErrForbidden
		}
		return nil
	}
	l, err := uc.links.Get(ctx, supplierID, actor.ID)
	if err != nil {
		return err
	}
	if l == nil || !l.IsApproved {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeWrite permite modificar product solo a owner/manager de su proveedor.
func (uc *UseCase) AuthorizeWrite(actor *entity.User, product *entity.Product) error {
	supplierID, err := writerSupplierID(actor)
	if err != nil {
		return err
	}
	if product.SupplierID != supplierID {
		return domain.ErrForbidden
	}
	return nil
}

// Create crea un producto. SupplierID se fuerza al proveedor efectivo del actor,
// ignorando cualquier valor enviado por el cliente.
func (uc *UseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	supplierID, err := writerSupplierID(actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SupplierID:  supplierID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto si el actor puede leer el catálogo de su proveedor.
func (uc *UseCase) GetByID(ctx context.Context, actor *entity.User, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.AuthorizeRead(ctx, actor, product.SupplierID); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica los campos no nil. Un patch vacío es ErrInvalidInput, una vez verificados
// la existencia del producto y el permiso de escritura.
func (uc *UseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.AuthorizeWrite(actor, product); err != nil {
		return nil, err
	}
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Quantity = *in.Quantity
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del proveedor del actor.
func (uc *UseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	product, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.AuthorizeWrite(actor, product); err != nil {
		return err
	}
	ok, err := uc.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// ListForSupplier autoriza la lectura del catálogo de supplierID y luego aplica los filtros.
// Un filtro supplier_id distinto del de la ruta no coincide con nada.
func (uc *UseCase) ListForSupplier(ctx context.Context, actor *entity.User, supplierID string, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	if err := uc.AuthorizeRead(ctx, actor, supplierID); err != nil {
		return nil, err
	}
	if q.SupplierID != nil && *q.SupplierID != supplierID {
		return []dto.ProductResponse{}, nil
	}
	return uc.list(ctx, repository.ProductFilter{ID: q.ID, Name: q.Name, SupplierID: &supplierID})
}

// List aplica los filtros dentro del alcance visible del actor: el catálogo de su
// equipo, o el de todos los proveedores con los que tiene link aprobado.
func (uc *UseCase) List(ctx context.Context, actor *entity.User, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	if q.SupplierID != nil {
		return uc.ListForSupplier(ctx, actor, *q.SupplierID, q)
	}
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	role, err := actor.Role()
	if err != nil {
		return nil, err
	}
	filter := repository.ProductFilter{ID: q.ID, Name: q.Name}
	if access.Can(role, access.ActionReadTeamCatalog) {
		team, err := actor.TeamSupplierID()
		if err != nil {
			return nil, err
		}
		filter.SupplierID = &team
		return uc.list(ctx, filter)
	}
	approved := true
	links, err := uc.links.List(ctx, repository.LinkFilter{ConsumerID: &actor.ID, IsApproved: &approved})
	if err != nil {
		return nil, err
	}
	filter.SupplierIDs = make([]string, 0, len(links))
	for _, l := range links {
		filter.SupplierIDs = append(filter.SupplierIDs, l.SupplierID)
	}
	return uc.list(ctx, filter)
}

// FindOne devuelve el único producto visible para el actor que cumple los filtros.
// Sin filtros: ErrInvalidInput. Sin coincidencias: ErrNotFound. Varias: ErrConflict.
func (uc *UseCase) FindOne(ctx context.Context, actor *entity.User, q dto.ProductQuery) (*dto.ProductResponse, error) {
	if q.ID == nil && q.Name == nil && q.SupplierID == nil {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.List(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return &list[0], nil
	default:
		return nil, domain.ErrConflict
	}
}

// CatalogSheet genera el PDF del catálogo de supplierID para un lector autorizado.
func (uc *UseCase) CatalogSheet(ctx context.Context, actor *entity.User, supplierID string) ([]byte, error) {
	if uc.sheets == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.AuthorizeRead(ctx, actor, supplierID); err != nil {
		return nil, err
	}
	supplier, err := uc.users.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{SupplierID: &supplierID})
	if err != nil {
		return nil, err
	}
	return uc.sheets.GenerateCatalogPDF(ctx, supplier, products)
}

func (uc *UseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *UseCase) list(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// writerSupplierID exige write_product y resuelve el proveedor efectivo.
func writerSupplierID(actor *entity.User) (string, error) {
	if _, err := access.Require(actor, access.ActionWriteProduct); err != nil {
		return "", err
	}
	return actor.EffectiveSupplierID()
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SupplierID:  p.SupplierID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
