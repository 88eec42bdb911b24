package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-planilhas/internal/application/dto"
	"github.com/jhoicas/inventario-planilhas/internal/application/ports"
	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
	"github.com/jhoicas/inventario-planilhas/internal/domain/inventory"
)

// ProductUseCase casos de uso del catálogo. El stock solo cambia por movimientos o por edición explícita.
type ProductUseCase struct {
	store  ports.TableStore
	policy domain.NamePolicy
	log    zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store ports.TableStore, policy domain.NamePolicy, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{store: store, policy: policy, log: log.With().Str("component", "catalog").Logger()}
}

// List lista productos filtrando por subcadena del nombre (sin distinguir mayúsculas) y ordenando.
// Sin criterio de orden se conserva el orden de la planilla.
func (uc *ProductUseCase) List(ctx context.Context, p access.Principal, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if err := p.Can(access.ActionViewCatalog); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableProducts)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	items := make([]entity.Product, 0, len(t.Products))
	for _, prod := range t.Products {
		if search == "" || strings.Contains(strings.ToLower(prod.Name), search) {
			items = append(items, prod)
		}
	}
	sortProducts(items, q.Sort)

	page := q.PageRequest
	page.DefaultPage()
	from, to := page.Slice(len(items))
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, to-from),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}
	for _, prod := range items[from:to] {
		out.Items = append(out.Items, toProductResponse(prod))
	}
	return out, nil
}

// GetByID devuelve el producto con la cantidad de movimientos que lo referencian.
func (uc *ProductUseCase) GetByID(ctx context.Context, p access.Principal, id int) (*dto.ProductDetailResponse, error) {
	if err := p.Can(access.ActionViewCatalog); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableProducts, entity.TableMovements)
	if err != nil {
		return nil, err
	}
	prod, ok := inventory.FindProduct(t.Products, id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &dto.ProductDetailResponse{
		ProductResponse: toProductResponse(prod),
		MovementCount:   inventory.CountMovements(t.Movements, id),
	}, nil
}

// NextID próximo id libre de productos, responsables o unidades.
func (uc *ProductUseCase) NextID(ctx context.Context, p access.Principal, table entity.TableName) (*dto.NextIDResponse, error) {
	action := access.ActionManageRegistry
	if table == entity.TableProducts {
		action = access.ActionEditCatalog
	}
	if err := p.Can(action); err != nil {
		return nil, err
	}
	if _, err := inventory.NextIDFor(entity.NewTables(), table); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, table)
	if err != nil {
		return nil, err
	}
	id, err := inventory.NextIDFor(t, table)
	if err != nil {
		return nil, err
	}
	return &dto.NextIDResponse{Table: string(table), NextID: id}, nil
}

// Create agrega un producto. Sin id se asigna el próximo libre.
func (uc *ProductUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := p.Can(access.ActionEditCatalog); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableProducts)
	if err != nil {
		return nil, err
	}
	prod := entity.Product{
		Name:     strings.TrimSpace(in.Name),
		StockQty: in.StockQty,
		Unit:     strings.TrimSpace(in.Unit),
		Category: strings.TrimSpace(in.Category),
	}
	if in.ID != nil {
		prod.ID = *in.ID
	} else {
		prod.ID = inventory.NextID(productIDs(t.Products))
	}
	updated, err := inventory.AddProduct(t, prod, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableProducts); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("product_id", prod.ID).Str("name", prod.Name).Msg("producto agregado")
	resp := toProductResponse(prod)
	return &resp, nil
}

// Update reemplaza los campos editables del producto.
func (uc *ProductUseCase) Update(ctx context.Context, p access.Principal, id int, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := p.Can(access.ActionEditCatalog); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableProducts)
	if err != nil {
		return nil, err
	}
	changes := inventory.ProductChanges{
		Name:     strings.TrimSpace(in.Name),
		StockQty: in.StockQty,
		Unit:     strings.TrimSpace(in.Unit),
		Category: strings.TrimSpace(in.Category),
	}
	updated, err := inventory.EditProduct(t, id, changes, uc.policy)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableProducts); err != nil {
		return nil, err
	}
	prod, _ := inventory.FindProduct(updated.Products, id)
	uc.log.Info().Str("user", p.Username).Int("product_id", id).Msg("producto actualizado")
	resp := toProductResponse(prod)
	return &resp, nil
}

// Delete elimina el producto; sus movimientos pasan a apuntar al centinela.
func (uc *ProductUseCase) Delete(ctx context.Context, p access.Principal, id int) (*dto.DeleteProductResponse, error) {
	if err := p.Can(access.ActionEditCatalog); err != nil {
		return nil, err
	}
	t, err := uc.store.Tables(ctx, entity.TableProducts, entity.TableMovements)
	if err != nil {
		return nil, err
	}
	updated, repointed, err := inventory.DeleteProduct(t, id)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Commit(ctx, updated, entity.TableProducts, entity.TableMovements); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user", p.Username).Int("product_id", id).Int("repointed", repointed).Msg("producto eliminado")
	return &dto.DeleteProductResponse{ID: id, RepointedMovements: repointed}, nil
}

func sortProducts(items []entity.Product, criterion string) {
	switch criterion {
	case dto.SortNameAsc, dto.SortNameDesc:
		// el collator no es seguro para uso concurrente: uno por llamada
		c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
		desc := criterion == dto.SortNameDesc
		sort.SliceStable(items, func(i, j int) bool {
			cmp := c.CompareString(items[i].Name, items[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case dto.SortQtyAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].StockQty.LessThan(items[j].StockQty) })
	case dto.SortQtyDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].StockQty.GreaterThan(items[j].StockQty) })
	}
}

func productIDs(products []entity.Product) []int {
	ids := make([]int, len(products))
	for i, prod := range products {
		ids[i] = prod.ID
	}
	return ids
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		StockQty: p.StockQty,
		Unit:     p.Unit,
		Category: p.Category,
	}
}
