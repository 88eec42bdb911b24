package inventory

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-planilhas/internal/domain"
	"github.com/jhoicas/inventario-planilhas/internal/domain/entity"
)

// MovementInput datos de un movimiento tal como llegan del formulario: referencias por nombre.
type MovementInput struct {
	ProductName     string
	ResponsibleName string
	UnitName        string
	Kind            entity.MovementKind
	Quantity        decimal.Decimal
	Supplier        string
	Reason          string
	Date            time.Time
}

// ApplyMovement resuelve las referencias por nombre, ajusta el stock del producto (sin piso en cero)
// y agrega la fila al libro. Devuelve un conjunto nuevo; t no se modifica ni se persiste.
func ApplyMovement(t *entity.Tables, in MovementInput) (*entity.Tables, error) {
	if !in.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	pIdx := -1
	for i, p := range t.Products {
		if p.Name == in.ProductName {
			pIdx = i
			break
		}
	}
	if pIdx < 0 {
		return nil, &domain.ReferenceError{Kind: "producto", Name: in.ProductName}
	}
	respID, ok := responsibleIDByName(t.Responsibles, in.ResponsibleName)
	if !ok {
		return nil, &domain.ReferenceError{Kind: "responsable", Name: in.ResponsibleName}
	}
	unitID, ok := unitIDByName(t.Units, in.UnitName)
	if !ok {
		return nil, &domain.ReferenceError{Kind: "unidad", Name: in.UnitName}
	}

	out := t.Clone()
	mov := entity.Movement{
		Product:       entity.KnownProduct(out.Products[pIdx].ID),
		ResponsibleID: respID,
		UnitID:        unitID,
		Kind:          in.Kind,
		Quantity:      in.Quantity,
		Supplier:      in.Supplier,
		Reason:        in.Reason,
		Date:          in.Date,
	}
	out.Products[pIdx].StockQty = out.Products[pIdx].StockQty.Add(mov.Delta())
	out.Movements = append(out.Movements, mov)
	return out, nil
}

// DeleteProduct elimina el producto y apunta sus movimientos al centinela UNKNOWN.
// Los movimientos nunca se borran; devuelve cuántos fueron reapuntados.
func DeleteProduct(t *entity.Tables, productID int) (*entity.Tables, int, error) {
	idx := productIndex(t.Products, productID)
	if idx < 0 {
		return nil, 0, domain.ErrProductNotFound
	}
	out := t.Clone()
	out.Products = append(out.Products[:idx], out.Products[idx+1:]...)
	repointed := 0
	for i := range out.Movements {
		if out.Movements[i].Product.Points(productID) {
			out.Movements[i].Product = entity.UnknownProduct()
			repointed++
		}
	}
	return out, repointed, nil
}

// AddProduct agrega un producto al catálogo. Verifica nombre (según policy) e id únicos.
func AddProduct(t *entity.Tables, p entity.Product, policy domain.NamePolicy) (*entity.Tables, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	for _, existing := range t.Products {
		if policy.Same(existing.Name, p.Name) {
			return nil, domain.ErrDuplicateName
		}
	}
	if productIndex(t.Products, p.ID) >= 0 {
		return nil, domain.ErrDuplicateID
	}
	out := t.Clone()
	out.Products = append(out.Products, p)
	return out, nil
}

// ProductChanges valores nuevos para EditProduct (reemplazo completo, como el formulario de edición).
type ProductChanges struct {
	Name     string
	StockQty decimal.Decimal
	Unit     string
	Category string
}

// EditProduct actualiza un producto existente. El nombre propio queda exento del chequeo de duplicados.
// Los movimientos no se tocan: los reportes resuelven el nombre vigente al leer.
func EditProduct(t *entity.Tables, id int, c ProductChanges, policy domain.NamePolicy) (*entity.Tables, error) {
	idx := productIndex(t.Products, id)
	if idx < 0 {
		return nil, domain.ErrProductNotFound
	}
	updated := entity.Product{ID: id, Name: c.Name, StockQty: c.StockQty, Unit: c.Unit, Category: c.Category}
	// un stock negativo dejado por salidas se conserva si no se cambia
	check := updated
	if c.StockQty.Equal(t.Products[idx].StockQty) {
		check.StockQty = decimal.Zero
	}
	if err := validateProduct(check); err != nil {
		return nil, err
	}
	for i, existing := range t.Products {
		if i != idx && policy.Same(existing.Name, c.Name) {
			return nil, domain.ErrDuplicateName
		}
	}
	out := t.Clone()
	out.Products[idx] = updated
	return out, nil
}

// CountMovements cuántos movimientos referencian al producto.
func CountMovements(movements []entity.Movement, productID int) int {
	n := 0
	for _, m := range movements {
		if m.Product.Points(productID) {
			n++
		}
	}
	return n
}

// ProjectedStock recalcula el stock desde el libro: inicial + entradas - salidas del producto.
func ProjectedStock(initial decimal.Decimal, movements []entity.Movement, productID int) decimal.Decimal {
	total := initial
	for _, m := range movements {
		if m.Product.Points(productID) {
			total = total.Add(m.Delta())
		}
	}
	return total
}

// FindProduct busca un producto por id.
func FindProduct(products []entity.Product, id int) (entity.Product, bool) {
	if idx := productIndex(products, id); idx >= 0 {
		return products[idx], true
	}
	return entity.Product{}, false
}

func validateProduct(p entity.Product) error {
	if strings.TrimSpace(p.Name) == "" || p.ID <= 0 {
		return domain.ErrInvalidInput
	}
	if p.StockQty.IsNegative() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func productIndex(products []entity.Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func responsibleIDByName(list []entity.ResponsibleParty, name string) (int, bool) {
	for _, r := range list {
		if r.Name == name {
			return r.ID, true
		}
	}
	return 0, false
}

func unitIDByName(list []entity.Unit, name string) (int, bool) {
	for _, u := range list {
		if u.Name == name {
			return u.ID, true
		}
	}
	return 0, false
}
