package stock_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// fakeGateway servicio de inventario en memoria. Consume/AddStock modifican su stock
// como lo haría el servidor, de modo que los tests verifican que la vista sale de un
// refresco real y no de un cálculo local.
type fakeGateway struct {
	mu        sync.Mutex
	stock     []entity.StockEntry
	locations []entity.Location
	groups    []entity.ProductGroup
	units     []entity.QuantityUnit

	rejectMessage string // si no es vacío, las escrituras se rechazan
	transportErr  bool

	locationFilter entity.IDSet
	groupFilter    entity.IDSet
	stockFetches   int
	writes         []string

	// beforeStock se ejecuta al inicio de FetchStock (para orquestar carreras).
	beforeStock func()
}

func (f *fakeGateway) FetchStock(ctx context.Context) []entity.StockEntry {
	if f.beforeStock != nil {
		f.beforeStock()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockFetches++
	out := make([]entity.StockEntry, len(f.stock))
	copy(out, f.stock)
	return out
}

func (f *fakeGateway) FetchLocations(ctx context.Context, filter entity.IDSet) []entity.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locationFilter = filter
	return filterByID(f.locations, filter, func(l entity.Location) entity.ID { return l.ID })
}

func (f *fakeGateway) FetchProductGroups(ctx context.Context, filter entity.IDSet) []entity.ProductGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groupFilter = filter
	return filterByID(f.groups, filter, func(g entity.ProductGroup) entity.ID { return g.ID })
}

func (f *fakeGateway) FetchQuantityUnits(ctx context.Context) []entity.QuantityUnit {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.QuantityUnit(nil), f.units...)
}

func (f *fakeGateway) Consume(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error) {
	return f.write("consume", productID, amount.Neg())
}

func (f *fakeGateway) AddStock(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error) {
	return f.write("add", productID, amount)
}

func (f *fakeGateway) write(kind string, productID entity.ID, delta decimal.Decimal) (entity.WriteOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, kind+":"+productID.String()+":"+delta.Abs().String())
	if f.transportErr {
		return entity.WriteOutcome{}, domain.ErrConnectivity
	}
	if f.rejectMessage != "" {
		return entity.WriteOutcome{Message: f.rejectMessage}, nil
	}
	for i := range f.stock {
		if f.stock[i].ProductID == productID {
			e := f.stock[i]
			e.Amount = e.Amount.Add(delta)
			f.stock[i] = e
		}
	}
	return entity.WriteOutcome{Applied: true}, nil
}

func filterByID[T any](items []T, filter entity.IDSet, key func(T) entity.ID) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if len(filter) == 0 || filter.Contains(key(it)) {
			out = append(out, it)
		}
	}
	return out
}

func product(id entity.ID, name string, location, group, unit entity.ID) entity.Product {
	return entity.Product{ID: id, Name: name, LocationID: location, GroupID: group, StockUnitID: unit}
}

// milkGateway escenario de referencia: un litro-producto en la nevera.
func milkGateway() *fakeGateway {
	return &fakeGateway{
		stock: []entity.StockEntry{
			entity.NewStockEntry(product(1, "Milk", 10, 0, 5), decimal.NewFromInt(2)),
		},
		locations: []entity.Location{{ID: 10, Name: "Fridge"}},
		units:     []entity.QuantityUnit{{ID: 5, Name: "liter", NamePlural: "liters"}},
	}
}
