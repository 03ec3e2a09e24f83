package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// InventoryGateway define el puerto de salida hacia el servicio de inventario remoto.
// Cualquier adaptador (Grocy HTTP, mock) debe implementar esta interfaz.
//
// Las lecturas nunca devuelven error: un fallo de transporte o de parseo se degrada
// a una colección vacía para que el resto de la vista pueda mostrarse.
type InventoryGateway interface {
	FetchStock(ctx context.Context) []entity.StockEntry
	// FetchLocations devuelve las ubicaciones; si filter no está vacío solo las incluidas.
	FetchLocations(ctx context.Context, filter entity.IDSet) []entity.Location
	// FetchProductGroups devuelve las categorías; si filter no está vacío solo las incluidas.
	FetchProductGroups(ctx context.Context, filter entity.IDSet) []entity.ProductGroup
	FetchQuantityUnits(ctx context.Context) []entity.QuantityUnit

	// Consume y AddStock devuelven error solo ante fallo de transporte
	// (envuelve domain.ErrConnectivity). Un rechazo del servidor llega en WriteOutcome.
	Consume(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error)
	AddStock(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error)
}
