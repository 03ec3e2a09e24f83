package entity

import "github.com/shopspring/decimal"

// StockEntry representa una línea de stock: un producto con su cantidad disponible.
// Se reconstruye completa en cada ciclo de refresco; nunca se modifica en sitio.
type StockEntry struct {
	ProductID  ID
	Product    Product
	Amount     decimal.Decimal
	UnitID     ID
	LocationID ID
	GroupID    ID
}

// NewStockEntry construye la línea a partir del producto embebido en la respuesta de stock.
func NewStockEntry(p Product, amount decimal.Decimal) StockEntry {
	return StockEntry{
		ProductID:  p.ID,
		Product:    p,
		Amount:     amount,
		UnitID:     p.StockUnitID,
		LocationID: p.LocationID,
		GroupID:    p.GroupID,
	}
}
