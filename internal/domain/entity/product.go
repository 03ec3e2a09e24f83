package entity

// Product representa un producto del servicio de inventario (solo lectura para este motor).
// LocationID, GroupID y StockUnitID pueden ser cero si el producto no los tiene asignados.
type Product struct {
	ID          ID
	Name        string
	LocationID  ID // ubicación por defecto
	GroupID     ID // categoría (product_group)
	StockUnitID ID // unidad de stock (qu_id_stock)
}
