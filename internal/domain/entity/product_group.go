package entity

// ProductGroup representa una categoría de productos.
type ProductGroup struct {
	ID   ID
	Name string
}
