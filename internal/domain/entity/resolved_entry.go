package entity

// ResolvedEntry línea de stock enriquecida con sus referencias.
// Group y Location son nil cuando la referencia no existe en la colección obtenida;
// el motor de agregación usa ese nil para decidir la exclusión.
type ResolvedEntry struct {
	Entry         StockEntry
	LocationName  string // "Unknown" si no se resuelve; vacío si los nombres están desactivados
	DisplayAmount string
	Unit          *QuantityUnit
	Group         *ProductGroup
	Location      *Location
}

// Name nombre del producto.
func (e ResolvedEntry) Name() string { return e.Entry.Product.Name }

// Clone copia la línea sin compartir las referencias apuntadas.
func (e ResolvedEntry) Clone() ResolvedEntry {
	e.Unit = clonePtr(e.Unit)
	e.Group = clonePtr(e.Group)
	e.Location = clonePtr(e.Location)
	return e
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
