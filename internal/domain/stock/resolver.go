package stock

import "github.com/jhoicas/grocy-stock/internal/domain/entity"

// UnknownLocation nombre mostrado cuando la ubicación de una línea no se resuelve.
const UnknownLocation = "Unknown"

// References colecciones auxiliares obtenidas de forma independiente al stock.
// Cualquiera puede venir vacía si su lectura falló.
type References struct {
	Locations []entity.Location
	Groups    []entity.ProductGroup
	Units     []entity.QuantityUnit
}

// ResolveOptions opciones del resolvedor.
type ResolveOptions struct {
	ShowLocationName bool
}

// Resolve cruza cada línea de stock con las colecciones de referencia.
// No descarta ninguna línea: la ubicación no resuelta se muestra como UnknownLocation
// y la categoría/ubicación no resuelta queda en nil para que Aggregate decida.
func Resolve(entries []entity.StockEntry, refs References, opts ResolveOptions) []entity.ResolvedEntry {
	locations := indexByID(refs.Locations, func(l entity.Location) entity.ID { return l.ID })
	groups := indexByID(refs.Groups, func(g entity.ProductGroup) entity.ID { return g.ID })
	units := indexByID(refs.Units, func(u entity.QuantityUnit) entity.ID { return u.ID })

	out := make([]entity.ResolvedEntry, 0, len(entries))
	for _, e := range entries {
		r := entity.ResolvedEntry{
			Entry:    e,
			Unit:     units[e.UnitID],
			Group:    groups[e.GroupID],
			Location: locations[e.LocationID],
		}
		if opts.ShowLocationName {
			r.LocationName = UnknownLocation
			if r.Location != nil {
				r.LocationName = r.Location.Name
			}
		}
		r.DisplayAmount = FormatAmount(e.Amount, r.Unit)
		out = append(out, r)
	}
	return out
}

// indexByID construye id → registro. Con IDs repetidos gana el primero.
func indexByID[T any](items []T, key func(T) entity.ID) map[entity.ID]*T {
	idx := make(map[entity.ID]*T, len(items))
	for i := range items {
		id := key(items[i])
		if _, ok := idx[id]; ok {
			continue
		}
		idx[id] = &items[i]
	}
	return idx
}
