package stock

import (
	"fmt"

	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// AllItemsLabel etiqueta del grupo único cuando no hay estrategia de agrupación.
const AllItemsLabel = "All items"

// Strategy estrategia de agrupación activa.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyByGroup
	StrategyByLocation
)

func (s Strategy) String() string {
	switch s {
	case StrategyByGroup:
		return "byCategory"
	case StrategyByLocation:
		return "byLocation"
	default:
		return "none"
	}
}

// GroupingMode modo configurado; ModeAuto deduce la estrategia de los filtros.
type GroupingMode string

const (
	ModeAuto       GroupingMode = ""
	ModeNone       GroupingMode = "none"
	ModeByCategory GroupingMode = "byCategory"
	ModeByLocation GroupingMode = "byLocation"
)

// ParseGroupingMode valida el modo leído de configuración.
func ParseGroupingMode(s string) (GroupingMode, error) {
	switch m := GroupingMode(s); m {
	case ModeAuto, ModeNone, ModeByCategory, ModeByLocation:
		return m, nil
	}
	return ModeAuto, fmt.Errorf("%w: modo de agrupación %q", domain.ErrInvalidInput, s)
}

// SelectStrategy resuelve la estrategia activa. Un modo explícito manda; en modo
// automático un filtro de categorías gana sobre uno de ubicaciones si ambos existen.
func SelectStrategy(mode GroupingMode, categoryFilter, locationFilter entity.IDSet) Strategy {
	switch mode {
	case ModeNone:
		return StrategyNone
	case ModeByCategory:
		return StrategyByGroup
	case ModeByLocation:
		return StrategyByLocation
	}
	if len(categoryFilter) > 0 {
		return StrategyByGroup
	}
	if len(locationFilter) > 0 {
		return StrategyByLocation
	}
	return StrategyNone
}

// Aggregate agrupa las líneas resueltas en un único recorrido lineal.
// Con StrategyByGroup/StrategyByLocation se descartan las líneas cuya referencia
// no se resolvió; no existe grupo "sin categoría".
func Aggregate(resolved []entity.ResolvedEntry, s Strategy) entity.GroupedView {
	if s == StrategyNone {
		entries := make([]entity.ResolvedEntry, len(resolved))
		copy(entries, resolved)
		return entity.GroupedView{Groups: []entity.ViewGroup{{Label: AllItemsLabel, Entries: entries}}}
	}

	var view entity.GroupedView
	pos := make(map[string]int)
	for _, r := range resolved {
		label, ok := groupLabel(r, s)
		if !ok {
			continue
		}
		i, seen := pos[label]
		if !seen {
			i = len(view.Groups)
			pos[label] = i
			view.Groups = append(view.Groups, entity.ViewGroup{Label: label})
		}
		view.Groups[i].Entries = append(view.Groups[i].Entries, r)
	}
	return view
}

func groupLabel(r entity.ResolvedEntry, s Strategy) (string, bool) {
	switch s {
	case StrategyByGroup:
		if r.Group == nil {
			return "", false
		}
		return r.Group.Name, true
	case StrategyByLocation:
		if r.Location == nil {
			return "", false
		}
		return r.Location.Name, true
	}
	return "", false
}
