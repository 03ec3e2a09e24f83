package stock

import "github.com/jhoicas/grocy-stock/internal/application/dto"

// ToViewResponse convierte una vista confirmada en el DTO de respuesta.
func ToViewResponse(s Snapshot) dto.StockViewResponse {
	groups := make([]dto.StockGroupDTO, 0, len(s.View.Groups))
	for _, g := range s.View.Groups {
		items := make([]dto.StockItemDTO, 0, len(g.Entries))
		for _, e := range g.Entries {
			items = append(items, dto.StockItemDTO{
				ProductID:     int64(e.Entry.ProductID),
				Name:          e.Name(),
				LocationName:  e.LocationName,
				DisplayAmount: e.DisplayAmount,
				Amount:        e.Entry.Amount,
			})
		}
		groups = append(groups, dto.StockGroupDTO{Label: g.Label, Count: len(items), Items: items})
	}
	return dto.StockViewResponse{
		RefreshID:   s.ID.String(),
		Generation:  s.Generation,
		Strategy:    s.Strategy.String(),
		RefreshedAt: s.RefreshedAt,
		Total:       s.View.Len(),
		Groups:      groups,
	}
}
