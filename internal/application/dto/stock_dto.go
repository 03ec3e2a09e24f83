package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockViewResponse vista agrupada del stock para GET /api/stock.
type StockViewResponse struct {
	RefreshID   string          `json:"refresh_id"`
	Generation  uint64          `json:"generation"`
	Strategy    string          `json:"strategy"`
	RefreshedAt time.Time       `json:"refreshed_at"`
	Total       int             `json:"total"`
	Groups      []StockGroupDTO `json:"groups"`
}

// StockGroupDTO un grupo de la vista.
type StockGroupDTO struct {
	Label string         `json:"label"`
	Count int            `json:"count"`
	Items []StockItemDTO `json:"items"`
}

// StockItemDTO una línea de stock ya formateada.
type StockItemDTO struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	LocationName  string          `json:"location_name,omitempty"`
	DisplayAmount string          `json:"display_amount"`
	Amount        decimal.Decimal `json:"amount"`
}
