package grocy

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// ── Estructuras del protocolo REST de Grocy ───────────────────────────────────

type stockItemWire struct {
	ProductID entity.ID       `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"` // número o número entre comillas; null → 0
	Product   *productWire    `json:"product"`
}

type productWire struct {
	ID             entity.ID `json:"id"`
	Name           string    `json:"name"`
	LocationID     entity.ID `json:"location_id"`
	ProductGroupID entity.ID `json:"product_group_id"`
	QuIDStock      entity.ID `json:"qu_id_stock"`
}

type objectWire struct {
	ID         entity.ID `json:"id"`
	Name       string    `json:"name"`
	NamePlural string    `json:"name_plural"`
}

type consumeRequest struct {
	Amount          json.Number `json:"amount"`
	TransactionType string      `json:"transaction_type"`
	Spoiled         bool        `json:"spoiled"`
}

type addRequest struct {
	Amount          json.Number `json:"amount"`
	TransactionType string      `json:"transaction_type"`
	Price           json.Number `json:"price"`
	BestBeforeDate  string      `json:"best_before_date"`
}

type errorResponse struct {
	ErrorMessage string `json:"error_message"`
}

func (w stockItemWire) toEntity() entity.StockEntry {
	p := entity.Product{ID: w.ProductID}
	if w.Product != nil {
		p = entity.Product{
			ID:          w.Product.ID,
			Name:        w.Product.Name,
			LocationID:  w.Product.LocationID,
			GroupID:     w.Product.ProductGroupID,
			StockUnitID: w.Product.QuIDStock,
		}
		if !p.ID.Valid() {
			p.ID = w.ProductID
		}
	}
	return entity.NewStockEntry(p, w.Amount)
}
