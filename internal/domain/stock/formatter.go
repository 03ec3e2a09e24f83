package stock

import (
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// singularBelow umbral bajo el cual se usa la forma singular de la unidad.
// Es 1.1 y no 1: "1 item" y "0.5 item", pero "1.1 items".
var singularBelow = decimal.RequireFromString("1.1")

// FormatAmount devuelve "<cantidad> <unidad>" eligiendo singular o plural.
// Sin unidad (o con la forma elegida vacía) devuelve solo la cantidad.
func FormatAmount(amount decimal.Decimal, unit *entity.QuantityUnit) string {
	qty := amount.String()
	if unit == nil {
		return qty
	}
	word := unit.NamePlural
	if amount.LessThan(singularBelow) {
		word = unit.Name
	}
	if word == "" {
		return qty
	}
	return qty + " " + word
}
