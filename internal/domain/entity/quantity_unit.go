package entity

// QuantityUnit unidad de cantidad con forma singular y plural.
type QuantityUnit struct {
	ID         ID
	Name       string // singular
	NamePlural string
}
