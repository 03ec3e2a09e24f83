package entity

import "github.com/shopspring/decimal"

// Tipos de transacción del servicio de inventario.
const (
	TransactionConsume  = "consume"
	TransactionPurchase = "purchase"
)

// NeverExpires fecha de caducidad que el servicio interpreta como "no caduca".
const NeverExpires = "2999-12-31"

// WriteDefaults campos fijos que acompañan a las escrituras.
// Hoy no son configurables por llamada; se centralizan aquí para poder parametrizarlos.
type WriteDefaults struct {
	Price            decimal.Decimal // precio de compra al añadir
	BestBeforeDate   string          // fecha de caducidad al añadir (YYYY-MM-DD)
	SpoiledOnConsume bool
}

// DefaultWriteDefaults precio cero y fecha de caducidad lejana.
func DefaultWriteDefaults() WriteDefaults {
	return WriteDefaults{
		Price:          decimal.Zero,
		BestBeforeDate: NeverExpires,
	}
}

// WriteOutcome resultado de aplicación de una escritura (el transporte funcionó).
type WriteOutcome struct {
	Applied bool
	Message string // mensaje del servidor cuando Applied es false
}
