package entity

// Location representa una ubicación de almacenamiento (nevera, despensa...).
type Location struct {
	ID   ID
	Name string
}
