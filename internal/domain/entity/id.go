package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identificador numérico de un objeto del servicio de inventario.
// Cero significa "sin referencia": los IDs remotos empiezan en 1.
type ID int64

// Valid indica si el ID referencia un objeto.
func (id ID) Valid() bool { return id > 0 }

// String devuelve el ID en decimal.
func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// UnmarshalJSON acepta números, números entre comillas, "" y null.
// Algunas versiones del API devuelven los IDs como string.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("id inválido %q: %w", string(data), err)
	}
	*id = ID(n)
	return nil
}

// ParseID convierte un parámetro de ruta o de configuración en ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return ID(n), nil
}

// IDSet conjunto de IDs usado como filtro; vacío significa "sin filtro".
type IDSet []ID

// Contains indica si el conjunto contiene id.
func (s IDSet) Contains(id ID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
