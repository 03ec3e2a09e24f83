package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrNotConfigured = errors.New("servicio de inventario no configurado")
	// ErrRejected: el servicio de inventario respondió con un estado no exitoso.
	ErrRejected = errors.New("operación rechazada por el servicio de inventario")
	// ErrConnectivity: fallo de transporte (red, timeout) en una escritura.
	ErrConnectivity = errors.New("error de conexión con el servicio de inventario")
	// ErrAppliedNotRefreshed: la escritura se aplicó pero el refresco posterior no terminó.
	ErrAppliedNotRefreshed = errors.New("escritura aplicada, vista no refrescada")
)
