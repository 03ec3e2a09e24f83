package stock

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/grocy-stock/internal/domain/entity"
	domainstock "github.com/jhoicas/grocy-stock/internal/domain/stock"
)

// Snapshot resultado inmutable de un ciclo de refresco. ViewState guarda y entrega
// copias de View, así que modificar un Snapshot recibido no altera la vista vigente.
type Snapshot struct {
	ID          uuid.UUID
	Generation  uint64
	Strategy    domainstock.Strategy
	View        entity.GroupedView
	RefreshedAt time.Time
}

// IsZero indica que aún no se ha confirmado ningún refresco.
func (s Snapshot) IsZero() bool { return s.Generation == 0 }

// ViewState único estado mutable del motor: la última vista confirmada.
// Cada refresco recibe una generación creciente; solo se confirma una vista más
// nueva que la vigente, así que gana la última petición iniciada.
type ViewState struct {
	mu        sync.RWMutex
	next      uint64
	committed uint64
	current   Snapshot
}

// NewViewState construye un estado vacío.
func NewViewState() *ViewState {
	return &ViewState{}
}

// Begin reserva la generación de un nuevo ciclo.
func (s *ViewState) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Commit sustituye la vista si snap es más nueva que la confirmada. Devuelve si se guardó.
func (s *ViewState) Commit(snap Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Generation <= s.committed {
		return false
	}
	s.committed = snap.Generation
	snap.View = snap.View.Clone()
	s.current = snap
	return true
}

// Current devuelve la vista confirmada (IsZero si no hay ninguna).
func (s *ViewState) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.current
	snap.View = snap.View.Clone()
	return snap
}
