package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocy-stock/internal/application/ports"
	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// Tipos de mutación.
const (
	MutationConsume = "consume"
	MutationAdd     = "add"
)

// mutationDelta cantidad fija por invocación.
var mutationDelta = decimal.NewFromInt(1)

// RejectionError el servicio rechazó la escritura; Message es el texto del servidor.
type RejectionError struct {
	Kind      string
	ProductID entity.ID
	Message   string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s producto %s: %s", e.Kind, e.ProductID, e.Message)
}

// Unwrap permite errors.Is(err, domain.ErrRejected).
func (e *RejectionError) Unwrap() error { return domain.ErrRejected }

// MutationCoordinator aplica consumos y altas de una unidad y refresca la vista al confirmarse.
// No hay actualización optimista: la vista solo cambia tras el refresco.
type MutationCoordinator struct {
	gateway   ports.InventoryGateway
	refresher *RefreshUseCase
	log       zerolog.Logger
}

// NewMutationCoordinator construye el coordinador.
func NewMutationCoordinator(gateway ports.InventoryGateway, refresher *RefreshUseCase, log zerolog.Logger) *MutationCoordinator {
	return &MutationCoordinator{
		gateway:   gateway,
		refresher: refresher,
		log:       log.With().Str("component", "mutation").Logger(),
	}
}

// Consume consume una unidad del producto.
func (c *MutationCoordinator) Consume(ctx context.Context, productID entity.ID) (Snapshot, error) {
	return c.mutate(ctx, MutationConsume, productID, c.gateway.Consume)
}

// AddOne añade una unidad del producto.
func (c *MutationCoordinator) AddOne(ctx context.Context, productID entity.ID) (Snapshot, error) {
	return c.mutate(ctx, MutationAdd, productID, c.gateway.AddStock)
}

type writeFunc func(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error)

// mutate: Requesting → {Applied → Refreshing | Rejected | Failed}.
// Si el refresco posterior no termina se devuelve la vista vigente junto con
// domain.ErrAppliedNotRefreshed: la escritura ya está hecha y no debe repetirse.
func (c *MutationCoordinator) mutate(ctx context.Context, kind string, productID entity.ID, write writeFunc) (Snapshot, error) {
	if !productID.Valid() {
		return Snapshot{}, domain.ErrInvalidInput
	}
	log := c.log.With().Str("kind", kind).Str("product_id", productID.String()).Logger()
	log.Debug().Msg("requesting")

	outcome, err := write(ctx, productID, mutationDelta)
	if err != nil {
		log.Debug().Err(err).Msg("failed")
		if !errors.Is(err, domain.ErrConnectivity) {
			err = fmt.Errorf("%w: %w", domain.ErrConnectivity, err)
		}
		return Snapshot{}, err
	}
	if !outcome.Applied {
		log.Debug().Str("message", outcome.Message).Msg("rejected")
		return Snapshot{}, &RejectionError{Kind: kind, ProductID: productID, Message: outcome.Message}
	}

	log.Debug().Msg("applied")
	snap, err := c.refresher.Refresh(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("refresco tras escritura fallido")
		return snap, fmt.Errorf("%w: %s producto %s: %w", domain.ErrAppliedNotRefreshed, kind, productID, err)
	}
	return snap, nil
}
