package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/grocy-stock/internal/application/ports"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
	domainstock "github.com/jhoicas/grocy-stock/internal/domain/stock"
)

// Options opciones de presentación reconocidas por el motor.
type Options struct {
	Mode             domainstock.GroupingMode
	CategoryFilter   entity.IDSet
	LocationFilter   entity.IDSet
	ShowLocationName bool
}

// RefreshUseCase ejecuta el ciclo completo: lectura → resolución → agrupación → confirmación.
type RefreshUseCase struct {
	gateway  ports.InventoryGateway
	state    *ViewState
	opts     Options
	strategy domainstock.Strategy
	log      zerolog.Logger
	now      func() time.Time
}

// NewRefreshUseCase construye el caso de uso. La estrategia se fija aquí a partir de opts.
func NewRefreshUseCase(gateway ports.InventoryGateway, state *ViewState, opts Options, log zerolog.Logger) *RefreshUseCase {
	return &RefreshUseCase{
		gateway:  gateway,
		state:    state,
		opts:     opts,
		strategy: domainstock.SelectStrategy(opts.Mode, opts.CategoryFilter, opts.LocationFilter),
		log:      log.With().Str("component", "refresh").Logger(),
		now:      time.Now,
	}
}

// Strategy estrategia de agrupación activa.
func (uc *RefreshUseCase) Strategy() domainstock.Strategy { return uc.strategy }

// Refresh lee stock y colecciones de referencia en paralelo y agrupa cuando todas
// han terminado. Si otro refresco más reciente ya confirmó su vista, el resultado
// de este se descarta y se devuelve la vista vigente.
func (uc *RefreshUseCase) Refresh(ctx context.Context) (Snapshot, error) {
	gen := uc.state.Begin()
	id := uuid.New()
	log := uc.log.With().Str("refresh_id", id.String()).Uint64("generation", gen).Logger()

	var (
		entries []entity.StockEntry
		refs    domainstock.References
		g       errgroup.Group
	)
	g.Go(func() error {
		entries = uc.gateway.FetchStock(ctx)
		return nil
	})
	g.Go(func() error {
		refs.Locations = uc.gateway.FetchLocations(ctx, uc.opts.LocationFilter)
		return nil
	})
	g.Go(func() error {
		refs.Groups = uc.gateway.FetchProductGroups(ctx, uc.opts.CategoryFilter)
		return nil
	})
	g.Go(func() error {
		refs.Units = uc.gateway.FetchQuantityUnits(ctx)
		return nil
	})
	_ = g.Wait() // las lecturas no fallan: se degradan a vacío

	if err := ctx.Err(); err != nil {
		log.Debug().Err(err).Msg("refresco cancelado, no se confirma")
		return uc.state.Current(), err
	}

	resolved := domainstock.Resolve(entries, refs, domainstock.ResolveOptions{ShowLocationName: uc.opts.ShowLocationName})
	view := domainstock.Aggregate(resolved, uc.strategy)

	snap := Snapshot{
		ID:          id,
		Generation:  gen,
		Strategy:    uc.strategy,
		View:        view,
		RefreshedAt: uc.now(),
	}
	if !uc.state.Commit(snap) {
		log.Debug().Msg("vista obsoleta descartada")
		return uc.state.Current(), nil
	}

	log.Debug().
		Str("strategy", uc.strategy.String()).
		Int("stock", len(entries)).
		Int("locations", len(refs.Locations)).
		Int("groups", len(refs.Groups)).
		Int("units", len(refs.Units)).
		Strs("labels", view.Labels()).
		Int("total", view.Len()).
		Msg("vista agrupada")
	return snap, nil
}

// Current devuelve la vista vigente; si aún no existe ejecuta un refresco.
func (uc *RefreshUseCase) Current(ctx context.Context) (Snapshot, error) {
	if snap := uc.state.Current(); !snap.IsZero() {
		return snap, nil
	}
	return uc.Refresh(ctx)
}
