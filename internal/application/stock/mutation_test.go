package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/jhoicas/grocy-stock/internal/application/stock"
	"github.com/jhoicas/grocy-stock/internal/domain"
)

func newCoordinator(gw *fakeGateway) (*appstock.MutationCoordinator, *appstock.RefreshUseCase) {
	refresher := newRefresher(gw, appstock.Options{ShowLocationName: true})
	return appstock.NewMutationCoordinator(gw, refresher, zerolog.Nop()), refresher
}

func TestConsume_AplicadoRefrescaDesdeElServidor(t *testing.T) {
	gw := milkGateway()
	mc, refresher := newCoordinator(gw)
	before, err := refresher.Refresh(t.Context())
	require.NoError(t, err)

	snap, err := mc.Consume(t.Context(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"consume:1:1"}, gw.writes)
	assert.Equal(t, 2, gw.stockFetches, "un refresco completo tras la escritura")
	assert.Greater(t, snap.Generation, before.Generation)
	items, _ := snap.View.Group("All items")
	require.Len(t, items, 1)
	assert.Equal(t, "1 liter", items[0].DisplayAmount)
}

func TestAddOne_AplicadoRefresca(t *testing.T) {
	gw := milkGateway()
	mc, _ := newCoordinator(gw)

	snap, err := mc.AddOne(t.Context(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"add:1:1"}, gw.writes)
	items, _ := snap.View.Group("All items")
	require.Len(t, items, 1)
	assert.Equal(t, "3 liters", items[0].DisplayAmount)
}

func TestConsume_RechazoDevuelveMensajeSinRefrescar(t *testing.T) {
	gw := milkGateway()
	gw.rejectMessage = "Amount to be consumed cannot be > current stock amount"
	mc, _ := newCoordinator(gw)

	_, err := mc.Consume(t.Context(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRejected)
	var rej *appstock.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, gw.rejectMessage, rej.Message)
	assert.Equal(t, 0, gw.stockFetches)
}

func TestConsume_FalloDeTransporteEsErrorDeConexion(t *testing.T) {
	gw := milkGateway()
	gw.transportErr = true
	mc, _ := newCoordinator(gw)

	_, err := mc.AddOne(t.Context(), 1)

	assert.ErrorIs(t, err, domain.ErrConnectivity)
	assert.Equal(t, 0, gw.stockFetches)
}

func TestConsume_ProductoInvalidoNoLlamaAlGateway(t *testing.T) {
	gw := milkGateway()
	mc, _ := newCoordinator(gw)

	_, err := mc.Consume(t.Context(), 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, gw.writes)
}

func TestConsume_RefrescoCanceladoTrasEscrituraDevuelveVistaVigente(t *testing.T) {
	gw := milkGateway()
	mc, refresher := newCoordinator(gw)
	before, err := refresher.Refresh(t.Context())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	gw.beforeStock = cancel

	snap, err := mc.Consume(ctx, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAppliedNotRefreshed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrConnectivity)
	assert.Equal(t, []string{"consume:1:1"}, gw.writes, "la escritura se aplicó una sola vez")
	assert.Equal(t, before.Generation, snap.Generation, "se devuelve la vista vigente")
}
