package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocy-stock/internal/application/dto"
	appstock "github.com/jhoicas/grocy-stock/internal/application/stock"
	"github.com/jhoicas/grocy-stock/internal/infrastructure/grocy"
	apphttp "github.com/jhoicas/grocy-stock/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// grocyServer servidor Grocy simulado con un único producto (Milk, 2 litros).
// consume resta una unidad; rejectWith fuerza un rechazo con ese mensaje;
// proxyError responde a las escrituras con una página HTML de error.
type grocyServer struct {
	mu         sync.Mutex
	amount     int
	rejectWith string
	proxyError bool
	onStock    func()
}

func (s *grocyServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if s.proxyError && r.Method == http.MethodPost {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>502 Bad Gateway</html>`))
		return
	}
	switch r.URL.Path {
	case "/api/stock":
		if s.onStock != nil {
			s.onStock()
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"product_id": 1,
			"amount":     s.amount,
			"product":    map[string]any{"id": 1, "name": "Milk", "location_id": 10, "qu_id_stock": 5},
		}})
	case "/api/objects/locations":
		_, _ = w.Write([]byte(`[{"id":10,"name":"Fridge"}]`))
	case "/api/objects/product_groups":
		_, _ = w.Write([]byte(`[]`))
	case "/api/objects/quantity_units":
		_, _ = w.Write([]byte(`[{"id":5,"name":"liter","name_plural":"liters"}]`))
	case "/api/stock/products/1/consume":
		if s.rejectWith != "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_message":"` + s.rejectWith + `"}`))
			return
		}
		s.amount--
		_, _ = w.Write([]byte(`[]`))
	case "/api/stock/products/1/add":
		s.amount++
		_, _ = w.Write([]byte(`[]`))
	default:
		http.NotFound(w, r)
	}
}

func buildTestApp(t *testing.T, baseURL string, middleware ...fiber.Handler) *fiber.App {
	t.Helper()
	client, err := grocy.NewClient(grocy.Config{BaseURL: baseURL, APIKey: "k"}, zerolog.Nop())
	require.NoError(t, err)

	refresher := appstock.NewRefreshUseCase(client, appstock.NewViewState(),
		appstock.Options{ShowLocationName: true}, zerolog.Nop())
	mutations := appstock.NewMutationCoordinator(client, refresher, zerolog.Nop())

	app := fiber.New()
	for _, mw := range middleware {
		app.Use(mw)
	}
	apphttp.Router(app, apphttp.RouterDeps{AppName: "grocy-stock-test", Refresher: refresher, Mutations: mutations})
	return app
}

func newGrocy(t *testing.T, amount int) (*grocyServer, string) {
	t.Helper()
	g := &grocyServer{amount: amount}
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return g, srv.URL
}

func doRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeView(t *testing.T, resp *http.Response) dto.StockViewResponse {
	t.Helper()
	var out dto.StockViewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodGet, "/health")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetStock_DevuelveVistaAgrupada(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodGet, "/api/stock")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeView(t, resp)
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "none", view.Strategy)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "All items", view.Groups[0].Label)
	require.Len(t, view.Groups[0].Items, 1)
	item := view.Groups[0].Items[0]
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "Fridge", item.LocationName)
	assert.Equal(t, "2 liters", item.DisplayAmount)
}

func TestConsume_AplicadoDevuelveVistaRefrescada(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/consume")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeView(t, resp)
	assert.Equal(t, "1 liter", view.Groups[0].Items[0].DisplayAmount)
}

func TestAdd_AplicadoDevuelveVistaRefrescada(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/add")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3 liters", decodeView(t, resp).Groups[0].Items[0].DisplayAmount)
}

func TestConsume_RechazoDevuelve422ConMensaje(t *testing.T) {
	g, url := newGrocy(t, 0)
	g.rejectWith = "Amount to be consumed cannot be > current stock amount"
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/consume")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "REJECTED", body.Code)
	assert.Equal(t, g.rejectWith, body.Message)
}

func TestConsume_ServidorCaidoDevuelve502(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/add")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONNECTIVITY", body.Code)
}

func TestConsume_IDInvalidoDevuelve400(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/abc/consume")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefresh_IncrementaGeneracion(t *testing.T) {
	_, url := newGrocy(t, 2)
	app := buildTestApp(t, url)

	first := doRequest(t, app, http.MethodPost, "/api/stock/refresh")
	defer first.Body.Close()
	second := doRequest(t, app, http.MethodPost, "/api/stock/refresh")
	defer second.Body.Close()

	assert.Equal(t, uint64(1), decodeView(t, first).Generation)
	assert.Equal(t, uint64(2), decodeView(t, second).Generation)
}

func TestConsume_ErrorHTMLDelProxyDevuelve502(t *testing.T) {
	g, url := newGrocy(t, 2)
	g.proxyError = true
	app := buildTestApp(t, url)

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/consume")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONNECTIVITY", body.Code)
}

func TestConsume_AplicadoSinRefrescoDevuelve202(t *testing.T) {
	g, url := newGrocy(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g.onStock = cancel
	app := buildTestApp(t, url, func(c *fiber.Ctx) error {
		c.SetUserContext(ctx)
		return c.Next()
	})

	resp := doRequest(t, app, http.MethodPost, "/api/stock/products/1/consume")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "APPLIED_REFRESH_FAILED", body.Code)
	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Equal(t, 1, g.amount, "la escritura quedó aplicada")
}
