package grocy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocy-stock/internal/application/ports"
	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa InventoryGateway.
var _ ports.InventoryGateway = (*Client)(nil)

const (
	apiKeyHeader = "GROCY-API-KEY"

	entityLocations     = "locations"
	entityProductGroups = "product_groups"
	entityQuantityUnits = "quantity_units"

	// UnknownErrorMessage mensaje cuando el rechazo es JSON pero sin error_message.
	UnknownErrorMessage = "unknown error"

	maxResponseSize = 10 << 20
)

// Config parámetros de conexión al API de Grocy.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Defaults entity.WriteDefaults
}

// Client adaptador HTTP de InventoryGateway sobre el API REST de Grocy.
type Client struct {
	baseURL    string
	apiKey     string
	defaults   entity.WriteDefaults
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. URL y API key son obligatorias.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("grocy: URL y API key son obligatorias: %w", domain.ErrNotConfigured)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cfg.Defaults.BestBeforeDate == "" {
		cfg.Defaults.BestBeforeDate = entity.NeverExpires
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		defaults:   cfg.Defaults,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "grocy").Logger(),
	}, nil
}

// ── Lecturas (fail-soft) ──────────────────────────────────────────────────────

// FetchStock GET /api/stock. Las líneas que no se pueden decodificar se omiten.
func (c *Client) FetchStock(ctx context.Context) []entity.StockEntry {
	items := fetchEach[stockItemWire](ctx, c, "stock")
	out := make([]entity.StockEntry, 0, len(items))
	for _, it := range items {
		out = append(out, it.toEntity())
	}
	c.log.Debug().Int("count", len(out)).Msg("stock recuperado")
	return out
}

// FetchLocations GET /api/objects/locations.
func (c *Client) FetchLocations(ctx context.Context, filter entity.IDSet) []entity.Location {
	objs := c.fetchObjects(ctx, entityLocations, filter)
	out := make([]entity.Location, 0, len(objs))
	for _, o := range objs {
		out = append(out, entity.Location{ID: o.ID, Name: o.Name})
	}
	return out
}

// FetchProductGroups GET /api/objects/product_groups.
func (c *Client) FetchProductGroups(ctx context.Context, filter entity.IDSet) []entity.ProductGroup {
	objs := c.fetchObjects(ctx, entityProductGroups, filter)
	out := make([]entity.ProductGroup, 0, len(objs))
	for _, o := range objs {
		out = append(out, entity.ProductGroup{ID: o.ID, Name: o.Name})
	}
	return out
}

// FetchQuantityUnits GET /api/objects/quantity_units.
func (c *Client) FetchQuantityUnits(ctx context.Context) []entity.QuantityUnit {
	objs := c.fetchObjects(ctx, entityQuantityUnits, nil)
	out := make([]entity.QuantityUnit, 0, len(objs))
	for _, o := range objs {
		out = append(out, entity.QuantityUnit{ID: o.ID, Name: o.Name, NamePlural: o.NamePlural})
	}
	return out
}

func (c *Client) fetchObjects(ctx context.Context, name string, filter entity.IDSet) []objectWire {
	objs := fetchEach[objectWire](ctx, c, "objects/"+name)
	if len(filter) > 0 {
		kept := objs[:0]
		for _, o := range objs {
			if filter.Contains(o.ID) {
				kept = append(kept, o)
			}
		}
		objs = kept
	}
	c.log.Debug().Str("entity", name).Int("count", len(objs)).Msg("colección recuperada")
	return objs
}

// fetchEach descarga una colección JSON y decodifica cada elemento por separado,
// de modo que un registro malformado no invalida el resto.
func fetchEach[T any](ctx context.Context, c *Client, path string) []T {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, path, &raw); err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("lectura fallida, se usa colección vacía")
		return []T{}
	}
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			c.log.Debug().Err(err).Str("path", path).Int("index", i).Msg("registro omitido")
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return fmt.Errorf("grocy: crear request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("grocy: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("grocy: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("grocy: HTTP %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("grocy: deserializar respuesta: %w", err)
	}
	return nil
}

// ── Escrituras ────────────────────────────────────────────────────────────────

// Consume POST /api/stock/products/{id}/consume.
func (c *Client) Consume(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error) {
	body := consumeRequest{
		Amount:          json.Number(amount.String()),
		TransactionType: entity.TransactionConsume,
		Spoiled:         c.defaults.SpoiledOnConsume,
	}
	return c.post(ctx, "stock/products/"+productID.String()+"/consume", body)
}

// AddStock POST /api/stock/products/{id}/add con el precio y la caducidad por defecto.
func (c *Client) AddStock(ctx context.Context, productID entity.ID, amount decimal.Decimal) (entity.WriteOutcome, error) {
	body := addRequest{
		Amount:          json.Number(amount.String()),
		TransactionType: entity.TransactionPurchase,
		Price:           json.Number(c.defaults.Price.String()),
		BestBeforeDate:  c.defaults.BestBeforeDate,
	}
	return c.post(ctx, "stock/products/"+productID.String()+"/add", body)
}

func (c *Client) post(ctx context.Context, path string, payload any) (entity.WriteOutcome, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return entity.WriteOutcome{}, fmt.Errorf("grocy: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(data))
	if err != nil {
		return entity.WriteOutcome{}, fmt.Errorf("grocy: crear request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.WriteOutcome{}, fmt.Errorf("grocy: %w: %w", domain.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return entity.WriteOutcome{Applied: true}, nil
	}

	// Solo un cuerpo JSON cuenta como rechazo del servidor; cualquier otra
	// respuesta (HTML de un proxy, cuerpo vacío) se trata como fallo de conexión.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return entity.WriteOutcome{}, fmt.Errorf("grocy: %w: HTTP %d: %w", domain.ErrConnectivity, resp.StatusCode, err)
	}
	if !json.Valid(raw) {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("respuesta de error no JSON")
		return entity.WriteOutcome{}, fmt.Errorf("grocy: %w: HTTP %d", domain.ErrConnectivity, resp.StatusCode)
	}
	msg := UnknownErrorMessage
	var errResp errorResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.ErrorMessage != "" {
		msg = errResp.ErrorMessage
	}
	c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("error_message", msg).Msg("escritura rechazada")
	return entity.WriteOutcome{Applied: false, Message: msg}, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/api/" + path
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
}
