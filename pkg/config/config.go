package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/grocy-stock/internal/domain"
	"github.com/jhoicas/grocy-stock/internal/domain/entity"
	domainstock "github.com/jhoicas/grocy-stock/internal/domain/stock"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Grocy GrocyConfig
	Stock StockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GrocyConfig conexión al API de Grocy y valores fijos de escritura.
type GrocyConfig struct {
	URL            string
	APIKey         string
	TimeoutSeconds int
	AddPrice       decimal.Decimal
	AddBestBefore  string // YYYY-MM-DD
}

// Timeout duración del timeout HTTP.
func (c GrocyConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WriteDefaults campos fijos que acompañan a consumos y altas.
func (c GrocyConfig) WriteDefaults() entity.WriteDefaults {
	d := entity.DefaultWriteDefaults()
	d.Price = c.AddPrice
	if c.AddBestBefore != "" {
		d.BestBeforeDate = c.AddBestBefore
	}
	return d
}

// StockConfig opciones de presentación del stock.
type StockConfig struct {
	GroupingMode     domainstock.GroupingMode
	CategoryFilter   entity.IDSet
	LocationFilter   entity.IDSet
	ShowLocationName bool
	Debug            bool // registro de depuración de lecturas y vistas
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: GROCY_API_URL, GROCY_API_KEY, STOCK_GROUPING_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	mode, err := domainstock.ParseGroupingMode(getString(v, "STOCK_GROUPING_MODE", ""))
	if err != nil {
		return nil, err
	}
	categories, err := getIDList(v, "STOCK_CATEGORY_FILTER")
	if err != nil {
		return nil, err
	}
	locations, err := getIDList(v, "STOCK_LOCATION_FILTER")
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(getString(v, "GROCY_ADD_PRICE", "0"))
	if err != nil {
		return nil, fmt.Errorf("%w: GROCY_ADD_PRICE: %v", domain.ErrInvalidInput, err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "grocy-stock"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Grocy: GrocyConfig{
			URL:            getString(v, "GROCY_API_URL", ""),
			APIKey:         getString(v, "GROCY_API_KEY", ""),
			TimeoutSeconds: getInt(v, "GROCY_TIMEOUT_SECONDS", 10),
			AddPrice:       price,
			AddBestBefore:  getString(v, "GROCY_ADD_BEST_BEFORE", entity.NeverExpires),
		},
		Stock: StockConfig{
			GroupingMode:     mode,
			CategoryFilter:   categories,
			LocationFilter:   locations,
			ShowLocationName: getBool(v, "STOCK_SHOW_LOCATION_NAME", true),
			Debug:            getBool(v, "STOCK_DEBUG", false),
		},
	}
	return cfg, nil
}

// Validate exige URL y API key de Grocy.
func (c *Config) Validate() error {
	if c.Grocy.URL == "" || c.Grocy.APIKey == "" {
		return fmt.Errorf("GROCY_API_URL y GROCY_API_KEY deben estar definidos: %w", domain.ErrNotConfigured)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getIDList lee una lista de IDs separada por comas ("1, 2,3").
func getIDList(v *viper.Viper, key string) (entity.IDSet, error) {
	raw := strings.TrimSpace(getString(v, key, ""))
	if raw == "" {
		return nil, nil
	}
	var out entity.IDSet
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := entity.ParseID(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		out = append(out, id)
	}
	return out, nil
}
