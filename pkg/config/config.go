package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/Inmuebles-api/internal/domain/tax"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Tax  TaxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
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

// TaxConfig tabla del impuesto de transferencia para el año gravable.
// Cada valor se puede reemplazar por env sin tocar la lógica de cálculo.
type TaxConfig struct {
	Year                  int
	UnitValue             float64 // TAX_UVT_VALUE
	ExemptThresholdUnits  float64 // TAX_EXEMPT_UVT
	LowBracketMaxUnits    float64 // TAX_LOW_MAX_UVT
	LowRate               float64 // TAX_LOW_RATE
	HighRate              float64 // TAX_HIGH_RATE
	HighBracketFixedUnits float64 // TAX_HIGH_FIXED_UVT
}

// Table convierte la configuración en la tabla de dominio.
func (c TaxConfig) Table() tax.Table {
	return tax.Table{
		Year:                  c.Year,
		UnitValue:             c.UnitValue,
		ExemptThresholdUnits:  c.ExemptThresholdUnits,
		LowBracketMaxUnits:    c.LowBracketMaxUnits,
		LowRate:               c.LowRate,
		HighRate:              c.HighRate,
		HighBracketFixedUnits: c.HighBracketFixedUnits,
	}
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, TAX_UVT_VALUE, etc.
// Devuelve error si la tabla resultante no cumple sus invariantes.
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
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	d := tax.DefaultTable
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inmuebles-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Tax: TaxConfig{
			Year:                  getInt(v, "TAX_YEAR", d.Year),
			UnitValue:             getFloat(v, "TAX_UVT_VALUE", d.UnitValue),
			ExemptThresholdUnits:  getFloat(v, "TAX_EXEMPT_UVT", d.ExemptThresholdUnits),
			LowBracketMaxUnits:    getFloat(v, "TAX_LOW_MAX_UVT", d.LowBracketMaxUnits),
			LowRate:               getFloat(v, "TAX_LOW_RATE", d.LowRate),
			HighRate:              getFloat(v, "TAX_HIGH_RATE", d.HighRate),
			HighBracketFixedUnits: getFloat(v, "TAX_HIGH_FIXED_UVT", d.HighBracketFixedUnits),
		},
	}

	if err := cfg.Tax.Table().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

// getFloat acepta punto o coma decimal ("0,015" también es válido).
func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			s := strings.ReplaceAll(strings.TrimSpace(v.GetString(key)), ",", ".")
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return def
			}
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
