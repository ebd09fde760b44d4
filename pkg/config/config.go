package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	AI        AIConfig
	Redis     RedisConfig
	Log       LogConfig
	Telemetry TelemetryConfig
	Ingest    IngestConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
	// TracePublicBaseURL base pública usada en los QR impresos (ej. https://trace.example.com/api/trace).
	TracePublicBaseURL string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; "*" permite todos
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig servicio externo que genera los reportes ESG.
type AIConfig struct {
	ServiceURL     string
	TimeoutSeconds int
}

// RedisConfig caché opcional de la consulta pública de trazabilidad.
// URL vacía = caché deshabilitada.
type RedisConfig struct {
	URL             string
	TraceTTLSeconds int
}

// LogConfig nivel y archivo rotativo opcional.
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// TelemetryConfig trazas OTLP y métricas Prometheus.
type TelemetryConfig struct {
	OTLPEndpoint     string
	SampleRatio      float64
	MetricsNamespace string
}

// IngestConfig límites del endpoint de ingesta IoT.
type IngestConfig struct {
	MaxBatch int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	// .env al entorno del proceso; no sobreescribe variables ya definidas.
	_ = godotenv.Load()

	v := viper.New()

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

	cfg := &Config{
		App: AppConfig{
			Env:                getString(v, "APP_ENV", "development"),
			Name:               getString(v, "APP_NAME", "trazabilidad-api"),
			TracePublicBaseURL: strings.TrimRight(getString(v, "TRACE_PUBLIC_BASE_URL", "http://localhost:8080/api/trace"), "/"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "trazabilidad"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*7),
			Issuer:     getString(v, "JWT_ISSUER", "trazabilidad-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		AI: AIConfig{
			ServiceURL:     strings.TrimRight(getString(v, "AI_SERVICE_URL", "http://localhost:8000"), "/"),
			TimeoutSeconds: getInt(v, "AI_TIMEOUT_SECONDS", 60),
		},
		Redis: RedisConfig{
			URL:             getString(v, "REDIS_URL", ""),
			TraceTTLSeconds: getInt(v, "TRACE_CACHE_TTL_SECONDS", 300),
		},
		Log: LogConfig{
			Level:      getString(v, "LOG_LEVEL", "info"),
			File:       getString(v, "LOG_FILE", ""),
			MaxSizeMB:  getInt(v, "LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt(v, "LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getInt(v, "LOG_MAX_AGE_DAYS", 30),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:     getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			SampleRatio:      getFloat(v, "OTEL_SAMPLE_RATIO", 1.0),
			MetricsNamespace: getString(v, "METRICS_NAMESPACE", "trazabilidad"),
		},
		Ingest: IngestConfig{
			MaxBatch: getInt(v, "INGEST_MAX_BATCH", 5000),
		},
	}

	return cfg, nil
}

// Validate revisa los valores sin los cuales el servidor no puede arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	if c.Ingest.MaxBatch <= 0 {
		return fmt.Errorf("config: INGEST_MAX_BATCH debe ser positivo")
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	f, err := strconv.ParseFloat(v.GetString(key), 64)
	if err != nil {
		return def
	}
	return f
}
