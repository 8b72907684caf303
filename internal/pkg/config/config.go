package config

import (
	"fmt"
	"time"

	"nest/internal/pkg/errs"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB/Redis connection, secrets)
// - default: Values common across all environments (timeouts, lease and retry tuning)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Lock    LockConfig
	Worker  WorkerConfig
	Webhook WebhookConfig
	Catalog CatalogConfig
	Bridge  BridgeConfig
	Query   QueryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig guards the query API. Webhook senders are not issued tokens.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// LockConfig tunes the Redis lease locks. LeaseTTL must exceed the worst-case
// time to apply a single event.
type LockConfig struct {
	KeyPrefix   string        `envconfig:"LOCK_KEY_PREFIX" default:"nest:lock:"`
	LeaseTTL    time.Duration `envconfig:"LOCK_LEASE_TTL" default:"30s"`
	MaxAttempts int           `envconfig:"LOCK_MAX_ATTEMPTS" default:"5"`
	BackoffBase time.Duration `envconfig:"LOCK_BACKOFF_BASE" default:"200ms"`
	BackoffMax  time.Duration `envconfig:"LOCK_BACKOFF_MAX" default:"5s"`
}

type WorkerConfig struct {
	Count        int           `envconfig:"WORKER_COUNT" default:"4"`
	QueueSize    int           `envconfig:"WORKER_QUEUE_SIZE" default:"256"`
	MaxAttempts  int           `envconfig:"WORKER_MAX_ATTEMPTS" default:"8"`
	RequeueDelay time.Duration `envconfig:"WORKER_REQUEUE_DELAY" default:"2s"`
}

type WebhookConfig struct {
	// ack: unrecognized payloads are stored and acknowledged.
	// requeue: unrecognized payloads are stored and retried (e.g. until the catalog catches up).
	UnrecognizedPolicy string `envconfig:"WEBHOOK_UNRECOGNIZED_POLICY" default:"ack"`
	GreenlightEnabled  bool   `envconfig:"WEBHOOK_GREENLIGHT_ENABLED" default:"false"`
	GreenlightKey      string `envconfig:"WEBHOOK_GREENLIGHT_KEY" default:"greenlight"`
	MaxBodyBytes       int64  `envconfig:"WEBHOOK_MAX_BODY_BYTES" default:"1048576"`
}

type CatalogConfig struct {
	DefinitionsDir string        `envconfig:"CATALOG_DEFINITIONS_DIR" default:""`
	CacheSize      int           `envconfig:"CATALOG_CACHE_SIZE" default:"512"`
	CacheTTL       time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"1m"`
}

type BridgeConfig struct {
	Channel        string        `envconfig:"BRIDGE_CHANNEL" default:"entitlement_changed"`
	CatalogChannel string        `envconfig:"BRIDGE_CATALOG_CHANNEL" default:"catalog_changed"`
	ReconnectDelay time.Duration `envconfig:"BRIDGE_RECONNECT_DELAY" default:"1s"`
	ReconnectMax   time.Duration `envconfig:"BRIDGE_RECONNECT_MAX" default:"30s"`
}

// QueryConfig sizes the per-user ledger cache of the entitlement API. Entries
// are dropped early when the bridge reports a change for the user.
type QueryConfig struct {
	CacheSize int           `envconfig:"QUERY_CACHE_SIZE" default:"1024"`
	CacheTTL  time.Duration `envconfig:"QUERY_CACHE_TTL" default:"30s"`
}

const (
	UnrecognizedPolicyAck     = "ack"
	UnrecognizedPolicyRequeue = "requeue"
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *WebhookConfig) RequeueUnrecognized() bool {
	return c.UnrecognizedPolicy == UnrecognizedPolicyRequeue
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, errs.Wrap(err, "failed to process env config")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Webhook.UnrecognizedPolicy {
	case UnrecognizedPolicyAck, UnrecognizedPolicyRequeue:
	default:
		return errs.Newf("invalid WEBHOOK_UNRECOGNIZED_POLICY %q", c.Webhook.UnrecognizedPolicy)
	}
	if c.Lock.LeaseTTL <= 0 {
		return errs.New("LOCK_LEASE_TTL must be positive")
	}
	if c.Worker.Count <= 0 {
		return errs.New("WORKER_COUNT must be positive")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Lock: LockConfig{
			KeyPrefix:   "nest:test:lock:",
			LeaseTTL:    5 * time.Second,
			MaxAttempts: 3,
			BackoffBase: 10 * time.Millisecond,
			BackoffMax:  50 * time.Millisecond,
		},
		Worker: WorkerConfig{
			Count:        2,
			QueueSize:    16,
			MaxAttempts:  3,
			RequeueDelay: 10 * time.Millisecond,
		},
		Webhook: WebhookConfig{
			UnrecognizedPolicy: UnrecognizedPolicyAck,
			GreenlightKey:      "greenlight",
			MaxBodyBytes:       1 << 20,
		},
		Catalog: CatalogConfig{
			CacheSize: 64,
			CacheTTL:  time.Second,
		},
		Bridge: BridgeConfig{
			Channel:        "entitlement_changed",
			CatalogChannel: "catalog_changed",
			ReconnectDelay: 50 * time.Millisecond,
			ReconnectMax:   time.Second,
		},
		Query: QueryConfig{
			CacheSize: 64,
			CacheTTL:  time.Second,
		},
	}
}
