package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port       string
	GinMode    string
	CORSOrigin string

	DBDriver    string
	DBDSN       string
	SnapshotKey string

	JWTSecret string

	StrictTransitions bool
	CheckoutStatus    models.OrderStatus

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	RateLimitPerSecond float64
	RateLimitBurst     int

	// ReceiptFont is an optional TTF with Thai glyphs for PDF receipts.
	ReceiptFont string

	// TraceStdout writes request and intent spans to stderr.
	TraceStdout bool
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env not loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		GinMode:       get("GIN_MODE", "debug"),
		CORSOrigin:    get("CORS_ORIGIN", "*"),
		DBDriver:      strings.ToLower(get("DB_DRIVER", "sqlite")),
		DBDSN:         get("DB_DSN", "smart-pos.db"),
		SnapshotKey:   get("SNAPSHOT_KEY", "smart-pos"),
		JWTSecret:     get("JWT_SECRET", ""),
		GeminiAPIKey:  get("GEMINI_API_KEY", get("API_KEY", "")),
		GeminiModel:   get("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: get("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ReceiptFont:   get("RECEIPT_FONT", ""),
	}

	var err error
	if cfg.StrictTransitions, err = strconv.ParseBool(get("POS_STRICT_TRANSITIONS", "false")); err != nil {
		return Config{}, fmt.Errorf("POS_STRICT_TRANSITIONS: %w", err)
	}
	cfg.CheckoutStatus = models.OrderStatus(strings.ToLower(get("POS_CHECKOUT_STATUS", string(models.OrderStatusPaid))))
	if cfg.CheckoutStatus != models.OrderStatusPaid && cfg.CheckoutStatus != models.OrderStatusNew {
		return Config{}, fmt.Errorf("POS_CHECKOUT_STATUS must be %q or %q, got %q",
			models.OrderStatusPaid, models.OrderStatusNew, cfg.CheckoutStatus)
	}
	if cfg.RateLimitPerSecond, err = strconv.ParseFloat(get("RATE_LIMIT_PER_SECOND", "20"), 64); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_PER_SECOND: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(get("RATE_LIMIT_BURST", "40")); err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
	}
	if cfg.TraceStdout, err = strconv.ParseBool(get("TRACE_STDOUT", "false")); err != nil {
		return Config{}, fmt.Errorf("TRACE_STDOUT: %w", err)
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "mysql" {
		return Config{}, fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}
	return cfg, nil
}

// InitDB opens the snapshot database with the configured driver.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	utils.InfoLogger.Infof("Connected to %s database", cfg.DBDriver)
	return db, nil
}
