package config

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddr     = ":8080"
	defaultDatabaseDSN    = ""
	defaultRedisAddr      = "localhost:6379"
	defaultLogLevel       = "debug"
	defaultGatewayBaseURL = "https://api.razorpay.com"
	defaultEmailBaseURL   = "https://api.resend.com"
	defaultEmailSender    = "orders@styleshelf.in"
	defaultCurrency       = "INR"
	defaultSessionTTL     = 24 * time.Hour
	defaultSweepInterval  = time.Minute
	defaultStaleOrderAge  = 30 * time.Minute
)

type Config struct {
	ServerAddr  string
	DatabaseDSN string
	RedisAddr   string
	LogLevel    string

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string
	Currency         string

	EmailBaseURL string
	EmailAPIKey  string
	EmailSender  string

	TokenKey   string
	SessionTTL time.Duration

	SweepInterval time.Duration
	StaleOrderAge time.Duration
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		// local development settings; missing file is fine
		_ = godotenv.Load()

		cfg := Config{
			Currency:      defaultCurrency,
			SessionTTL:    defaultSessionTTL,
			SweepInterval: defaultSweepInterval,
			StaleOrderAge: defaultStaleOrderAge,
		}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddr, "storefront server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "storefront database DSN")
		flag.StringVar(&cfg.RedisAddr, "r", defaultRedisAddr, "redis address for session records")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")
		flag.StringVar(&cfg.GatewayBaseURL, "g", defaultGatewayBaseURL, "payment gateway base URL")
		flag.StringVar(&cfg.EmailBaseURL, "e", defaultEmailBaseURL, "email provider base URL")

		flag.Parse()

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if databaseURIEnv := os.Getenv("DATABASE_URI"); databaseURIEnv != "" {
			cfg.DatabaseDSN = databaseURIEnv
		}
		if redisAddrEnv := os.Getenv("REDIS_ADDRESS"); redisAddrEnv != "" {
			cfg.RedisAddr = redisAddrEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}
		if gatewayURLEnv := os.Getenv("GATEWAY_BASE_URL"); gatewayURLEnv != "" {
			cfg.GatewayBaseURL = gatewayURLEnv
		}
		if emailURLEnv := os.Getenv("EMAIL_BASE_URL"); emailURLEnv != "" {
			cfg.EmailBaseURL = emailURLEnv
		}

		cfg.GatewayKeyID = os.Getenv("RAZORPAY_KEY_ID")
		cfg.GatewayKeySecret = os.Getenv("RAZORPAY_KEY_SECRET")
		cfg.EmailAPIKey = os.Getenv("RESEND_API_KEY")
		cfg.TokenKey = os.Getenv("AUTH_TOKEN_KEY")

		if senderEnv := os.Getenv("EMAIL_SENDER"); senderEnv != "" {
			cfg.EmailSender = senderEnv
		} else {
			cfg.EmailSender = defaultEmailSender
		}
		if currencyEnv := os.Getenv("CURRENCY"); currencyEnv != "" {
			cfg.Currency = currencyEnv
		}
		if ttlEnv := os.Getenv("SESSION_TTL"); ttlEnv != "" {
			if d, err := time.ParseDuration(ttlEnv); err == nil {
				cfg.SessionTTL = d
			}
		}
		if sweepEnv := os.Getenv("SWEEP_INTERVAL"); sweepEnv != "" {
			if d, err := time.ParseDuration(sweepEnv); err == nil {
				cfg.SweepInterval = d
			}
		}
		if staleEnv := os.Getenv("STALE_ORDER_AGE"); staleEnv != "" {
			if d, err := time.ParseDuration(staleEnv); err == nil {
				cfg.StaleOrderAge = d
			}
		}

		singleton = &cfg
	})

	return singleton, nil
}
