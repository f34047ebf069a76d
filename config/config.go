package config

import (
	"flag"
	"os"
	"sync"
)

const (
	defaultServerAddr      = ":8080"
	defaultDatabaseDSN     = ""
	defaultRedisAddr       = "localhost:6379"
	defaultWebpayEnv       = "integration"
	defaultReturnURL       = "http://localhost:5173/payment-success"
	defaultLogLevel        = "debug"
	defaultCloudinaryCloud = ""

	// Transbank public integration credentials. Production values
	// must always come from the environment.
	defaultCommerceCode = "597055555532"
	defaultWebpayAPIKey = "579B532A7440BB0C9079DED94D31EA1615BACEB56610332264630D42D0A36B1C"
)

type Config struct {
	ServerAddr  string
	DatabaseDSN string
	RedisAddr   string
	LogLevel    string

	// payment gateway
	WebpayCommerceCode string
	WebpayAPIKey       string
	WebpayEnvironment  string
	ReturnURL          string

	// image CDN
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AuthTokenKey string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddr, "storefront server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "storefront database DSN")
		flag.StringVar(&cfg.RedisAddr, "r", defaultRedisAddr, "redis address for cart storage")
		flag.StringVar(&cfg.ReturnURL, "u", defaultReturnURL, "payment gateway return URL")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		cfg.WebpayCommerceCode = defaultCommerceCode
		cfg.WebpayAPIKey = defaultWebpayAPIKey
		cfg.WebpayEnvironment = defaultWebpayEnv
		cfg.CloudinaryCloudName = defaultCloudinaryCloud

		// if environment variable is set, then using it
		if runAddrEnv := os.Getenv("RUN_ADDRESS"); runAddrEnv != "" {
			cfg.ServerAddr = runAddrEnv
		}
		if dataBaseURIEnv := os.Getenv("DATABASE_URI"); dataBaseURIEnv != "" {
			cfg.DatabaseDSN = dataBaseURIEnv
		}
		if redisAddrEnv := os.Getenv("REDIS_ADDRESS"); redisAddrEnv != "" {
			cfg.RedisAddr = redisAddrEnv
		}
		if commerceCodeEnv := os.Getenv("WEBPAY_COMMERCE_CODE"); commerceCodeEnv != "" {
			cfg.WebpayCommerceCode = commerceCodeEnv
		}
		if apiKeyEnv := os.Getenv("WEBPAY_API_KEY"); apiKeyEnv != "" {
			cfg.WebpayAPIKey = apiKeyEnv
		}
		if webpayEnvEnv := os.Getenv("WEBPAY_ENVIRONMENT"); webpayEnvEnv != "" {
			cfg.WebpayEnvironment = webpayEnvEnv
		}
		if returnURLEnv := os.Getenv("RETURN_URL"); returnURLEnv != "" {
			cfg.ReturnURL = returnURLEnv
		}
		if cloudNameEnv := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudNameEnv != "" {
			cfg.CloudinaryCloudName = cloudNameEnv
		}
		if cloudKeyEnv := os.Getenv("CLOUDINARY_API_KEY"); cloudKeyEnv != "" {
			cfg.CloudinaryAPIKey = cloudKeyEnv
		}
		if cloudSecretEnv := os.Getenv("CLOUDINARY_API_SECRET"); cloudSecretEnv != "" {
			cfg.CloudinaryAPISecret = cloudSecretEnv
		}
		if tokenKeyEnv := os.Getenv("AUTH_TOKEN_KEY"); tokenKeyEnv != "" {
			cfg.AuthTokenKey = tokenKeyEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		singleton = &cfg
	})

	return singleton, nil
}
