package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	LogLevel  string

	// "*" or an empty list allows any origin
	CORSOrigins []string

	// checkout
	PromoCode     string
	PromoPercent  int64
	SubmitTimeout time.Duration
	AtomicOrders  bool

	// optional infrastructure; empty disables it
	RedisAddr       string
	KafkaBrokers    string
	KafkaOrderTopic string

	SeedDemo     bool
	DemoEmail    string
	DemoPassword string
}

func LoadConfig() *Config {
	// .env เป็น optional (ใน container ใช้ env จริง)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignore .env: %v", err)
	}

	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBSource:        getEnv("DB_SOURCE", "foodcart.db"),
		Port:            getEnv("PORT", "8000"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		JWTTTL:          time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", "*"),
		PromoCode:       getEnv("PROMO_CODE", "WELCOME10"),
		PromoPercent:    int64(getEnvInt("PROMO_PERCENT", 10)),
		SubmitTimeout:   time.Duration(getEnvInt("SUBMIT_TIMEOUT_MS", 8000)) * time.Millisecond,
		AtomicOrders:    getEnvBool("ATOMIC_ORDERS", true),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		KafkaOrderTopic: getEnv("KAFKA_ORDER_TOPIC", "order.placed"),
		SeedDemo:        getEnvBool("SEED_DEMO", true),
		DemoEmail:       os.Getenv("DEMO_EMAIL"),
		DemoPassword:    os.Getenv("DEMO_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// getEnvList splits a comma separated value and drops empty entries.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
