package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// ✅ Postgres Config
	DatabaseURL string // full DSN, takes precedence when set
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBMaxConns  int

	// ✅ Cron / Health Check
	CronSecret string

	// ✅ Redis Config (optional cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Solana NFT Collaborator (external, not used by the core)
	SolanaRPCURL      string
	SolanaKeypairPath string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	maxConns, err := strconv.Atoi(os.Getenv("DB_MAX_CONNS"))
	if err != nil || maxConns < 1 || maxConns > 10 {
		maxConns = 10 // pool stays small, the store is shared with the dashboard
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   os.Getenv("DB_SSLMODE"),
		DBMaxConns:  maxConns,

		CronSecret: os.Getenv("CRON_SECRET"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		SolanaRPCURL:      os.Getenv("SOLANA_RPC_URL"),
		SolanaKeypairPath: os.Getenv("SOLANA_KEYPAIR_PATH"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
