package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	UnsplashAccessKey string
	OpenAIAPIKey      string
	RedisAddr         string
	JWTSecret         string
	JWKSURL           string
	CORSOrigins       []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", ""),
		DBName:            getEnv("DB_NAME", "innerglow"),
		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWKSURL:           getEnv("AUTH_JWKS_URL", ""),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
