package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contém as configurações da aplicação lidas do ambiente
type Config struct {
	Port           string
	BasePath       string
	GinMode        string
	LogLevel       string
	AllowedOrigins []string
	JWTSecret      string
	Timezone       string

	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	ReportCache    bool
	ReportCacheTTL time.Duration
	LockTTL        time.Duration
	MigrationsPath string
	RunMigrations  bool
}

// Load lê as variáveis de ambiente. Chame godotenv.Load antes para usar o .env.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		BasePath:       getEnv("API_BASE_PATH", "/api/v1"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Jakarta"),

		RedisAddress:   os.Getenv("REDIS_ADDRESS"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getInt("REDIS_DB", 0),
		ReportCache:    getBool("ENABLE_REPORT_CACHE", false),
		ReportCacheTTL: time.Duration(getInt("REPORT_CACHE_TTL_SECONDS", 120)) * time.Second,
		LockTTL:        time.Duration(getInt("LOCK_TTL_SECONDS", 30)) * time.Second,
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		RunMigrations:  getBool("RUN_MIGRATIONS", false),
	}
}

// Location devolve o fuso horário usado nos períodos dos relatórios
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	return v == "1" || strings.EqualFold(v, "true") || strings.EqualFold(v, "yes") || strings.EqualFold(v, "on")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
