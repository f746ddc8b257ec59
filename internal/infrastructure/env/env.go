package env

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"screen-agent/internal/application/port/output"
)

var _ output.ConfigPort = (*Service)(nil)

// Service reads process environment after .env files were loaded into it.
type Service struct {
	appEnv string
	loaded []string
}

// Load reads dir/.env (secrets, does not override the process environment)
// and then dir/.env.<APP_ENV> (overrides). Missing files are skipped.
func Load(dir string) *Service {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "dev"
	}

	s := &Service{appEnv: appEnv}

	base := filepath.Join(dir, ".env")
	if err := godotenv.Load(base); err == nil {
		s.loaded = append(s.loaded, base)
	}

	envFile := filepath.Join(dir, fmt.Sprintf(".env.%s", appEnv))
	if err := godotenv.Overload(envFile); err == nil {
		s.loaded = append(s.loaded, envFile)
	}

	return s
}

func (s *Service) AppEnv() string {
	return s.appEnv
}

// Loaded lists the env files that were found, in load order.
func (s *Service) Loaded() []string {
	return append([]string(nil), s.loaded...)
}

func (s *Service) Get(key string) string {
	return os.Getenv(key)
}

func (s *Service) MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("ENV %s is missing", key)
	}
	return val
}

func (s *Service) GetWithDefault(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func (s *Service) GetBool(key string, defaultValue bool) bool {
	parsed, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (s *Service) GetInt(key string, defaultValue int) int {
	parsed, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}

func (s *Service) GetDuration(key string, defaultValue time.Duration) time.Duration {
	parsed, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return parsed
}
