package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	ClinicAPIURL  string         `mapstructure:"CLINIC_API_URL"`
	Location      *time.Location `mapstructure:"CLINIC_TIMEZONE"`
	SessionCookie string         `mapstructure:"CLINIC_SESSION_COOKIE"`
	APIRPS        float64        `mapstructure:"CLINIC_API_RPS"`
	APITimeout    time.Duration  `mapstructure:"CLINIC_API_TIMEOUT"`

	NoticeTTL time.Duration   `mapstructure:"NOTICE_TTL"`
	Dentists  []model.Dentist `mapstructure:"DENTISTS"`
}

const (
	defaultEnvironment    = "development"
	defaultTimezone       = "Europe/Madrid"
	defaultSessionCookie  = "session"
	defaultAPIRPS         = 10
	defaultAPITimeout     = 10 * time.Second
	defaultNoticeTTL      = 5 * time.Second
	defaultMigrationsPath = "migrations"
)

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	log.Printf("Config loaded\n")
	return cfg, nil
}

// FromEnv собирает конфиг из функции чтения переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		DBDSN:          getenv("DB_DSN"),
		Environment:    withDefault(getenv("ENV"), defaultEnvironment),
		MigrationsPath: withDefault(getenv("MIGRATIONS_PATH"), defaultMigrationsPath),
		ClinicAPIURL:   getenv("CLINIC_API_URL"),
		SessionCookie:  withDefault(getenv("CLINIC_SESSION_COOKIE"), defaultSessionCookie),
		APIRPS:         defaultAPIRPS,
		APITimeout:     defaultAPITimeout,
		NoticeTTL:      defaultNoticeTTL,
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.ClinicAPIURL == "" {
		return nil, fmt.Errorf("CLINIC_API_URL is required but not set")
	}

	loc, err := time.LoadLocation(withDefault(getenv("CLINIC_TIMEZONE"), defaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if v := getenv("CLINIC_API_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid CLINIC_API_RPS %q", v)
		}
		cfg.APIRPS = rps
	}
	if cfg.APITimeout, err = durationOr(getenv, "CLINIC_API_TIMEOUT", defaultAPITimeout); err != nil {
		return nil, err
	}
	if cfg.NoticeTTL, err = durationOr(getenv, "NOTICE_TTL", defaultNoticeTTL); err != nil {
		return nil, err
	}

	if cfg.Dentists, err = ParseDentists(getenv("DENTISTS")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// ParseDentists разбирает справочник вида "3=Dra. García;5=Dr. Ruiz".
// Результат отсортирован по id.
func ParseDentists(raw string) ([]model.Dentist, error) {
	var dentists []model.Dentist
	seen := make(map[int64]bool)

	for _, item := range strings.Split(raw, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		idPart, name, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid DENTISTS entry %q: expected id=Name", item)
		}
		id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid DENTISTS id in %q", item)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("empty DENTISTS name for id %d", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate DENTISTS id %d", id)
		}
		seen[id] = true
		dentists = append(dentists, model.Dentist{ID: id, Name: name})
	}

	sort.Slice(dentists, func(i, j int) bool { return dentists[i].ID < dentists[j].ID })
	return dentists, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return d, nil
}
