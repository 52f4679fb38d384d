// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override, e.g. DASHBOARD_SERVER_PORT.
const EnvPrefix = "DASHBOARD"

type ServerConfig struct {
	Port         string        `yaml:"port" split_words:"true" validate:"required,numeric"`
	MaxUploadMB  int64         `yaml:"max_upload_mb" split_words:"true" validate:"gt=0"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
}

// DatabaseConfig selects where the upload log is written. Driver "none" disables it.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" split_words:"true" validate:"oneof=none mysql sqlite"`
	Host     string `yaml:"host" split_words:"true"`
	Port     string `yaml:"port" split_words:"true"`
	User     string `yaml:"user" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	DBName   string `yaml:"dbname" split_words:"true"`
	Path     string `yaml:"path" split_words:"true"` // sqlite file, ":memory:" allowed
}

type LoggingConfig struct {
	Level  string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error fatal"`
	Format string `yaml:"format" split_words:"true" validate:"oneof=text json"`
}

// ColumnAliases lists, per logical field, the raw column names probed in order.
type ColumnAliases struct {
	Site      []string `yaml:"site" split_words:"true"`
	Period    []string `yaml:"period" split_words:"true"`
	Shift     []string `yaml:"shift" split_words:"true"`
	Capacity  []string `yaml:"capacity" split_words:"true"`
	Students  []string `yaml:"students" split_words:"true"`
	StartDate []string `yaml:"start_date" split_words:"true"`
	Subject   []string `yaml:"subject" split_words:"true"`
}

type ReportConfig struct {
	MonthLocale     string        `yaml:"month_locale" split_words:"true" validate:"oneof=en es"`
	MissingCapacity float64       `yaml:"missing_capacity" split_words:"true" validate:"gte=0"`
	DetailLimit     int           `yaml:"detail_limit" split_words:"true" validate:"gte=0"`
	SessionTTL      time.Duration `yaml:"session_ttl" split_words:"true"`
	Sheet           string        `yaml:"sheet" split_words:"true"` // preferred xlsx sheet, optional
}

type RemoteConfig struct {
	Timeout  time.Duration `yaml:"timeout" split_words:"true"`
	RetryMax int           `yaml:"retry_max" split_words:"true" validate:"gte=0"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Columns  ColumnAliases  `yaml:"columns" envconfig:"COLUMNS"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Remote   RemoteConfig   `yaml:"remote" envconfig:"REMOTE"`
}

var AppConfig = Defaults()

// Defaults returns the configuration used when no file or environment says otherwise.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			MaxUploadMB:  20,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{Driver: "none", Port: "3306", Path: "dashboard.db"},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Columns: ColumnAliases{
			Site:      []string{"Sede", "Site"},
			Period:    []string{"Período", "Periodo", "Period"},
			Shift:     []string{"Sede - turno", "Sede - Turno", "Turno", "Shift"},
			Capacity:  []string{"Cupo máximo", "Cupo", "Capacity"},
			Students:  []string{"Estudiantes", "Alumnos", "Students"},
			StartDate: []string{"Fecha de inicio", "Fecha inicio", "Inicio", "Start date"},
			Subject:   []string{"Curso", "Asignatura", "Materia", "Subject"},
		},
		Report: ReportConfig{
			MonthLocale:     "en",
			MissingCapacity: 1,
			DetailLimit:     10,
			SessionTTL:      2 * time.Hour,
		},
		Remote: RemoteConfig{Timeout: 30 * time.Second, RetryMax: 3},
	}
}

// LoadConfig builds AppConfig from defaults, an optional .env file, an optional
// YAML file and DASHBOARD_* environment variables, in that order.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load is LoadConfig without touching AppConfig.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file: %w", err)
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through with defaults
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
