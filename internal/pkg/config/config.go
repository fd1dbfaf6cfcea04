// Package config предоставляет управление конфигурацией приложения
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile — файл конфигурации, который читает LoadConfig.
const DefaultConfigFile = "config.yml"

// Server содержит конфигурацию HTTP-сервера
type Server struct {
	Host            string        `json:"host" yaml:"host"`
	Port            int           `json:"port" yaml:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" validate:"gt=0"`
	MaxUploadSizeMB int64         `json:"max_upload_size_mb" yaml:"max_upload_size_mb" validate:"gt=0"`
}

// Processing содержит конфигурацию фоновой обработки
type Processing struct {
	TaskTimeout     time.Duration `json:"task_timeout" yaml:"task_timeout" validate:"gte=0"` // 0 - без ограничений
	CacheTTL        time.Duration `json:"cache_ttl" yaml:"cache_ttl" validate:"gt=0"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" validate:"gt=0"`
}

// Normalizer содержит настройки нормализации
type Normalizer struct {
	Diagnostics bool `json:"diagnostics" yaml:"diagnostics"`
	MaxDepth    int  `json:"max_depth" yaml:"max_depth" validate:"gte=0"`
}

// Bot содержит настройки подключения к Bot API
type Bot struct {
	Token       string `json:"token" yaml:"token"`
	APIEndpoint string `json:"api_endpoint" yaml:"api_endpoint"`
	// MirrorEndpoints — дополнительные серверы Bot API; запросы распределяются по кругу.
	MirrorEndpoints       []string      `json:"mirror_endpoints" yaml:"mirror_endpoints"`
	HealthCheckInterval   time.Duration `json:"health_check_interval" yaml:"health_check_interval" validate:"gt=0"`
	PollTimeoutSeconds    int           `json:"poll_timeout_seconds" yaml:"poll_timeout_seconds" validate:"gte=0"`
	AllowedUpdates        []string      `json:"allowed_updates" yaml:"allowed_updates"`
	DeleteServiceMessages bool          `json:"delete_service_messages" yaml:"delete_service_messages"`
}

// Export содержит настройки выгрузки результатов
type Export struct {
	Format string `json:"format" yaml:"format" validate:"oneof=console excel sqlite"`
	Path   string `json:"path" yaml:"path" validate:"required_unless=Format console"`
}

// Logging содержит конфигурацию логирования
type Logging struct {
	Level  string `json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" yaml:"format" validate:"oneof=json text"`
}

// Config содержит конфигурацию приложения
type Config struct {
	Server     Server     `json:"server" yaml:"server"`
	Processing Processing `json:"processing" yaml:"processing"`
	Normalizer Normalizer `json:"normalizer" yaml:"normalizer"`
	Bot        Bot        `json:"bot" yaml:"bot"`
	Export     Export     `json:"export" yaml:"export"`
	Logging    Logging    `json:"logging" yaml:"logging"`
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
func defaultConfig() *Config {
	return &Config{
		Server: Server{
			Host:            DefaultServerHost,
			Port:            DefaultServerPort,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxUploadSizeMB: DefaultMaxUploadSizeMB,
		},
		Processing: Processing{
			TaskTimeout:     DefaultTaskTimeout,
			CacheTTL:        DefaultCacheTTL,
			CleanupInterval: DefaultCleanupInterval,
		},
		Normalizer: Normalizer{
			MaxDepth: DefaultMaxDepth,
		},
		Bot: Bot{
			APIEndpoint:         DefaultBotAPIEndpoint,
			PollTimeoutSeconds:  DefaultPollTimeoutSeconds,
			HealthCheckInterval: DefaultHealthCheckInterval,
		},
		Export: Export{
			Format: DefaultExportFormat,
		},
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadConfig загружает конфигурацию из config.yml, .env файла и переменных окружения
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom загружает конфигурацию из указанного файла. Отсутствие файла
// не считается ошибкой: используются значения по умолчанию.
func LoadConfigFrom(path string) (*Config, error) {
	// Загрузка переменных окружения из .env файла, если он существует
	_ = godotenv.Load()

	cfg := defaultConfig()
	if err := loadFromYAML(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию из env: %w", err)
	}
	return cfg, nil
}

// loadFromYAML накладывает значения из YAML-файла поверх cfg
func loadFromYAML(filename string, cfg *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл конфигурации %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("не удалось разобрать YAML конфигурацию: %w", err)
	}
	return nil
}

// applyEnv переопределяет секреты и часто меняемые параметры из окружения
func applyEnv(cfg *Config) error {
	if token := getEnv("BOT_TOKEN", ""); token != "" {
		cfg.Bot.Token = token
	}
	if level := getEnv("LOG_LEVEL", ""); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if portStr := getEnv("SERVER_PORT", ""); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("недопустимый SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Address возвращает адрес сервера в формате "host:port"
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// MaxUploadSize возвращает ограничение размера загрузки в байтах
func (c *Config) MaxUploadSize() int64 {
	return c.Server.MaxUploadSizeMB << 20
}

// Validate проверяет, являются ли значения конфигурации допустимыми
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("недопустимое значение %s: %s", fieldPath(verrs[0].Namespace()), describe(verrs[0]))
		}
		return fmt.Errorf("ошибка проверки конфигурации: %w", err)
	}
	return nil
}

// ValidateBot дополнительно требует токен бота
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Bot.Token == "" || c.Bot.Token == "YOUR_TELEGRAM_BOT_TOKEN" {
		return errors.New("bot.token не настроен")
	}
	return nil
}

// fieldPath переводит "Config.Server.Port" в "server.port"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnake(p)
	}
	return strings.Join(parts, ".")
}

func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return "должно быть одним из: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "required_unless":
		return "обязательно для выбранного формата"
	case "gt":
		return "должно быть положительным"
	case "gte":
		return "должно быть неотрицательным"
	case "min", "max":
		return "вне допустимого диапазона"
	default:
		return fe.Tag()
	}
}

// getEnv извлекает значение переменной окружения или возвращает значение по умолчанию, если она не установлена
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
