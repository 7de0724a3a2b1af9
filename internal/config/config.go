package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Типы AI клиентов
const (
	AIClientOpenAI = "openai"
	AIClientOllama = "ollama"
)

// Config содержит конфигурацию сервиса генерации маркетингового контента.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput   string `envconfig:"LOG_OUTPUT" default:"stdout"` // Через запятую: stdout, stderr, пути к файлам
	ServerPort  string `envconfig:"SERVER_PORT" default:"5000"`
	SecretsDir  string `envconfig:"SECRETS_DIR" default:"/run/secrets"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Настройки PostgreSQL
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string        `envconfig:"DB_PORT" default:"5432"`
	DBUser         string        `envconfig:"DB_USER" default:"postgres"`
	DBName         string        `envconfig:"DB_NAME" default:"content_db"`
	DBSSLMode      string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns     int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout  time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	DBConnAttempts int           `envconfig:"DB_CONNECT_ATTEMPTS" default:"10"`
	DBConnDelay    time.Duration `envconfig:"DB_CONNECT_DELAY" default:"3s"`
	// Секрет: файл db_password или переменная DB_PASSWORD
	DBPassword string `envconfig:"DB_PASSWORD"`

	// Настройки AI
	AIClientType string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL    string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel      string        `envconfig:"AI_MODEL" default:"gpt-4o"`
	AITimeout    time.Duration `envconfig:"AI_TIMEOUT" default:"120s"`
	// Секрет: файл ai_api_key или переменная AI_API_KEY
	AIAPIKey string `envconfig:"AI_API_KEY"`

	// Настройки RabbitMQ (пустой URL отключает публикацию событий)
	RabbitMQURL           string `envconfig:"RABBITMQ_URL"`
	GenerationEventsQueue string `envconfig:"GENERATION_EVENTS_QUEUE" default:"generation_events"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetMaskedDSN возвращает DSN с замаскированным паролем для логирования
func (c *Config) GetMaskedDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetLogOutputPaths разбивает LogOutput на список путей.
func (c *Config) GetLogOutputPaths() []string {
	if c.LogOutput == "" {
		return nil
	}
	return strings.Split(c.LogOutput, ",")
}

// GetAllowedOrigins splits the CORSAllowedOrigins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig загружает конфигурацию из .env (если есть), переменных окружения и секретов.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if err := cfg.loadSecrets(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("Конфигурация загружена:")
	log.Printf("  Env: %s, Port: %s, LogLevel: %s", cfg.Env, cfg.ServerPort, cfg.LogLevel)
	log.Printf("  DB DSN: %s", cfg.GetMaskedDSN())
	log.Printf("  AI Client: %s, Model: %s, Base URL: %s, Timeout: %v", cfg.AIClientType, cfg.AIModel, cfg.AIBaseURL, cfg.AITimeout)
	if cfg.RabbitMQURL != "" {
		log.Printf("  Generation events queue: %s", cfg.GenerationEventsQueue)
	} else {
		log.Println("  RabbitMQ URL not set, generation events disabled")
	}

	return &cfg, nil
}

// loadSecrets читает секреты из файлов. Если файла нет, остается значение из окружения.
func (c *Config) loadSecrets() error {
	dbPassword, err := ReadSecret(c.SecretsDir, "db_password")
	switch {
	case err == nil:
		c.DBPassword = dbPassword
	case c.DBPassword == "":
		return fmt.Errorf("пароль БД не задан: %w", err)
	}

	apiKey, err := ReadSecret(c.SecretsDir, "ai_api_key")
	if err == nil {
		c.AIAPIKey = apiKey
	}
	return nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch strings.ToLower(c.AIClientType) {
	case AIClientOpenAI:
		if c.AIAPIKey == "" {
			return fmt.Errorf("AI_API_KEY not set (required for AI_CLIENT_TYPE=%s)", AIClientOpenAI)
		}
	case AIClientOllama:
	default:
		return fmt.Errorf("неизвестный тип AI клиента: '%s'", c.AIClientType)
	}
	if c.AIModel == "" {
		return fmt.Errorf("AI_MODEL not set")
	}
	return nil
}
