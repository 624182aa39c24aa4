package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config содержит все настройки админского каталога
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 5000, как у исходного фронтенда)
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных
}

// RedisConfig - настройки Redis для кеширования списка категорий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки producer'а событий о товарах
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
}

// CatalogConfig - поведенческие настройки каталога
type CatalogConfig struct {
	// RequiredImages - сколько слотов изображений обязательны при создании товара (1..3).
	// Валидация "все или ничего": либо заполнены все обязательные слоты, либо 400.
	RequiredImages int
	// LegacyUpdate включает старое поведение обновления товара:
	// все текстовые поля и цена перезаписываются безусловно, даже пустыми значениями.
	LegacyUpdate bool
	// UploadDir - если задан, сырые multipart-загрузки дублируются на диск
	// (вариант деплоя с локальной директорией, по умолчанию выключен)
	UploadDir string
	// CacheWarmSchedule - cron-расписание прогрева кеша категорий
	CacheWarmSchedule string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	requiredImages, err := strconv.Atoi(getEnv("CATALOG_REQUIRED_IMAGES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_REQUIRED_IMAGES value: %w", err)
	}
	if requiredImages < 1 || requiredImages > 3 {
		return nil, fmt.Errorf("CATALOG_REQUIRED_IMAGES must be between 1 and 3, got %d", requiredImages)
	}

	legacyUpdate, err := strconv.ParseBool(getEnv("CATALOG_LEGACY_UPDATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_LEGACY_UPDATE value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "5000"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "ks_scientifique"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		Catalog: CatalogConfig{
			RequiredImages:    requiredImages,
			LegacyUpdate:      legacyUpdate,
			UploadDir:         getEnv("CATALOG_UPLOAD_DIR", ""),
			CacheWarmSchedule: getEnv("CATALOG_CACHE_WARM_SCHEDULE", "@hourly"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
