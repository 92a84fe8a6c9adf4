package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
}

var (
	configInstance *Config
	once           sync.Once
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	URI     string
	Enabled bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Enabled bool
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

func LoadConfig() (*Config, error) {
	once.Do(func() {
		viper.SetDefault("PODFOLIO_HOST", "")
		viper.SetDefault("PODFOLIO_PORT", "8080")
		viper.SetDefault("PODFOLIO_READ_TIMEOUT", 30*time.Second)
		viper.SetDefault("PODFOLIO_WRITE_TIMEOUT", 30*time.Second)
		viper.SetDefault("PODFOLIO_IDLE_TIMEOUT", 60*time.Second)
		viper.SetDefault("PODFOLIO_JWT_SECRET", "secret")
		viper.SetDefault("PODFOLIO_JWT_EXPIRE", "24h")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_DB", "podfolio")
		viper.SetDefault("POSTGRES_SSLMODE", "disable")
		viper.SetDefault("REDIS_URL", "redis://127.0.0.1:6379/0")
		viper.SetDefault("REDIS_ENABLED", true)
		viper.SetDefault("KAFKA_BROKERS", []string{"127.0.0.1:9092"})
		viper.SetDefault("KAFKA_TOPIC", "podfolio.notifications")
		viper.SetDefault("KAFKA_ENABLED", false)
		viper.AutomaticEnv()

		configInstance = &Config{
			Server: ServerConfig{
				Host:         viper.GetString("PODFOLIO_HOST"),
				Port:         viper.GetString("PODFOLIO_PORT"),
				ReadTimeout:  viper.GetDuration("PODFOLIO_READ_TIMEOUT"),
				WriteTimeout: viper.GetDuration("PODFOLIO_WRITE_TIMEOUT"),
				IdleTimeout:  viper.GetDuration("PODFOLIO_IDLE_TIMEOUT"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("POSTGRES_HOST"),
				Port:     viper.GetString("POSTGRES_PORT"),
				User:     viper.GetString("POSTGRES_USER"),
				Password: viper.GetString("POSTGRES_PASSWORD"),
				DBName:   viper.GetString("POSTGRES_DB"),
				SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
			},
			Redis: RedisConfig{
				URI:     viper.GetString("REDIS_URL"),
				Enabled: viper.GetBool("REDIS_ENABLED"),
			},
			Kafka: KafkaConfig{
				Brokers: viper.GetStringSlice("KAFKA_BROKERS"),
				Topic:   viper.GetString("KAFKA_TOPIC"),
				Enabled: viper.GetBool("KAFKA_ENABLED"),
			},
			JWT: JWTConfig{
				Secret:         viper.GetString("PODFOLIO_JWT_SECRET"),
				ExpirationTime: viper.GetDuration("PODFOLIO_JWT_EXPIRE"),
			},
		}
	})

	return configInstance, nil
}
