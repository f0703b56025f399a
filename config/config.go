package config

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gigflow.io/ledger/driver"
)

const ServerStartPort = ":8080"

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Maps     MapsConfig
	Backup   BackupConfig
	Reports  ReportsConfig
	Receipts ReceiptsConfig
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type MapsConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type BackupConfig struct {
	Dir           string        `mapstructure:"dir"`
	RetentionDays int           `mapstructure:"retention_days"`
	Interval      time.Duration `mapstructure:"interval"`
}

type ReportsConfig struct {
	MileageRate float64       `mapstructure:"mileage_rate"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type ReceiptsConfig struct {
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
	LocalDir string `mapstructure:"local_dir"`
}

func ProvideApplicationConfig() (*Config, error) {

	viper.SetConfigFile("./config.yaml")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func ProvidePostgresPool(appConfig *Config) (driver.PostgresPool, error) {

	conn, err := driver.ConnectSQL(appConfig.Postgres.URL)
	if err != nil {
		return nil, err
	}

	return conn.Pool, nil
}

func ProvideRedisClient(appConfig *Config) (*redis.Client, error) {
	return driver.ConnectRedis(appConfig.Redis.Addr, appConfig.Redis.Password, 0)
}

func ProvideNATSConn(appConfig *Config, logger *zap.Logger) (*nats.Conn, error) {

	url := appConfig.NATS.URL
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url)
	if err != nil {
		logger.Error("error connecting to nats", zap.Error(err))
		return nil, err
	}

	return nc, nil
}

func NewLogger() *zap.Logger {

	logger, _ := zap.NewProduction()
	return logger
}
