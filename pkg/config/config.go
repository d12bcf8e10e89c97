package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig 全局配置实例
var AppConfig *Config

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         string        `yaml:"port"`
	Mode         string        `yaml:"mode"`
	Timezone     string        `yaml:"timezone"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	LogLevel        string        `yaml:"log_level"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	SigningKey string        `yaml:"signing_key"`
	Expiry     time.Duration `yaml:"expiry"`
	Issuer     string        `yaml:"issuer"`
}

// InitConfig 初始化配置
func InitConfig() error {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	config := &Config{}
	setDefaults(config)

	// 尝试从配置文件加载
	if err := loadFromFile(config); err != nil {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	// 从环境变量覆盖配置
	if err := loadFromEnv(config); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	AppConfig = config
	return nil
}

// GetConfig 获取全局配置，未初始化时返回默认配置
func GetConfig() *Config {
	if AppConfig == nil {
		config := &Config{}
		setDefaults(config)
		AppConfig = config
	}
	return AppConfig
}

// setDefaults 设置默认配置
func setDefaults(config *Config) {
	config.Server = ServerConfig{
		Port:         "8801",
		Mode:         "debug",
		Timezone:     "Asia/Shanghai",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	config.Database = DatabaseConfig{
		Driver:          "mysql",
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		LogLevel:        "info",
	}
	config.Redis = RedisConfig{
		Addr:         "localhost:6379",
		DB:           0,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	config.JWT = JWTConfig{
		Expiry: 24 * time.Hour,
		Issuer: "tip-tracker-app",
	}
}

// loadFromFile 从 yaml 配置文件加载
func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

// loadFromEnv 从环境变量覆盖配置
func loadFromEnv(config *Config) error {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		config.Server.Timezone = tz
	}
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}
	if dsn := os.Getenv("Mysql"); dsn != "" && config.Database.DSN == "" {
		config.Database.DSN = dsn
	}
	if level := os.Getenv("DB_LOG_LEVEL"); level != "" {
		config.Database.LogLevel = level
	}
	if maxOpen := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpen != "" {
		parsed, err := strconv.Atoi(maxOpen)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid DB_MAX_OPEN_CONNS value: %s", maxOpen)
		}
		config.Database.MaxOpenConns = parsed
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		parsed, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %s", db)
		}
		config.Redis.DB = parsed
	}
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		config.JWT.SigningKey = key
	}
	return nil
}
