package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Sandbox   SandboxConfig `mapstructure:"sandbox"`
	Redis     RedisConfig
	Log       LogConfig       `mapstructure:"log"`
	Engine    EngineConfig    `mapstructure:"engine"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig Driver 取值 mysql / postgres / sqlite
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	Path      string `mapstructure:"path"` // sqlite 文件路径
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// SandboxConfig 外部代码沙箱（Judge0 兼容接口），URL 为空时不启用
type SandboxConfig struct {
	APIKey         string `mapstructure:"api_key"`
	URL            string
	Host           string
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int `mapstructure:"pool_size"`
}

// LogConfig Level 为空时按 server.mode 决定（debug 模式输出 debug 日志）
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// EngineConfig 评分引擎的可调参数，支持热更新
type EngineConfig struct {
	MinContentLength      int `mapstructure:"min_content_length"`
	PassThreshold         int `mapstructure:"pass_threshold"`
	EncourageFirstAt      int `mapstructure:"encourage_first_at"`
	EncourageSecondAt     int `mapstructure:"encourage_second_at"`
	RecommendationTTLSecs int `mapstructure:"recommendation_ttl_seconds"`
}

// DefaultEngineConfig 未配置时的默认值
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinContentLength:      10,
		PassThreshold:         70,
		EncourageFirstAt:      7,
		EncourageSecondAt:     10,
		RecommendationTTLSecs: 300,
	}
}

func (e EngineConfig) RecommendationTTL() time.Duration {
	return time.Duration(e.RecommendationTTLSecs) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DEVCOLLAB")
	v.AutomaticEnv()

	defaults := DefaultEngineConfig()
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("log.file", "logs/engine.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("sandbox.timeout_seconds", 10)
	v.SetDefault("engine.min_content_length", defaults.MinContentLength)
	v.SetDefault("engine.pass_threshold", defaults.PassThreshold)
	v.SetDefault("engine.encourage_first_at", defaults.EncourageFirstAt)
	v.SetDefault("engine.encourage_second_at", defaults.EncourageSecondAt)
	v.SetDefault("engine.recommendation_ttl_seconds", defaults.RecommendationTTLSecs)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Sandbox
	v.BindEnv("sandbox.api_key", "SANDBOX_API_KEY")
	v.BindEnv("sandbox.url", "SANDBOX_URL")
	v.BindEnv("sandbox.host", "SANDBOX_HOST")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Engine.EncourageSecondAt <= cfg.Engine.EncourageFirstAt {
		return nil, fmt.Errorf("engine.encourage_second_at (%d) must be greater than engine.encourage_first_at (%d)",
			cfg.Engine.EncourageSecondAt, cfg.Engine.EncourageFirstAt)
	}

	return &cfg, nil
}
