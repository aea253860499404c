package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置，config.yaml + SCHOOLBOOKS_* 环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SMS      SMSConfig      `mapstructure:"sms"`
	HIBP     HIBPConfig     `mapstructure:"hibp"`
	TLD      TLDConfig      `mapstructure:"tld"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Mode string `mapstructure:"mode"` // debug / release
	Addr string `mapstructure:"addr"`
	// 每客户端限流：每秒令牌数与突发量
	RateLimit  float64 `mapstructure:"rate_limit"`
	RateBurst  int     `mapstructure:"rate_burst"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Issuer string        `mapstructure:"issuer"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type SMSConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
	Sender  string `mapstructure:"sender"`
}

type HIBPConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type TLDConfig struct {
	SourceURL string        `mapstructure:"source_url"`
	Interval  time.Duration `mapstructure:"interval"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Load 读取配置文件并套用默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("SCHOOLBOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.mode", "release")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("jwt.issuer", "schoolbooks")
	v.SetDefault("hibp.base_url", "https://api.pwnedpasswords.com")
	v.SetDefault("tld.source_url", "https://data.iana.org/TLD/tlds-alpha-by-domain.txt")
	v.SetDefault("tld.interval", 7*24*time.Hour)
	v.SetDefault("tld.ttl", 7*24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时仅靠默认值与环境变量运行
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
