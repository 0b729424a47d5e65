package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"env"`
	HTTPAddr string `mapstructure:"http_addr"`

	MySQLDSN string `mapstructure:"mysql_dsn"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// 列表页每页帖子数
	PageSize int `mapstructure:"page_size"`
	// 首页响应缓存时间
	IndexCacheTTL time.Duration `mapstructure:"index_cache_ttl"`

	AccessSecret  string `mapstructure:"access_secret"`
	RefreshSecret string `mapstructure:"refresh_secret"`

	MediaDir string `mapstructure:"media_dir"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`

	KafkaBrokers []string `mapstructure:"kafka_brokers"`
	KafkaTopic   string   `mapstructure:"kafka_topic"`
}

// Load 读取配置：环境变量（BLOG_ 前缀）优先，可选 yaml 文件兜底
func Load(path string) (*Config, error) {
	v := viper.New()

	// 每个键都要注册默认值：AutomaticEnv 只解析 viper 已知的键，
	// 漏了默认值的键对应的 BLOG_* 环境变量会被静默忽略
	v.SetDefault("env", "dev")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("mysql_dsn", "user:password@tcp(127.0.0.1:3306)/blog?charset=utf8mb4&parseTime=True")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("page_size", 10)
	v.SetDefault("index_cache_ttl", 20*time.Second)
	v.SetDefault("access_secret", "")
	v.SetDefault("refresh_secret", "")
	v.SetDefault("media_dir", "media")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 0)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "")
	v.SetDefault("kafka_brokers", []string{})
	v.SetDefault("kafka_topic", "blog.follow.events")

	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
