package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Empty(t, cfg.AccessSecret)
	assert.Empty(t, cfg.KafkaBrokers)
}

// 没有业务默认值的键（密钥、broker 列表等）也必须能被环境变量覆盖
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BLOG_ACCESS_SECRET", "from-env")
	t.Setenv("BLOG_REFRESH_SECRET", "refresh-from-env")
	t.Setenv("BLOG_REDIS_PASSWORD", "redis-pass")
	t.Setenv("BLOG_KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("BLOG_SMTP_PORT", "2525")
	t.Setenv("BLOG_PAGE_SIZE", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.AccessSecret)
	assert.Equal(t, "refresh-from-env", cfg.RefreshSecret)
	assert.Equal(t, "redis-pass", cfg.RedisPassword)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 7, cfg.PageSize)
}
