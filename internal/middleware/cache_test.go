package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedEngine(cache PageCache, ttl time.Duration) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0
	r := gin.New()
	r.GET("/", CachePage(cache, ttl), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	return r, &hits
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

// 命中缓存时响应逐字节一致，后端 handler 不再执行
func TestCachePageReplaysIdenticalBody(t *testing.T) {
	cache := NewMemoryCache()
	r, hits := newCachedEngine(cache, time.Minute)

	first := get(r, "/")
	require.Equal(t, http.StatusOK, first.Code)

	second := get(r, "/")
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.Equal(t, 1, *hits)
}

func TestCachePageClearForcesRerender(t *testing.T) {
	cache := NewMemoryCache()
	r, hits := newCachedEngine(cache, time.Minute)

	first := get(r, "/")
	require.NoError(t, cache.Clear(context.Background(), "/"))

	second := get(r, "/")
	assert.NotEqual(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 2, *hits)
}

func TestCachePageExpiresByTTL(t *testing.T) {
	cache := NewMemoryCache()
	r, hits := newCachedEngine(cache, 10*time.Millisecond)

	get(r, "/")
	time.Sleep(20 * time.Millisecond)
	get(r, "/")
	assert.Equal(t, 2, *hits)
}

// 不同的 query 是不同的缓存键
func TestCachePageKeyIncludesQuery(t *testing.T) {
	cache := NewMemoryCache()
	r, hits := newCachedEngine(cache, time.Minute)

	for i := 1; i <= 3; i++ {
		get(r, fmt.Sprintf("/?page=%d", i))
	}
	assert.Equal(t, 3, *hits)
}

func TestMemoryCacheCopiesBody(t *testing.T) {
	cache := NewMemoryCache()
	body := []byte("hello")
	require.NoError(t, cache.Set(context.Background(), "/", body, time.Minute))
	body[0] = 'X'

	got, ok, err := cache.Get(context.Background(), "/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), got)
}
