package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PageCache 页面级响应缓存。redis 实现见 repository/redis，
// redis 不可用时退化到进程内的 MemoryCache。
type PageCache interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, body []byte, ttl time.Duration) error
	Clear(ctx context.Context, path string) error
}

type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// CachePage 按 RequestURI 缓存 200 响应，命中时原样回放。
// 只在 TTL 到期或显式 Clear 后才会重新渲染，中间的写入不触发失效。
func CachePage(cache PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.URL.RequestURI()

		if body, ok, err := cache.Get(c.Request.Context(), key); err == nil && ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			_ = cache.Set(c.Request.Context(), key, bw.buf.Bytes(), ttl)
		}
	}
}

type memoryEntry struct {
	body      []byte
	expiresAt time.Time
}

// MemoryCache 进程内兜底实现，语义与 redis 版一致
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Get(_ context.Context, path string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[path]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, path)
		return nil, false, nil
	}
	return e.body, true, nil
}

func (m *MemoryCache) Set(_ context.Context, path string, body []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(body))
	copy(cp, body)
	m.entries[path] = memoryEntry{body: cp, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryCache) Clear(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, path)
	return nil
}
