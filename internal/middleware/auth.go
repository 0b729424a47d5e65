package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"Lee_Blog/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUsernameKey = "username"

	AuthCookieName = "auth_token"
	LoginPath      = "/auth/login/"
)

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AuthCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// LoginRequired 未登录（或 token 失效）一律 302 到登录页，带上回跳地址
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			redirectToLogin(c)
			return
		}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			redirectToLogin(c)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuth 公开页面用：能识别出登录用户就注入身份，识别不出也放行
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if claims, err := pkg.ParseAccess(tokenStr); err == nil {
				c.Set(ContextUserIDKey, claims.UserID)
				c.Set(ContextUsernameKey, claims.Username)
			}
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, LoginPath+"?next="+next)
	c.Abort()
}

// CurrentUserID 取中间件注入的用户ID，0 表示匿名
func CurrentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

func CurrentUsername(c *gin.Context) string {
	if v, ok := c.Get(ContextUsernameKey); ok {
		if name, ok2 := v.(string); ok2 {
			return name
		}
	}
	return ""
}
