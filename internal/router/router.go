package router

import (
	"Lee_Blog/internal/config"
	"Lee_Blog/internal/handler"
	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitRouter 组装全部路由。路径和跳转语义固定：
// 未登录访问受限路径 -> 302 登录页带 next；首页响应走页面缓存。
func InitRouter(db *gorm.DB, cache middleware.PageCache, cfg *config.Config, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	smtpCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	emailSvc := service.NewEmailService(smtpCfg, log)
	userSvc := service.NewUserService(db, emailSvc)

	user := handler.NewUserHandler(userSvc)
	post := handler.NewPostHandler(db, cfg.PageSize, cfg.MediaDir)
	comment := handler.NewCommentHandler(db)
	follow := handler.NewFollowHandler(db, cfg.PageSize)

	// 账号相关接口
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup/", user.Signup)
		authGroup.GET("/login/", user.LoginPage)
		authGroup.POST("/login/", user.Login)
		authGroup.POST("/logout/", user.Logout)
		authGroup.POST("/token/refresh/", user.TokenRefresh)
		authGroup.POST("/password_reset/", user.PasswordReset)
		authGroup.POST("/password_reset/confirm/", user.PasswordResetConfirm)
	}

	// 公开页面
	r.GET("/", middleware.CachePage(cache, cfg.IndexCacheTTL), post.Index)
	r.GET("/group/:slug/", post.GroupPosts)
	r.GET("/profile/:username/", middleware.OptionalAuth(), post.Profile)
	r.GET("/posts/:id/", post.Detail)

	// 登录态页面
	login := r.Group("/", middleware.LoginRequired())
	{
		login.GET("/create/", post.CreateForm)
		login.POST("/create/", post.Create)
		login.GET("/posts/:id/edit/", post.EditForm)
		login.POST("/posts/:id/edit/", post.Edit)
		login.POST("/posts/:id/comment/", comment.Add)
		login.GET("/follow/", follow.Feed)
		login.GET("/profile/:username/follow/", follow.Follow)
		login.GET("/profile/:username/unfollow/", follow.Unfollow)
	}

	return r
}
