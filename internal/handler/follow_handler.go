package handler

import (
	"context"
	"errors"
	"net/http"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FollowHandler struct {
	svc     *service.FollowService
	postSvc *service.PostService
}

func NewFollowHandler(db *gorm.DB, pageSize int) *FollowHandler {
	return &FollowHandler{
		svc:     service.NewFollowService(db),
		postSvc: service.NewPostService(db, pageSize),
	}
}

// Feed 关注流：关注作者的帖子，分页规则和其它列表一致
func (h *FollowHandler) Feed(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	posts, page, err := h.postSvc.ListFeed(userID, c.Query("page"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

// Follow 关注作者后跳回其主页。自关注静默忽略。
func (h *FollowHandler) Follow(c *gin.Context) {
	h.mutate(c, h.svc.Follow)
}

// Unfollow 取关后跳回主页，没关注过也是静默成功
func (h *FollowHandler) Unfollow(c *gin.Context) {
	h.mutate(c, h.svc.Unfollow)
}

func (h *FollowHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, authorID uint64) (bool, error)) {
	username := c.Param("username")
	author, err := h.svc.AuthorByUsername(username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "follow failed"})
		return
	}

	userID := middleware.CurrentUserID(c)
	if _, err := op(c.Request.Context(), userID, author.ID); err != nil && !errors.Is(err, service.ErrSelfFollow) {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "follow failed"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
