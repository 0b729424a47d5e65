package handler

import (
	"errors"
	"net/http"
	"strings"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{svc: service.NewCommentService(db)}
}

// Add 发表评论。无论成功与否都跳回详情页，空评论静默丢弃。
func (h *CommentHandler) Add(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	userID := middleware.CurrentUserID(c)
	text := strings.TrimSpace(c.PostForm("text"))

	_, err := h.svc.AddComment(userID, postID, text)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	case errors.Is(err, service.ErrEmptyComment):
		// 无效提交不提示错误，直接回详情页
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "comment failed"})
		return
	}
	redirectToDetail(c, postID)
}
