package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	svc        *service.PostService
	commentSvc *service.CommentService
	mediaDir   string
}

func NewPostHandler(db *gorm.DB, pageSize int, mediaDir string) *PostHandler {
	return &PostHandler{
		svc:        service.NewPostService(db, pageSize),
		commentSvc: service.NewCommentService(db),
		mediaDir:   mediaDir,
	}
}

// Index 首页帖子列表，响应整体走页面缓存
func (h *PostHandler) Index(c *gin.Context) {
	posts, page, err := h.svc.ListIndex(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}

// GroupPosts 分组帖子列表
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, posts, page, err := h.svc.ListGroup(c.Param("slug"), c.Query("page"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group, "posts": posts, "page": page})
}

// Profile 作者主页，带当前查看者是否已关注
func (h *PostHandler) Profile(c *gin.Context) {
	viewerID := middleware.CurrentUserID(c)
	author, posts, page, following, err := h.svc.ListProfile(
		c.Request.Context(), c.Param("username"), c.Query("page"), viewerID,
	)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":    author,
		"following": following,
		"posts":     posts,
		"page":      page,
	})
}

// Detail 帖子详情 + 评论
func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.svc.GetPost(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "detail failed"})
		return
	}

	comments, err := h.commentSvc.ListByPost(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "detail failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments})
}

// CreateForm 建帖表单上下文
func (h *PostHandler) CreateForm(c *gin.Context) {
	groups, err := h.svc.GroupChoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "form failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": false, "groups": groups})
}

// Create 建帖。校验失败返回 200 + 字段错误，成功 302 到作者主页。
func (h *PostHandler) Create(c *gin.Context) {
	form, errs := h.bindPostForm(c)
	if len(errs) > 0 {
		c.JSON(http.StatusOK, gin.H{"is_edit": false, "errors": errs})
		return
	}

	imagePath := ""
	if form.file != nil {
		p, err := pkg.SaveImage(form.file, h.mediaDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "image save failed"})
			return
		}
		imagePath = p
	}

	userID := middleware.CurrentUserID(c)
	if _, err := h.svc.CreatePost(userID, form.text, form.groupID, imagePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "create failed"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+middleware.CurrentUsername(c)+"/")
}

// EditForm 编辑表单上下文，非作者直接跳回详情页
func (h *PostHandler) EditForm(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	post, err := h.svc.GetPost(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "form failed"})
		return
	}
	if post.AuthorID != middleware.CurrentUserID(c) {
		redirectToDetail(c, postID)
		return
	}

	groups, err := h.svc.GroupChoices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "form failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_edit": true, "post": post, "groups": groups})
}

// Edit 编辑帖子。非作者静默跳回详情，不报错。
func (h *PostHandler) Edit(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	// 先确认帖子存在且是作者本人，再碰表单里的上传文件：
	// 非作者的提交不能在 media 目录留下孤儿文件
	post, err := h.svc.GetPost(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "edit failed"})
		return
	}
	userID := middleware.CurrentUserID(c)
	if post.AuthorID != userID {
		redirectToDetail(c, postID)
		return
	}

	form, errs := h.bindPostForm(c)
	if len(errs) > 0 {
		c.JSON(http.StatusOK, gin.H{"is_edit": true, "errors": errs})
		return
	}

	imagePath := ""
	if form.file != nil {
		p, err := pkg.SaveImage(form.file, h.mediaDir)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "image save failed"})
			return
		}
		imagePath = p
	}

	_, err = h.svc.EditPost(userID, postID, form.text, form.groupID, imagePath)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
	case errors.Is(err, service.ErrNotAuthor):
		redirectToDetail(c, postID)
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "edit failed"})
	default:
		redirectToDetail(c, postID)
	}
}

type postFormValues struct {
	text    string
	groupID *uint64
	file    *multipart.FileHeader
}

// bindPostForm 解析建帖/编辑表单并做字段校验，返回的 map 非空说明有错
func (h *PostHandler) bindPostForm(c *gin.Context) (postFormValues, map[string]string) {
	form := postFormValues{}
	errs := map[string]string{}

	form.text = strings.TrimSpace(c.PostForm("text"))
	if form.text == "" {
		errs["text"] = "This field is required."
	}

	if groupStr := c.PostForm("group"); groupStr != "" {
		id, err := strconv.ParseUint(groupStr, 10, 64)
		if err != nil {
			errs["group"] = "Select a valid choice."
		} else {
			ok, lookupErr := h.svc.GroupExists(id)
			if lookupErr != nil || !ok {
				errs["group"] = "Select a valid choice."
			} else {
				form.groupID = &id
			}
		}
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		if pkg.SniffImage(file) != nil {
			errs["image"] = "Upload a valid image."
		} else {
			form.file = file
		}
	}

	return form, errs
}

func parsePostID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "post not found"})
		return 0, false
	}
	return id, true
}

func redirectToDetail(c *gin.Context, postID uint64) {
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(postID, 10)+"/")
}
