package mysql

import (
	"Lee_Blog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

// Update 只改作者可编辑的字段，created_at 不动
func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Model(post).Select("text", "group_id", "image").Updates(map[string]any{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image":    post.Image,
	}).Error
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Group").First(&post, id).Error
	return &post, err
}

func (r *PostRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Count(&n).Error
	return n, err
}

// ListAll 全站帖子，新帖在前
func (r *PostRepository) ListAll(offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByGroup(groupID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("group_id = ?", groupID).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListByGroup(groupID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.
		Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) CountByAuthor(authorID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListByAuthor(authorID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.
		Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// feedScope 关注的人发的帖子
func (r *PostRepository) feedScope(userID uint64) *gorm.DB {
	sub := r.DB.Model(&model.Follow{}).Select("author_id").Where("user_id = ?", userID)
	return r.DB.Model(&model.Post{}).Where("author_id IN (?)", sub)
}

func (r *PostRepository) CountFeed(userID uint64) (int64, error) {
	var n int64
	err := r.feedScope(userID).Count(&n).Error
	return n, err
}

func (r *PostRepository) ListFeed(userID uint64, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.feedScope(userID).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}
