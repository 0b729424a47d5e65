package service

import (
	"errors"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrEmptyComment = errors.New("comment text required")

type CommentService struct {
	repo     *mysql.CommentRepository
	postRepo *mysql.PostRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		repo:     &mysql.CommentRepository{DB: db},
		postRepo: &mysql.PostRepository{DB: db},
	}
}

// AddComment 给帖子加评论。文本为空返回 ErrEmptyComment，
// 帖子不存在返回 gorm.ErrRecordNotFound。
func (s *CommentService) AddComment(userID, postID uint64, text string) (*model.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Text:     text,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost 详情页的评论列表
func (s *CommentService) ListByPost(postID uint64) ([]model.Comment, error) {
	return s.repo.ListByPost(postID)
}
