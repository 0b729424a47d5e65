package service

import (
	"context"
	"errors"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrTextRequired = errors.New("text required")
	ErrUnknownGroup = errors.New("unknown group")
	ErrNotAuthor    = errors.New("not the author")
)

type PostService struct {
	repo       *mysql.PostRepository
	groupRepo  *mysql.GroupRepository
	userRepo   *mysql.UserRepository
	followRepo *mysql.FollowRepository
	pageSize   int
}

func NewPostService(db *gorm.DB, pageSize int) *PostService {
	return &PostService{
		repo:       &mysql.PostRepository{DB: db},
		groupRepo:  &mysql.GroupRepository{DB: db},
		userRepo:   &mysql.UserRepository{DB: db},
		followRepo: &mysql.FollowRepository{DB: db},
		pageSize:   pageSize,
	}
}

// ListIndex 首页：全站帖子分页
func (s *PostService) ListIndex(pageParam string) ([]model.Post, pkg.Page, error) {
	total, err := s.repo.CountAll()
	if err != nil {
		return nil, pkg.Page{}, err
	}
	page := pkg.Paginate(pageParam, total, s.pageSize)
	list, err := s.repo.ListAll(page.Offset, page.Limit)
	return list, page, err
}

// ListGroup 分组页：slug 不存在时返回 gorm.ErrRecordNotFound
func (s *PostService) ListGroup(slug, pageParam string) (*model.Group, []model.Post, pkg.Page, error) {
	group, err := s.groupRepo.FindBySlug(slug)
	if err != nil {
		return nil, nil, pkg.Page{}, err
	}
	total, err := s.repo.CountByGroup(group.ID)
	if err != nil {
		return nil, nil, pkg.Page{}, err
	}
	page := pkg.Paginate(pageParam, total, s.pageSize)
	list, err := s.repo.ListByGroup(group.ID, page.Offset, page.Limit)
	return group, list, page, err
}

// ListProfile 个人页：帖子分页 + 当前查看者是否关注了该作者（匿名恒 false）
func (s *PostService) ListProfile(ctx context.Context, username, pageParam string, viewerID uint64) (*model.User, []model.Post, pkg.Page, bool, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, nil, pkg.Page{}, false, err
	}
	total, err := s.repo.CountByAuthor(author.ID)
	if err != nil {
		return nil, nil, pkg.Page{}, false, err
	}
	page := pkg.Paginate(pageParam, total, s.pageSize)
	list, err := s.repo.ListByAuthor(author.ID, page.Offset, page.Limit)
	if err != nil {
		return nil, nil, pkg.Page{}, false, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, nil, pkg.Page{}, false, err
		}
	}
	return author, list, page, following, nil
}

// ListFeed 关注流：只含被关注作者的帖子，新帖在前
func (s *PostService) ListFeed(userID uint64, pageParam string) ([]model.Post, pkg.Page, error) {
	total, err := s.repo.CountFeed(userID)
	if err != nil {
		return nil, pkg.Page{}, err
	}
	page := pkg.Paginate(pageParam, total, s.pageSize)
	list, err := s.repo.ListFeed(userID, page.Offset, page.Limit)
	return list, page, err
}

// GetPost 详情页用，找不到返回 gorm.ErrRecordNotFound
func (s *PostService) GetPost(id uint64) (*model.Post, error) {
	return s.repo.FindByID(id)
}

// GroupChoices 建帖表单的分组选项
func (s *PostService) GroupChoices() ([]model.Group, error) {
	return s.groupRepo.List()
}

// GroupExists 表单校验用
func (s *PostService) GroupExists(id uint64) (bool, error) {
	_, err := s.groupRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreatePost 创建帖子，owner 是当前用户，created_at 由数据库写入时定格
func (s *PostService) CreatePost(authorID uint64, text string, groupID *uint64, image string) (*model.Post, error) {
	if text == "" {
		return nil, ErrTextRequired
	}
	if groupID != nil {
		ok, err := s.GroupExists(*groupID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownGroup
		}
	}

	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		GroupID:  groupID,
		Image:    image,
	}
	if err := s.repo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost 只有作者能改；image 为空串时保留旧图
func (s *PostService) EditPost(userID, postID uint64, text string, groupID *uint64, image string) (*model.Post, error) {
	post, err := s.repo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrNotAuthor
	}
	if text == "" {
		return nil, ErrTextRequired
	}
	if groupID != nil {
		ok, err := s.GroupExists(*groupID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownGroup
		}
	}

	post.Text = text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}
	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}
