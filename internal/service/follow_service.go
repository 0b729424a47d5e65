package service

import (
	"context"
	"errors"
	"time"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow    = errors.New("cannot follow self")
	ErrInvalidUserID = errors.New("invalid user id")
)

type FollowService struct {
	repo     *mysql.FollowRepository
	userRepo *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:     &mysql.FollowRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// AuthorByUsername 关注/取关入口按用户名找作者，找不到透传 gorm.ErrRecordNotFound
func (s *FollowService) AuthorByUsername(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}

// Follow 关注作者。自关注不落库，由调用方决定怎么回应（当前是静默跳转）。
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 || authorID == 0 {
		return false, ErrInvalidUserID
	}
	if userID == authorID {
		return false, ErrSelfFollow
	}
	return s.repo.Follow(ctx, userID, authorID)
}

// Unfollow 取关，没有关注关系时是 no-op
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint64) (bool, error) {
	if userID == 0 || authorID == 0 {
		return false, ErrInvalidUserID
	}
	if userID == authorID {
		return false, ErrSelfFollow
	}
	return s.repo.Unfollow(ctx, userID, authorID)
}

type Sender func(ctx context.Context, ev *model.FollowEvent) error

// OutboxRelayer 定时把待投递的关注事件推给 sender（Kafka 或日志）
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *zap.SugaredLogger
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, log *zap.SugaredLogger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
		log:       log,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		r.log.Errorw("outbox query failed", "error", err)
		return
	}
	for i := range rows {
		ev := rows[i]
		if err = r.sender(ctx, &ev); err != nil {
			_ = r.repo.RetryUpdate(ctx, ev.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ev.ID)
	}
}

// LogSender 没配 Kafka 时的默认 sender，只打日志
func LogSender(log *zap.SugaredLogger) Sender {
	return func(ctx context.Context, ev *model.FollowEvent) error {
		log.Infow("follow event",
			"type", ev.EventType,
			"user", ev.UserID,
			"author", ev.AuthorID,
			"payload", ev.Payload,
		)
		return nil
	}
}
