package service

import (
	"errors"

	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/redis"

	"go.uber.org/zap"
)

var ErrCodeMismatch = errors.New("verification failed")

type EmailService struct {
	rEmail *redis.EmailRepository
	smtp   pkg.SMTPConfig
	log    *zap.SugaredLogger
}

func NewEmailService(smtp pkg.SMTPConfig, log *zap.SugaredLogger) *EmailService {
	return &EmailService{
		rEmail: &redis.EmailRepository{},
		smtp:   smtp,
		log:    log,
	}
}

// SendResetCode 生成验证码写入 redis，邮件异步发，发信失败只记日志
func (s *EmailService) SendResetCode(email string) error {
	code, err := pkg.NewResetCode()
	if err != nil {
		return err
	}
	if err := s.rEmail.SetResetCode(email, code); err != nil {
		return err
	}

	go func() {
		if err := pkg.SendResetCodeEmail(s.smtp, email, code, redis.DefaultResetCodeTTL); err != nil {
			s.log.Errorw("send reset code failed", "email", email, "error", err)
		}
	}()
	return nil
}

// VerifyResetCode 校验并销毁验证码，一次有效
func (s *EmailService) VerifyResetCode(email, code string) error {
	stored, err := s.rEmail.GetResetCode(email)
	if err != nil {
		return ErrCodeMismatch
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.rEmail.DeleteResetCode(email)
}
