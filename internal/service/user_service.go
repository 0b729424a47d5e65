package service

import (
	"errors"

	"Lee_Blog/internal/model"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, errors.New("username, email and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(account, password string) (*pkg.TokenPair, error) {
	user, err := s.repo.FindByAccount(account)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	return pkg.GeneratePair(user.ID, user.Username)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.TokenPair, error) {
	return pkg.Refresh(refreshToken)
}

// SendResetCode 找回密码第一步：给注册邮箱发验证码
func (s *UserService) SendResetCode(email string) error {
	if _, err := s.repo.FindByEmail(email); err != nil {
		return errors.New("email not registered")
	}
	return s.emailSvc.SendResetCode(email)
}

// ResetPassword 找回密码第二步：验证码正确则改密
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	if newPassword == "" {
		return errors.New("new password required")
	}
	if err := s.emailSvc.VerifyResetCode(email, code); err != nil {
		return err
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}
