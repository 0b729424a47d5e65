package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultResetCodeTTL = 5 * time.Minute
	ResetCodePrefix     = "email:code:reset"
)

var (
	ErrCodeSetFailed = errors.New("reset code set failed")
	ErrCodeNotFound  = errors.New("reset code not found")
	ErrCodeDelFailed = errors.New("reset code delete failed")
)

// EmailRepository 重置密码验证码，带 TTL
type EmailRepository struct{}

func (e *EmailRepository) key(email string) string {
	return fmt.Sprintf("%s:%s", ResetCodePrefix, email)
}

func (e *EmailRepository) SetResetCode(email, code string) error {
	if err := Client.Set(context.Background(), e.key(email), code, DefaultResetCodeTTL).Err(); err != nil {
		return ErrCodeSetFailed
	}
	return nil
}

func (e *EmailRepository) GetResetCode(email string) (string, error) {
	val, err := Client.Get(context.Background(), e.key(email)).Result()
	if err != nil {
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteResetCode 校验通过后删除，验证码一次性
func (e *EmailRepository) DeleteResetCode(email string) error {
	if err := Client.Del(context.Background(), e.key(email)).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
