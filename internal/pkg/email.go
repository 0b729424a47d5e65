package pkg

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 发件地址
}

// SendResetCodeEmail 给注册邮箱发送重置密码验证码。
// 找回密码是这个博客唯一的外发邮件场景，模板直接固定在这里。
func SendResetCodeEmail(cfg SMTPConfig, to, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", cfg.From, "Lee Blog")
	m.SetHeader("To", to)
	m.SetHeader("Subject", "重置密码验证码")
	m.SetBody("text/html", resetCodeHTML(code, ttl))

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

func resetCodeHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<p>您好，</p><p>您正在重置 Lee Blog 的登录密码，验证码为：<b style="font-size:18px;">%s</b>。</p><p>有效期 %d 分钟，请勿泄露给他人。如果不是您本人操作，忽略本邮件即可。</p>`,
		code, int(ttl.Minutes()))
}
