package pkg

import (
	cryptoRand "crypto/rand"
	"math/big"
	"strings"
)

const resetCodeLen = 6

// NewResetCode 生成找回密码用的 6 位数字验证码，用加密随机源
func NewResetCode() (string, error) {
	var b strings.Builder
	for i := 0; i < resetCodeLen; i++ {
		x, err := cryptoRand.Int(cryptoRand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + x.Int64()))
	}
	return b.String(), nil
}
