package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetCode(t *testing.T) {
	code, err := NewResetCode()
	require.NoError(t, err)
	assert.Len(t, code, resetCodeLen)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestResetCodeEmailBody(t *testing.T) {
	body := resetCodeHTML("123456", 5*time.Minute)
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "5 分钟")
}
