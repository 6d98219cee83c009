package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+919876543210"))
	assert.True(t, ValidatePhone("9876543210"))
	assert.True(t, ValidatePhone("+91 98765 43210"))

	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone(""))
	assert.False(t, ValidatePhone("0123456789")) // leading zero
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(6)

	assert.Len(t, s, 6)
	for _, r := range s {
		assert.Contains(t, randomStringCharset, string(r))
	}
}
