package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUPIIntent(t *testing.T) {
	intent := BuildUPIIntent("merchant@upi", 150)

	assert.Equal(t, "upi://pay?pa=merchant%40upi&pn=DSA&am=150&cu=INR", intent)
}

func TestBuildUPIIntentFractionalAmount(t *testing.T) {
	intent := BuildUPIIntent("merchant@upi", 150.5)

	assert.Contains(t, intent, "am=150.50")
}
