// utils/respond.go
package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a JSON error body with the given status.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

const randomStringCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns an uppercase alphanumeric string of the
// given length, used for receipt numbers.
func GenerateRandomString(length int) string {
	result := make([]byte, length)
	max := big.NewInt(int64(len(randomStringCharset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("failed to generate random string")
		}
		result[i] = randomStringCharset[n.Int64()]
	}
	return string(result)
}
