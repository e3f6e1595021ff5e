package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ResetTokenLength is the number of characters in a password reset token
const ResetTokenLength = 32

// GenerateResetToken returns a random URL-safe token for the password reset flow
func GenerateResetToken() (string, error) {
	result := make([]byte, ResetTokenLength)
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate reset token: %w", err)
		}
		result[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(result), nil
}
