package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random 6-digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// HashOTP returns the hex SHA3-256 digest stored in place of the code.
func HashOTP(code string) string {
	sum := sha3.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// OTPEqual compares code against a stored digest in constant time.
func OTPEqual(code, storedHash string) bool {
	if code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashOTP(code)), []byte(storedHash)) == 1
}
