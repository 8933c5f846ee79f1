package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomHex trả về chuỗi hex ngẫu nhiên từ n byte (2n ký tự)
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid length %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
