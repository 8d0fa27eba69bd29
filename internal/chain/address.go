package chain

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// NormalizeAddress validates a user-supplied address and returns it in
// EIP-55 checksummed form. Mixed-case inputs with a wrong checksum are
// rejected; all-lower or all-upper inputs are accepted and checksummed.
func NormalizeAddress(input string) (string, error) {
	clean := strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	if len(clean) != 40 {
		return "", fmt.Errorf("invalid address length: expected 40 hex chars, got %d", len(clean))
	}
	if _, err := hex.DecodeString(clean); err != nil {
		return "", fmt.Errorf("invalid hex address: %w", err)
	}

	checksummed := ChecksumAddress(clean)
	mixed := clean != strings.ToLower(clean) && clean != strings.ToUpper(clean)
	if mixed && input != checksummed {
		return "", fmt.Errorf("address checksum mismatch: %s", input)
	}
	return checksummed, nil
}

// ChecksumAddress implements EIP-55 mixed-case checksum encoding.
// The input may carry a 0x prefix and any letter casing.
func ChecksumAddress(addr string) string {
	lower := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X"))

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	var result strings.Builder
	result.WriteString("0x")
	for i, c := range lower {
		if c >= '0' && c <= '9' {
			result.WriteByte(byte(c))
			continue
		}
		if hash[i] >= '8' {
			result.WriteByte(byte(c) - 32) // to upper
		} else {
			result.WriteByte(byte(c))
		}
	}
	return result.String()
}
