package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumAddressKnownVectors(t *testing.T) {
	// Vectors from the EIP-55 reference.
	tests := []struct {
		in   string
		want string
	}{
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
		{"0xd8da6bf26964af9d7eed9e03e53415d37aa96045", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChecksumAddress(tt.in))
	}
}

func TestNormalizeAddressLowercase(t *testing.T) {
	out, err := NormalizeAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")
	require.NoError(t, err)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", out)
}

func TestNormalizeAddressValidChecksum(t *testing.T) {
	out, err := NormalizeAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	require.NoError(t, err)
	assert.Equal(t, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", out)
}

func TestNormalizeAddressBadChecksum(t *testing.T) {
	// Flip the case of one letter in an otherwise checksummed address.
	_, err := NormalizeAddress("0xD8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	assert.Error(t, err)
}

func TestNormalizeAddressBadLength(t *testing.T) {
	_, err := NormalizeAddress("0x1234")
	assert.Error(t, err)
}

func TestNormalizeAddressBadHex(t *testing.T) {
	_, err := NormalizeAddress("0xzzda6bf26964af9d7eed9e03e53415d37aa96045")
	assert.Error(t, err)
}
