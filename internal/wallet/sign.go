package wallet

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// personalHash hashes a message under the EIP-191 personal_sign scheme:
// keccak256("\x19Ethereum Signed Message:\n" + len + message). The prefix
// keeps a signed proof-of-account from doubling as a valid transaction.
func personalHash(message []byte) []byte {
	prefixed := fmt.Appendf(nil, "\x19Ethereum Signed Message:\n%d", len(message))
	return crypto.Keccak256(append(prefixed, message...))
}

// SignMessage produces a 65-byte R||S||V personal_sign signature over
// message with the wallet's stored key. Voters use this off-chain to prove
// control of the account their registrations came from.
func SignMessage(w *Wallet, ks KeystoreBackend, message []byte) ([]byte, error) {
	if w.Type != TypeSigning {
		return nil, fmt.Errorf("wallet %q is watch-only and cannot sign", w.Name)
	}

	hexKey, err := ks.Retrieve(w.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}
	privKey, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	sig, err := crypto.Sign(personalHash(message), privKey)
	if err != nil {
		return nil, fmt.Errorf("signing message: %w", err)
	}

	// crypto.Sign yields V as 0/1; wallets publish 27/28.
	sig[64] += 27
	return sig, nil
}

// VerifyMessage recovers the account that signed message. Callers compare
// the result against the claimed voter address.
func VerifyMessage(message, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(sig))
	}

	normalized := make([]byte, 65)
	copy(normalized, sig)
	normalized[64] -= 27 // back to 0/1 for recovery

	pubKey, err := crypto.SigToPub(personalHash(message), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("recovering signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
