package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/voteflow/votecli/internal/ui"
	"github.com/voteflow/votecli/internal/wallet"
)

var (
	signWallet    string
	verifyAddress string
)

var signCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Sign a message with the wallet key (personal_sign)",
	Long: `Produce an EIP-191 personal_sign signature over a plaintext message.
Voters use this to prove, off-chain, that they control the account a
registration or ballot came from.

Examples:
  votecli sign "ballot nonce: 12345"
  votecli sign "hello" --wallet treasurer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := args[0]

		mgr := newWalletManager()
		w := defaultWallet(mgr)
		if signWallet != "" {
			found, err := mgr.Get(signWallet)
			if err != nil {
				return err
			}
			w = found
		}
		if w == nil {
			return fmt.Errorf("no wallet configured\n  Import one with: votecli wallet import <name> <private-key>")
		}

		sig, err := wallet.SignMessage(w, mgr.Keystore(), []byte(message))
		if err != nil {
			return fmt.Errorf("signing failed: %w", err)
		}
		sigHex := "0x" + hex.EncodeToString(sig)

		fmt.Println(ui.KeyValueBlock("Signed", [][2]string{
			{"Signer", ui.Addr(w.Address)},
			{"Message", message},
			{"Signature", sigHex},
		}))
		fmt.Println(ui.Hint(fmt.Sprintf("Anyone can check it: votecli verify %q %s --address %s", message, sigHex, w.Address)))
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <message> <signature>",
	Short: "Recover who signed a message",
	Long: `Recover the signing account from an EIP-191 personal_sign signature.
With --address the recovered account is checked against the claimed one.

Examples:
  votecli verify "ballot nonce: 12345" 0x... --address 0x...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := args[0]

		sigBytes, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
		if err != nil {
			return fmt.Errorf("invalid signature hex: %w", err)
		}

		recovered, err := wallet.VerifyMessage([]byte(message), sigBytes)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		recoveredAddr := recovered.Hex()

		pairs := [][2]string{
			{"Message", message},
			{"Signer", ui.Addr(recoveredAddr)},
		}
		if verifyAddress != "" {
			if strings.EqualFold(recoveredAddr, verifyAddress) {
				pairs = append(pairs, [2]string{"Match", ui.Success("signature is valid")})
			} else {
				pairs = append(pairs,
					[2]string{"Claimed", ui.Addr(verifyAddress)},
					[2]string{"Match", ui.Err("signature does NOT match claimed address")})
			}
		}
		fmt.Println(ui.KeyValueBlock("Verification", pairs))
		return nil
	},
}

func init() {
	signCmd.Flags().StringVar(&signWallet, "wallet", "", "wallet to sign with (default: configured wallet)")
	verifyCmd.Flags().StringVar(&verifyAddress, "address", "", "claimed signer address")
}
