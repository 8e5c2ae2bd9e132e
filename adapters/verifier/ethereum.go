package verifier

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

const ethSignatureLength = 65

// EthereumVerifier verifies personal_sign signatures from Ethereum wallets.
// The response public key holds either the 20 address bytes or its hex text.
type EthereumVerifier struct{}

// NewEthereumVerifier creates a new Ethereum verifier
func NewEthereumVerifier() ports.Verifier {
	return EthereumVerifier{}
}

// Scheme returns core.SchemeEthereum
func (EthereumVerifier) Scheme() core.Scheme {
	return core.SchemeEthereum
}

// Verify recovers the signer of the personal_sign message and compares it
// with the wallet address carried in the public key field
func (v EthereumVerifier) Verify(resp *core.WalletResponse) bool {
	if resp == nil || resp.Kind != core.KindSigned {
		return false
	}
	address, ok := walletAddress(resp.PublicKey)
	if !ok || len(resp.Signature) != ethSignatureLength {
		return false
	}

	sig := make([]byte, ethSignatureLength)
	copy(sig, resp.Signature)
	// Wallets return V as 27/28, SigToPub expects 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(resp.Message), sig)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*pub) == address
}

// Address returns the checksummed hex address, or "" when the public key
// field holds no address
func (EthereumVerifier) Address(resp *core.WalletResponse) string {
	if resp == nil {
		return ""
	}
	address, ok := walletAddress(resp.PublicKey)
	if !ok {
		return ""
	}
	return address.Hex()
}

func walletAddress(raw []byte) (common.Address, bool) {
	if len(raw) == common.AddressLength {
		return common.BytesToAddress(raw), true
	}
	text := strings.TrimSpace(string(raw))
	if !common.IsHexAddress(text) {
		return common.Address{}, false
	}
	return common.HexToAddress(text), true
}

// ForScheme returns the verifier registered for scheme
func ForScheme(scheme core.Scheme) (ports.Verifier, error) {
	switch scheme {
	case core.SchemeEd25519, "":
		return NewEd25519Verifier(), nil
	case core.SchemeEthereum:
		return NewEthereumVerifier(), nil
	default:
		return nil, core.ErrUnsupportedScheme
	}
}
