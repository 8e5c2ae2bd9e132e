package verifier

import (
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

// Ed25519Verifier verifies Solana-style wallets signing with Ed25519
type Ed25519Verifier struct{}

// NewEd25519Verifier creates a new Ed25519 verifier
func NewEd25519Verifier() ports.Verifier {
	return Ed25519Verifier{}
}

// Scheme returns core.SchemeEd25519
func (Ed25519Verifier) Scheme() core.Scheme {
	return core.SchemeEd25519
}

// Verify checks the Ed25519 signature over the response message
func (Ed25519Verifier) Verify(resp *core.WalletResponse) bool {
	return resp.IsVerified()
}

// Address returns the Base58 encoded public key
func (Ed25519Verifier) Address(resp *core.WalletResponse) string {
	return resp.PublicKeyBase58()
}
