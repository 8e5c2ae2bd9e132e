package core

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// Kind tags which variant of wallet response was received
type Kind int

const (
	// KindUnverified carries a public key only
	KindUnverified Kind = iota

	// KindSigned carries a public key, a message and a signature over the message
	KindSigned
)

func (k Kind) String() string {
	switch k {
	case KindUnverified:
		return "unverified"
	case KindSigned:
		return "signed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Bytes is an opaque byte sequence decoded from either a JSON array of
// integers or a base64 string.
type Bytes []byte

// UnmarshalJSON implements json.Unmarshaler
func (b *Bytes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("invalid base64 bytes: %w", err)
		}
		*b = decoded
		return nil
	}

	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte value %d out of range at index %d", v, i)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// WalletResponse is the payload extracted from a wallet callback request
type WalletResponse struct {
	Kind      Kind
	PublicKey Bytes
	Message   Bytes
	Signature Bytes
}

// NewUnverifiedResponse builds a response that only identifies a wallet
func NewUnverifiedResponse(publicKey string) *WalletResponse {
	return &WalletResponse{
		Kind:      KindUnverified,
		PublicKey: Bytes(publicKey),
	}
}

// NewSignedResponse builds a response carrying a signature over message
func NewSignedResponse(publicKey, message, signature []byte) *WalletResponse {
	return &WalletResponse{
		Kind:      KindSigned,
		PublicKey: publicKey,
		Message:   message,
		Signature: signature,
	}
}

// IsVerified runs Ed25519 verification over the message and signature.
// It is recomputed on every call and reports false for any malformed input.
func (r *WalletResponse) IsVerified() (ok bool) {
	if r == nil || r.Kind != KindSigned {
		return false
	}
	if len(r.PublicKey) != ed25519.PublicKeySize || len(r.Signature) != ed25519.SignatureSize {
		return false
	}

	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return ed25519.Verify(ed25519.PublicKey(r.PublicKey), r.Message, r.Signature)
}

// PublicKeyBase58 returns the public key re-encoded as Base58, for display only
func (r *WalletResponse) PublicKeyBase58() string {
	if r == nil {
		return ""
	}
	return base58.Encode(r.PublicKey)
}

// Address returns the textual identity of the wallet
func (r *WalletResponse) Address() string {
	if r == nil {
		return ""
	}
	if r.Kind == KindUnverified {
		return string(r.PublicKey)
	}
	return r.PublicKeyBase58()
}

func (r *WalletResponse) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s wallet %s", r.Kind, r.Address())
}
