package tokenizer

import "github.com/golang-jwt/jwt/v5"

// LinkClaims combines standard claims with the wallet link details
type LinkClaims struct {
	jwt.RegisteredClaims
	PublicKey []byte `json:"pk,omitempty"`
	Scheme    string `json:"scheme,omitempty"`
	Verified  bool   `json:"verified"`
}
