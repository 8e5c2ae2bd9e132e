package tokenizer

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/walletlink/core"
	"github.com/layer-3/walletlink/ports"
)

const AudienceLink = "walletlink:link"

// DefaultLinkExpiry is how long a link token stays valid
const DefaultLinkExpiry = 15 * time.Minute

// JWTTokenizer implements the Tokenizer interface using JWT
type JWTTokenizer struct {
	signKey *ecdsa.PrivateKey
	expiry  time.Duration
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(signKey *ecdsa.PrivateKey) ports.Tokenizer {
	return &JWTTokenizer{signKey: signKey, expiry: DefaultLinkExpiry}
}

// WalletToToken converts a LinkedWallet to a JWT token
func (j *JWTTokenizer) WalletToToken(wallet *core.LinkedWallet) (string, error) {
	if wallet == nil {
		return "", core.ErrInvalidToken
	}

	issuedAt := wallet.LinkedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	claims := LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wallet.Address,
			ID:        wallet.SessionID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Audience:  jwt.ClaimStrings{AudienceLink},
		},
		PublicKey: wallet.PublicKey,
		Scheme:    string(wallet.Scheme),
		Verified:  wallet.Verified,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(j.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign link token: %w", err)
	}

	return signedToken, nil
}

// TokenToWallet parses a link token and returns the linked wallet
func (j *JWTTokenizer) TokenToWallet(tokenStr string) (*core.LinkedWallet, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &LinkClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &j.signKey.PublicKey, nil
	}, jwt.WithAudience(AudienceLink))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*LinkClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims type", core.ErrInvalidToken)
	}

	wallet := &core.LinkedWallet{
		SessionID: claims.ID,
		Address:   claims.Subject,
		PublicKey: claims.PublicKey,
		Scheme:    core.Scheme(claims.Scheme),
		Verified:  claims.Verified,
		LinkedAt:  claims.IssuedAt.Time,
		Token:     tokenStr,
	}

	return wallet, nil
}
