package core

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVerifiedValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	message := []byte("link wallet")
	resp := NewSignedResponse(pub, message, ed25519.Sign(priv, message))

	assert.True(t, resp.IsVerified())
	assert.Equal(t, base58.Encode(pub), resp.PublicKeyBase58())
	assert.Equal(t, resp.PublicKeyBase58(), resp.Address())
}

func TestIsVerifiedRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig := ed25519.Sign(priv, []byte("link wallet"))
	resp := NewSignedResponse(pub, []byte("link another wallet"), sig)

	assert.False(t, resp.IsVerified())
}

func TestIsVerifiedRejectsWrongKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	message := []byte("link wallet")
	resp := NewSignedResponse(otherPub, message, ed25519.Sign(priv, message))

	assert.False(t, resp.IsVerified())
}

func TestIsVerifiedMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		resp *WalletResponse
	}{
		{"nil response", nil},
		{"short key", NewSignedResponse([]byte("Test1234"), nil, make([]byte, ed25519.SignatureSize))},
		{"short signature", NewSignedResponse(make([]byte, ed25519.PublicKeySize), []byte("m"), []byte{1, 2, 3})},
		{"empty fields", NewSignedResponse(nil, nil, nil)},
		{"unverified kind", NewUnverifiedResponse("Test1234")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, tt.resp.IsVerified())
			})
		})
	}
}

func TestUnverifiedAddressIsRawKey(t *testing.T) {
	resp := NewUnverifiedResponse("Test1234")
	assert.Equal(t, "Test1234", resp.Address())
	assert.Equal(t, KindUnverified, resp.Kind)
}

func TestBytesUnmarshal(t *testing.T) {
	var payload struct {
		A Bytes `json:"a"`
		B Bytes `json:"b"`
		C Bytes `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a":[84,101,115,116],"b":"VGVzdDEyMzQ=","c":null}`), &payload)
	require.NoError(t, err)

	assert.Equal(t, []byte("Test"), []byte(payload.A))
	assert.Equal(t, []byte("Test1234"), []byte(payload.B))
	assert.Nil(t, payload.C)
}

func TestBytesUnmarshalRejectsInvalid(t *testing.T) {
	for _, raw := range []string{`[256]`, `[-1]`, `"not base64!"`, `{"x":1}`, `[1.5]`} {
		var b Bytes
		assert.Error(t, json.Unmarshal([]byte(raw), &b), raw)
	}
}
