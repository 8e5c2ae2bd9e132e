package verifier

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/layer-3/walletlink/core"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519Verifier(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	v := NewEd25519Verifier()
	message := []byte("link wallet")

	valid := core.NewSignedResponse(pub, message, ed25519.Sign(priv, message))
	assert.True(t, v.Verify(valid))
	assert.Equal(t, base58.Encode(pub), v.Address(valid))

	forged := core.NewSignedResponse(pub, []byte("other"), ed25519.Sign(priv, message))
	assert.False(t, v.Verify(forged))
}

func signPersonal(t *testing.T, message []byte) (*core.WalletResponse, string) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig, err := crypto.Sign(accounts.TextHash(message), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	return core.NewSignedResponse([]byte(address), message, sig), address
}

func TestEthereumVerifierHexAddress(t *testing.T) {
	resp, address := signPersonal(t, []byte("link wallet"))

	v := NewEthereumVerifier()
	assert.True(t, v.Verify(resp))
	assert.Equal(t, address, v.Address(resp))
}

func TestEthereumVerifierRawAddress(t *testing.T) {
	resp, address := signPersonal(t, []byte("link wallet"))
	resp.PublicKey = common.HexToAddress(address).Bytes()

	v := NewEthereumVerifier()
	assert.True(t, v.Verify(resp))
	assert.Equal(t, address, v.Address(resp))
}

func TestEthereumVerifierRejects(t *testing.T) {
	resp, _ := signPersonal(t, []byte("link wallet"))
	other, _ := signPersonal(t, []byte("link wallet"))

	v := NewEthereumVerifier()

	wrongSigner := core.NewSignedResponse(resp.PublicKey, resp.Message, other.Signature)
	assert.False(t, v.Verify(wrongSigner))

	tampered := core.NewSignedResponse(resp.PublicKey, []byte("other"), resp.Signature)
	assert.False(t, v.Verify(tampered))

	short := core.NewSignedResponse(resp.PublicKey, resp.Message, resp.Signature[:10])
	assert.False(t, v.Verify(short))

	badAddress := core.NewSignedResponse([]byte("not-an-address"), resp.Message, resp.Signature)
	assert.False(t, v.Verify(badAddress))
	assert.Empty(t, v.Address(badAddress))

	assert.False(t, v.Verify(nil))
	assert.False(t, v.Verify(core.NewUnverifiedResponse(string(resp.PublicKey))))
}

func TestForScheme(t *testing.T) {
	v, err := ForScheme(core.SchemeEd25519)
	require.NoError(t, err)
	assert.Equal(t, core.SchemeEd25519, v.Scheme())

	v, err = ForScheme(core.SchemeEthereum)
	require.NoError(t, err)
	assert.Equal(t, core.SchemeEthereum, v.Scheme())

	_, err = ForScheme("rsa")
	assert.ErrorIs(t, err, core.ErrUnsupportedScheme)
}
