package ports

import "github.com/layer-3/walletlink/core"

// Tokenizer converts between linked wallets and link tokens
type Tokenizer interface {
	WalletToToken(wallet *core.LinkedWallet) (string, error)
	TokenToWallet(token string) (*core.LinkedWallet, error)
}
