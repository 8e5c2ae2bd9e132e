package core

import "time"

// LinkedWallet is the outcome of a successful wallet link session
type LinkedWallet struct {
	SessionID string    `json:"session_id"`       // Listener session that produced the wallet
	Address   string    `json:"address"`          // Display form of the wallet public key
	PublicKey []byte    `json:"public_key"`       // Raw public key bytes
	Scheme    Scheme    `json:"scheme,omitempty"` // Signature scheme used to verify the wallet, empty when unverified
	Verified  bool      `json:"verified"`         // Whether a signature over the message was verified
	LinkedAt  time.Time `json:"linked_at"`        // When the callback was accepted
	Token     string    `json:"token,omitempty"`  // Link token minted for the wallet, if a tokenizer is configured
}

// Outcome describes how a callback session resolved
type Outcome struct {
	SessionID string          // Listener session identifier
	Port      int             // Loopback port the session listened on
	Response  *WalletResponse // Parsed response, nil when the callback was rejected
	Reason    error           // Why the callback was rejected, nil on success
}
