package core

import "errors"

var (
	ErrBindFailed         = errors.New("failed to bind callback listener")
	ErrSessionInProgress  = errors.New("wallet link session already in progress")
	ErrSessionAbandoned   = errors.New("wallet link session abandoned")
	ErrOriginMismatch     = errors.New("request origin mismatch")
	ErrMalformedPayload   = errors.New("malformed wallet payload")
	ErrVerificationFailed = errors.New("wallet signature verification failed")
	ErrSignatureReplayed  = errors.New("wallet signature already consumed")
	ErrInvalidToken       = errors.New("invalid link token")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnsupportedScheme  = errors.New("unsupported signature scheme")
)
