package http

import (
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/layer-3/walletlink/core"
)

const (
	HeaderOrigin       = "Origin"
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderMaxAge       = "Access-Control-Max-Age"

	// PreflightMaxAge is how long, in milliseconds, the browser may cache a preflight
	PreflightMaxAge = 120000

	// MaxBodySize caps the callback body read from the browser
	MaxBodySize = 64 << 10
)

// publicKeyRequest is the body sent by the public key only flow
type publicKeyRequest struct {
	PublicKey string `json:"publicKey" binding:"required"`
}

// signedRequest is the body sent by the signing flow
type signedRequest struct {
	PublicKey core.Bytes `json:"publicKey" binding:"required,min=1"`
	Message   core.Bytes `json:"message"`
	Signature core.Bytes `json:"signature"`
	MsgSig    core.Bytes `json:"msgSig"`
}

// ValidateOrigin reports whether the first Origin header equals expected.
// This only guards against callers that skip CORS; a non-browser client can
// still forge the header.
func ValidateOrigin(r *http.Request, expected string) bool {
	origins := r.Header.Values(HeaderOrigin)
	if len(origins) == 0 || origins[0] == "" {
		return false
	}
	return origins[0] == expected
}

// ParseBody reads the request body and decodes it into a wallet response
func ParseBody(r *http.Request, mode core.Mode) (*core.WalletResponse, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("%w: empty body", core.ErrMalformedPayload)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedPayload, err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", core.ErrMalformedPayload, MaxBodySize)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid UTF-8", core.ErrMalformedPayload)
	}

	if mode == core.ModeSigned {
		var req signedRequest
		if err := binding.JSON.BindBody(body, &req); err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrMalformedPayload, err)
		}
		signature := req.Signature
		if len(signature) == 0 {
			signature = req.MsgSig
		}
		return core.NewSignedResponse(req.PublicKey, req.Message, signature), nil
	}

	var req publicKeyRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedPayload, err)
	}
	return core.NewUnverifiedResponse(req.PublicKey), nil
}
