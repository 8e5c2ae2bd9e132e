package http

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/layer-3/walletlink/core"
)

// session is the state of one listener run
type session struct {
	id      string
	port    int
	claimed atomic.Bool
	done    chan core.Outcome
}

func newSession(port int) *session {
	return &session{
		id:   uuid.New().String(),
		port: port,
		done: make(chan core.Outcome, 1),
	}
}

// claim marks the session as taken by a callback; only the first caller wins
func (s *session) claim() bool {
	return s.claimed.CompareAndSwap(false, true)
}

func (s *session) resolve(resp *core.WalletResponse, reason error) {
	s.done <- core.Outcome{
		SessionID: s.id,
		Port:      s.port,
		Response:  resp,
		Reason:    reason,
	}
}

// CallbackHandlers contains HTTP handlers for the browser callback
type CallbackHandlers struct {
	authURL string
	mode    core.Mode
	session *session
	logger  watermill.LoggerAdapter
}

func newCallbackHandlers(authURL string, mode core.Mode, s *session, logger watermill.LoggerAdapter) *CallbackHandlers {
	return &CallbackHandlers{
		authURL: authURL,
		mode:    mode,
		session: s,
		logger:  logger,
	}
}

// Preflight answers a CORS preflight without resolving the session
func (h *CallbackHandlers) Preflight(c *gin.Context) {
	c.Header(HeaderAllowOrigin, h.authURL)
	c.Header(HeaderAllowMethods, http.MethodPost)
	c.Header(HeaderMaxAge, strconv.Itoa(PreflightMaxAge))
	c.Status(http.StatusOK)

	h.logger.Debug("Sent preflight response", nil)
}

// Callback handles the data-bearing POST and resolves the session
func (h *CallbackHandlers) Callback(c *gin.Context) {
	if !h.session.claim() {
		h.logger.Info("Callback received after session resolved", nil)
		c.Status(http.StatusGone)
		return
	}

	resp, reason := h.extract(c.Request)
	if reason != nil {
		h.logger.Info("Rejected wallet callback", watermill.LogFields{"reason": reason.Error()})
	} else {
		h.logger.Info("Found wallet", watermill.LogFields{"wallet": resp.String()})
	}

	// The browser always gets an acknowledgement; failures are reported to the caller
	c.Header(HeaderAllowOrigin, h.authURL)
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	h.logger.Debug("Sent POST response", nil)

	h.session.resolve(resp, reason)
}

// MethodNotAllowed rejects any other method without resolving the session
func (h *CallbackHandlers) MethodNotAllowed(c *gin.Context) {
	h.logger.Info("Unsupported callback method", watermill.LogFields{"method": c.Request.Method})
	c.Header("Allow", http.MethodOptions+", "+http.MethodPost)
	c.AbortWithStatus(http.StatusMethodNotAllowed)
}

func (h *CallbackHandlers) extract(r *http.Request) (*core.WalletResponse, error) {
	if !ValidateOrigin(r, h.authURL) {
		return nil, core.ErrOriginMismatch
	}
	return ParseBody(r, h.mode)
}
