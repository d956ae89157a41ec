package api

import (
	"errors"
	"net/http"

	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/pkg/httputil"
	"github.com/ignite/social-api/internal/service/account"
)

// respondError maps a service error to a response. Client-fixable kinds are
// echoed back as 400; anything else is logged and answered with a generic
// 500 so store details never reach the caller.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		httputil.Unauthorized(w, err.Error())
	case domain.IsClientError(err):
		httputil.BadRequest(w, err.Error())
	default:
		httputil.InternalError(w, err)
	}
}

// respondFault answers every error with 400, logging the cause when it is
// not a client error. Used by routes whose contract reports service faults
// as bad requests.
func respondFault(w http.ResponseWriter, err error) {
	if domain.IsClientError(err) {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.Error(w, http.StatusBadRequest, sanitizedMessage(err))
}

// sanitizedMessage logs err and returns a message safe to show a client.
func sanitizedMessage(err error) string {
	var se *domain.ServiceError
	if errors.As(err, &se) {
		logFault(se.Op, err)
		return se.Op + " failed"
	}
	logFault("request", err)
	return "request failed"
}
