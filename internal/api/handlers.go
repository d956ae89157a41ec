package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/social-api/internal/pkg/httputil"
	"github.com/ignite/social-api/internal/pkg/logger"
	"github.com/ignite/social-api/internal/service/account"
	"github.com/ignite/social-api/internal/service/message"
)

// Handlers contains the HTTP handlers for accounts and messages.
type Handlers struct {
	accounts *account.Service
	messages *message.Service
}

// NewHandlers creates handlers over the given services.
func NewHandlers(accounts *account.Service, messages *message.Service) *Handlers {
	return &Handlers{accounts: accounts, messages: messages}
}

// pathID parses a numeric path parameter, writing a 400 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		httputil.BadRequest(w, name+" must be numeric, got "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func logFault(op string, err error) {
	logger.Error("request failed", "op", op, "error", err)
}
