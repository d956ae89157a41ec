package api

import (
	"net/http"

	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/pkg/httputil"
)

// Register creates an account.
//
//	POST /register
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.Account
	if !httputil.Decode(w, r, &req) {
		return
	}
	created, err := h.accounts.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, created)
}

// Login checks credentials and echoes the stored account.
//
//	POST /login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.Account
	if !httputil.Decode(w, r, &req) {
		return
	}
	a, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, a)
}
