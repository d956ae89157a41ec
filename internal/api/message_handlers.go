package api

import (
	"errors"
	"net/http"

	"github.com/ignite/social-api/internal/domain"
	"github.com/ignite/social-api/internal/pkg/httputil"
)

// CreateMessage posts a message on behalf of posted_by.
//
//	POST /messages
func (h *Handlers) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.Message
	if !httputil.Decode(w, r, &req) {
		return
	}
	author, err := h.accounts.GetByID(r.Context(), req.PostedBy)
	if err != nil {
		respondError(w, err)
		return
	}
	created, err := h.messages.Create(r.Context(), req, author)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, created)
}

// ListMessages returns every message.
//
//	GET /messages
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.messages.GetAll(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, msgs)
}

// GetMessage returns one message, or an empty 200 when it does not exist.
//
//	GET /messages/{message_id}
func (h *Handlers) GetMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}
	m, err := h.messages.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if m == nil {
		httputil.Empty(w)
		return
	}
	httputil.OK(w, m)
}

// UpdateMessage replaces a message's text.
//
//	PATCH /messages/{message_id}
func (h *Handlers) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}
	var req domain.Message
	if !httputil.Decode(w, r, &req) {
		return
	}
	req.MessageID = id

	updated, err := h.messages.Update(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, updated)
}

// DeleteMessage removes a message and returns it. Deleting a message that
// does not exist is a no-op answered with an empty 200.
//
//	DELETE /messages/{message_id}
func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "message_id")
	if !ok {
		return
	}
	existing, err := h.messages.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		httputil.Empty(w)
		return
	}

	err = h.messages.Delete(r.Context(), *existing)
	if errors.Is(err, domain.ErrNotFound) {
		// removed by a concurrent request between the read and the delete
		httputil.Empty(w)
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, existing)
}

// ListAccountMessages returns the messages posted by one account.
//
//	GET /accounts/{account_id}/messages
func (h *Handlers) ListAccountMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "account_id")
	if !ok {
		return
	}
	msgs, err := h.messages.GetByAccountID(r.Context(), id)
	if err != nil {
		respondFault(w, err)
		return
	}
	httputil.OK(w, msgs)
}
