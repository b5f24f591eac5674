package api

import (
	"net/http"

	json "github.com/goccy/go-json"

	respond "github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/respond"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/validate"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/services"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/store"
)

const maxBodyBytes = 1 << 16

type AssistantHandler struct {
	svc *services.AssistantService
}

func NewAssistantHandler(svc *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

type chatRequest struct {
	Message string       `json:"message"`
	History []model.Turn `json:"history,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type suggestionsResponse struct {
	Suggestions []model.Suggestion `json:"suggestions"`
}

type noteRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type clearResponse struct {
	Removed int `json:"removed"`
}

// Chat POST /api/ai/chat
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.ChatMessage(req.Message, req.History); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	text, err := h.svc.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, chatResponse{Response: text})
}

// Suggestions GET /api/ai/suggestions
func (h *AssistantHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	out := h.svc.Suggestions(r.Context())
	if out == nil {
		out = []model.Suggestion{}
	}
	respond.WriteJSON(w, http.StatusOK, suggestionsResponse{Suggestions: out})
}

// ListMemory GET /api/ai/memory?limit=
func (h *AssistantHandler) ListMemory(w http.ResponseWriter, r *http.Request) {
	limit, err := validate.Limit(r.URL.Query().Get("limit"), store.MaxListLimit)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, h.svc.Memory(r.Context(), limit))
}

// CreateMemory POST /api/ai/memory
func (h *AssistantHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := decode(w, r, &req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.MemoryNote(req.Content, req.Tags); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.Remember(r.Context(), req.Content, req.Tags)
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ClearMemory DELETE /api/ai/memory
func (h *AssistantHandler) ClearMemory(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ClearMemory(r.Context())
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, clearResponse{Removed: n})
}

// Stats GET /api/ai/stats
func (h *AssistantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		respond.WriteServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, st)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
