package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	ai "github.com/spetersoncode/relay"
	"github.com/spetersoncode/relay/compare"
	"github.com/spetersoncode/relay/internal/store"
)

// asker answers single prompts. *router.Router satisfies it.
type asker interface {
	Route(ctx context.Context, alias, prompt, conversationID string) string
}

const defaultAlias = "openai"

// Handler serves the relay HTTP API.
type Handler struct {
	asker    asker
	comparer compare.Comparer
	store    store.Store
	logger   *slog.Logger
	mux      *http.ServeMux
	origins  []string
}

// NewHandler creates the HTTP API handler. Browser requests are accepted from
// the given origins only.
func NewHandler(a asker, c compare.Comparer, st store.Store, origins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		asker:    a,
		comparer: c,
		store:    st,
		logger:   logger.With("component", "http"),
		mux:      http.NewServeMux(),
		origins:  origins,
	}

	h.mux.HandleFunc("GET /{$}", h.handleRoot)
	h.mux.HandleFunc("GET /health", handleHealth)
	h.mux.HandleFunc("POST /ask", h.handleAsk)
	h.mux.HandleFunc("POST /compare", h.handleCompare)
	h.mux.HandleFunc("GET /conversations", h.handleConversations)
	h.mux.HandleFunc("DELETE /conversations/{id}", h.handleDelete)
	h.mux.HandleFunc("POST /cleanup", h.handleCleanup)
	return h
}

// ServeHTTP applies CORS, then routes the request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Add("Vary", "Origin")
		if slices.Contains(h.origins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			} else {
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	h.mux.ServeHTTP(w, r)
}

type askRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model"`
	ConversationID string `json:"conversation_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
}

type askResponse struct {
	Model          string        `json:"model"`
	ConversationID string        `json:"conversation_id,omitempty"`
	Response       string        `json:"response"`
	History        *[]ai.Message `json:"history,omitempty"`
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Multi-LLM Relay API is running."})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAsk answers one prompt. An empty prompt loads the conversation instead.
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Model == "" {
		req.Model = defaultAlias
	}

	log := h.logger.With(
		"model", req.Model,
		"conversation_id", req.ConversationID,
		"user_id", req.UserID,
	)

	if strings.TrimSpace(req.Prompt) == "" {
		history := []ai.Message{}
		if req.ConversationID != "" {
			var err error
			history, err = h.store.History(r.Context(), req.ConversationID)
			if err != nil {
				log.Error("history read failed", "error", err)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not load conversation"})
				return
			}
		}
		log.Debug("history loaded", "messages", len(history))
		writeJSON(w, http.StatusOK, askResponse{
			Model:          req.Model,
			ConversationID: req.ConversationID,
			History:        &history,
		})
		return
	}

	start := time.Now()
	answer := h.asker.Route(r.Context(), req.Model, req.Prompt, req.ConversationID)
	log.Info("ask completed", "duration_ms", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, askResponse{
		Model:          req.Model,
		ConversationID: req.ConversationID,
		Response:       answer,
	})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compare.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		writeDetail(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.comparer.Compare(r.Context(), req)
	if err != nil {
		var e *ai.Error
		if errors.As(err, &e) && e.Kind == ai.KindInvalidRequest {
			writeDetail(w, http.StatusBadRequest, e.UserMessage())
			return
		}
		h.logger.Error("compare failed", "conversation_id", req.ConversationID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "Comparison failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.store.Conversations(r.Context())
	if err != nil {
		h.logger.Error("list conversations failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not list conversations"})
		return
	}
	if conversations == nil {
		conversations = []store.Conversation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversations": conversations})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("delete conversation failed", "conversation_id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Could not delete conversation"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		return
	}
	h.logger.Info("conversation deleted", "conversation_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Conversation %s deleted", id)})
}

func (h *Handler) handleCleanup(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days_old"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeDetail(w, http.StatusBadRequest, "days_old must be a non-negative integer")
			return
		}
		days = n
	}

	n, err := h.store.Cleanup(r.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		h.logger.Error("cleanup failed", "days_old", days, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Cleanup failed"})
		return
	}
	h.logger.Info("cleanup complete", "days_old", days, "deleted", n)
	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Deleted %d old conversations", n)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
