package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"wallet/internal/core"
)

type createTransactionRequest struct {
	UserID   string      `json:"user_id"`
	Title    string      `json:"title"`
	Amount   *core.Money `json:"amount"`
	Category string      `json:"category"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, core.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, core.ErrInvalidAmount.Error())
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, core.ErrInvalidAmount.Error())
		return
	}

	created, err := s.ledger.Create(r.Context(), core.Transaction{
		UserID:   req.UserID,
		Title:    req.Title,
		Amount:   *req.Amount,
		Category: req.Category,
	})
	if err != nil {
		respondServiceError(r, w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	transactions, err := s.ledger.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(r, w, err)
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ledger.Delete(r.Context(), id); err != nil {
		respondServiceError(r, w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")

	summary, err := s.ledger.Summarize(r.Context(), userID)
	if err != nil {
		respondServiceError(r, w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Ready(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
