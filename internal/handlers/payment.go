package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/models"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

// PaymentServiceInterface defines the interface for payment notices
type PaymentServiceInterface interface {
	Submit(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error)
}

// SessionResolver resolves the session behind a token.
type SessionResolver interface {
	CurrentUser(token string) (*models.Session, error)
}

// PaymentHandler handles payment notices from logged-in users.
type PaymentHandler struct {
	service  PaymentServiceInterface
	sessions SessionResolver
}

func NewPaymentHandler(service PaymentServiceInterface, sessions SessionResolver) *PaymentHandler {
	return &PaymentHandler{service: service, sessions: sessions}
}

// PayRequest matches the JSON body the front end sends.
type PayRequest struct {
	SelectedProject string  `json:"SelectedProject" validate:"required"`
	Amount          float64 `json:"Amount" validate:"required,gt=0"`
}

// Pay handles POST /pay.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.CurrentUser(auth.GetSessionToken(r))
	if err != nil {
		pkghttp.WriteUnauthorized(w, "User not logged in")
		return
	}

	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteUnprocessable(w, err.Error())
		return
	}

	if _, err := h.service.Submit(r.Context(), session.Email, req.SelectedProject, req.Amount); err != nil {
		pkghttp.WriteInternalError(w, "Failed to record payment")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Payment recorded and emails sent.",
	})
}
