package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/zoonatech/portal-api/internal/models"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

// ResetServiceInterface defines the interface for the password-reset flow
type ResetServiceInterface interface {
	Request(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
	Reset(ctx context.Context, email, newPassword string) error
}

// ResetHandler handles the three-step password-reset flow. These endpoints
// answer HTTP 200 with a {status, message} envelope for both outcomes; the
// front end switches on the status field, not on the response code.
type ResetHandler struct {
	service ResetServiceInterface
}

func NewResetHandler(service ResetServiceInterface) *ResetHandler {
	return &ResetHandler{service: service}
}

// StatusResponse is the envelope the reset endpoints answer with.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

func writeStatus(w http.ResponseWriter, resp StatusResponse) {
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func writeStatusError(w http.ResponseWriter, message string) {
	writeStatus(w, StatusResponse{Status: "error", Message: message})
}

// ForgotPassword handles POST /forgot-password.
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeStatusError(w, "Invalid form body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	if email == "" {
		writeStatusError(w, "Email is required")
		return
	}

	if err := h.service.Request(r.Context(), email); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeStatusError(w, "Email not registered")
			return
		}
		writeStatusError(w, "Failed to send OTP")
		return
	}

	writeStatus(w, StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("OTP sent to %s", email),
	})
}

// VerifyOTP handles POST /verify-forgot-password. The email is required
// alongside the code: codes are only ever checked against the entry issued
// for that address.
func (h *ResetHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeStatusError(w, "Invalid form body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	code := strings.TrimSpace(r.FormValue("otp"))
	if email == "" {
		writeStatusError(w, "Email is required")
		return
	}
	if code == "" {
		writeStatusError(w, "OTP is required")
		return
	}

	if err := h.service.Verify(r.Context(), email, code); err != nil {
		switch {
		case errors.Is(err, models.ErrOTPExpired):
			writeStatusError(w, "OTP expired. Please request again.")
		case errors.Is(err, models.ErrOTPInvalid):
			writeStatusError(w, "Invalid OTP or no request found")
		default:
			writeStatusError(w, "Failed to verify OTP")
		}
		return
	}

	writeStatus(w, StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("OTP verified for %s. You can now reset password.", email),
		Email:   email,
	})
}

// ResetPassword handles POST /reset-password.
func (h *ResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeStatusError(w, "Invalid form body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	newPassword := r.FormValue("new_password")
	if email == "" {
		writeStatusError(w, "Email is required")
		return
	}
	if newPassword == "" {
		writeStatusError(w, "New password is required")
		return
	}

	if err := h.service.Reset(r.Context(), email, newPassword); err != nil {
		switch {
		case errors.Is(err, models.ErrOTPNotVerified):
			writeStatusError(w, "No verified email found. Verify OTP first.")
		case errors.Is(err, models.ErrNotFound):
			writeStatusError(w, "Email not registered")
		default:
			writeStatusError(w, "Failed to update password")
		}
		return
	}

	writeStatus(w, StatusResponse{
		Status:  "success",
		Message: "Password reset successful",
	})
}
