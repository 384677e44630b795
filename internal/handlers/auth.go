package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/services"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Register(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	Logout(ctx context.Context, token string) (*services.LogoutResponse, error)
	CurrentUser(token string) (*models.Session, error)
}

// AuthHandler handles registration, login, logout and /me.
type AuthHandler struct {
	service       AuthServiceInterface
	secureCookies bool
}

func NewAuthHandler(service AuthServiceInterface, secureCookies bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookies: secureCookies}
}

// RegisterForm carries the registration form fields.
type RegisterForm struct {
	Email          string `validate:"required,email"`
	Mobile         string `validate:"required"`
	Password       string `validate:"required"`
	RetypePassword string `validate:"required"`
}

// LoginForm carries the login form fields.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid form body")
		return
	}

	form := RegisterForm{
		Email:          strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Mobile:         strings.TrimSpace(r.FormValue("mobile")),
		Password:       r.FormValue("password"),
		RetypePassword: r.FormValue("retype_password"),
	}
	if err := ValidateRequest(form); err != nil {
		pkghttp.WriteUnprocessable(w, err.Error())
		return
	}

	resp, err := h.service.Register(r.Context(), form.Email, form.Mobile, form.Password, form.RetypePassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPasswordMismatch):
			pkghttp.WriteBadRequest(w, "Passwords do not match")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteBadRequest(w, "You are already registered with us, please log in")
		default:
			pkghttp.WriteInternalError(w, "Registration failed")
		}
		return
	}

	auth.SetSessionCookie(w, resp.SessionID, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid form body")
		return
	}

	form := LoginForm{
		Email:    strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
		Password: r.FormValue("password"),
	}
	if err := ValidateRequest(form); err != nil {
		pkghttp.WriteUnprocessable(w, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to store login history")
		return
	}

	auth.SetSessionCookie(w, resp.SessionID, h.secureCookies)

	// The login body never carries the token; the cookie does.
	resp.SessionID = ""
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.GetSessionToken(r)
	if token == "" {
		pkghttp.WriteUnauthorized(w, "Not logged in")
		return
	}

	resp, err := h.service.Logout(r.Context(), token)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Not logged in")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to update logout history")
		return
	}

	auth.ClearSessionCookie(w, h.secureCookies)
	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.CurrentUser(auth.GetSessionToken(r))
	if err != nil {
		pkghttp.WriteUnauthorized(w, "Not logged in")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, session)
}
