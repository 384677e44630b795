package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/services"
)

func registerForm() url.Values {
	return url.Values{
		"email":           {"jane@example.com"},
		"mobile":          {"0971234567"},
		"password":        {"Secret123!"},
		"retype_password": {"Secret123!"},
	}
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error) {
			assert.Equal(t, "jane@example.com", email)
			return &services.AuthResponse{
				Message:   "Registration successful & logged in",
				Username:  "jane",
				Email:     email,
				LoginTime: "2026-08-30 09:00:00",
				SessionID: "token123",
			}, nil
		},
	}
	handler := NewAuthHandler(service, false)

	w := httptest.NewRecorder()
	handler.Register(w, NewFormRequest(t, http.MethodPost, "/register", registerForm()))

	var resp services.AuthResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Registration successful & logged in", resp.Message)
	assert.Equal(t, "jane", resp.Username)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "token123", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_Register_NormalizesEmail(t *testing.T) {
	var gotEmail string
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error) {
			gotEmail = email
			return &services.AuthResponse{SessionID: "t"}, nil
		},
	}
	handler := NewAuthHandler(service, false)

	form := registerForm()
	form.Set("email", "  Jane@Example.COM ")
	w := httptest.NewRecorder()
	handler.Register(w, NewFormRequest(t, http.MethodPost, "/register", form))

	assert.Equal(t, "jane@example.com", gotEmail)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, false)

	form := registerForm()
	form.Del("mobile")
	w := httptest.NewRecorder()
	handler.Register(w, NewFormRequest(t, http.MethodPost, "/register", form))

	AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_failed")
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error) {
			return nil, models.ErrPasswordMismatch
		},
	}
	handler := NewAuthHandler(service, false)

	w := httptest.NewRecorder()
	handler.Register(w, NewFormRequest(t, http.MethodPost, "/register", registerForm()))

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestAuthHandler_Register_AlreadyRegistered(t *testing.T) {
	service := &MockAuthService{
		RegisterFunc: func(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error) {
			return nil, models.ErrConflict
		},
	}
	handler := NewAuthHandler(service, false)

	w := httptest.NewRecorder()
	handler.Register(w, NewFormRequest(t, http.MethodPost, "/register", registerForm()))

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
	assert.Contains(t, w.Body.String(), "already registered")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				Message:   "Login successful!",
				Username:  "jane",
				Email:     email,
				LoginTime: "2026-08-30 09:00:00",
				SessionID: "token123",
			}, nil
		},
	}
	handler := NewAuthHandler(service, false)

	form := url.Values{"email": {"jane@example.com"}, "password": {"Secret123!"}}
	w := httptest.NewRecorder()
	handler.Login(w, NewFormRequest(t, http.MethodPost, "/login", form))

	var resp services.AuthResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Login successful!", resp.Message)
	// the token travels in the cookie, never the body
	assert.Empty(t, resp.SessionID)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "token123", cookie.Value)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewAuthHandler(service, false)

	form := url.Values{"email": {"jane@example.com"}, "password": {"wrong"}}
	w := httptest.NewRecorder()
	handler.Login(w, NewFormRequest(t, http.MethodPost, "/login", form))

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
	assert.Nil(t, sessionCookie(w))
}

func TestAuthHandler_Login_LedgerFailure(t *testing.T) {
	service := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, errors.New("failed to record login history")
		},
	}
	handler := NewAuthHandler(service, false)

	form := url.Values{"email": {"jane@example.com"}, "password": {"Secret123!"}}
	w := httptest.NewRecorder()
	handler.Login(w, NewFormRequest(t, http.MethodPost, "/login", form))

	AssertErrorResponse(t, w, http.StatusInternalServerError, "internal_error")
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	service := &MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) (*services.LogoutResponse, error) {
			assert.Equal(t, "token123", token)
			return &services.LogoutResponse{
				Message:    "Logout successful!",
				Username:   "jane",
				Email:      "jane@example.com",
				LogoutTime: "2026-08-30 17:00:00",
			}, nil
		},
	}
	handler := NewAuthHandler(service, false)

	req := WithSessionCookie(NewFormRequest(t, http.MethodPost, "/logout", url.Values{}), "token123")
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	var resp services.LogoutResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "Logout successful!", resp.Message)

	// the cookie is cleared
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{}, false)

	w := httptest.NewRecorder()
	handler.Logout(w, NewFormRequest(t, http.MethodPost, "/logout", url.Values{}))

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAuthHandler_Logout_StaleToken(t *testing.T) {
	service := &MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) (*services.LogoutResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewAuthHandler(service, false)

	req := WithSessionCookie(NewFormRequest(t, http.MethodPost, "/logout", url.Values{}), "stale")
	w := httptest.NewRecorder()
	handler.Logout(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAuthHandler_Me(t *testing.T) {
	service := &MockAuthService{
		CurrentUserFunc: func(token string) (*models.Session, error) {
			if token != "token123" {
				return nil, models.ErrUnauthorized
			}
			return &models.Session{Username: "jane", Email: "jane@example.com", LoginTime: "2026-08-30 09:00:00"}, nil
		},
	}
	handler := NewAuthHandler(service, false)

	t.Run("logged in", func(t *testing.T) {
		req := WithSessionCookie(httptest.NewRequest(http.MethodGet, "/me", nil), "token123")
		w := httptest.NewRecorder()
		handler.Me(w, req)

		var session models.Session
		AssertJSONResponse(t, w, http.StatusOK, &session)
		assert.Equal(t, "jane@example.com", session.Email)
	})

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
	})
}
