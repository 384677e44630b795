package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoonatech/portal-api/internal/models"
)

func loggedInResolver() *MockAuthService {
	return &MockAuthService{
		CurrentUserFunc: func(token string) (*models.Session, error) {
			if token != "token123" {
				return nil, models.ErrUnauthorized
			}
			return &models.Session{Username: "jane", Email: "jane@example.com"}, nil
		},
	}
}

func TestPaymentHandler_Pay_Success(t *testing.T) {
	var gotEmail, gotProject string
	var gotAmount float64
	service := &MockPaymentService{
		SubmitFunc: func(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error) {
			gotEmail, gotProject, gotAmount = email, selectedProject, amount
			return &models.Payment{Email: email, Reference: "ref-1"}, nil
		},
	}
	handler := NewPaymentHandler(service, loggedInResolver())

	body := map[string]interface{}{"SelectedProject": "Mobile App", "Amount": 2500.50}
	req := WithSessionCookie(NewJSONRequest(t, http.MethodPost, "/pay", body), "token123")
	w := httptest.NewRecorder()
	handler.Pay(w, req)

	var resp map[string]string
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "Payment recorded and emails sent.", resp["message"])

	// the email comes from the session, not the request body
	assert.Equal(t, "jane@example.com", gotEmail)
	assert.Equal(t, "Mobile App", gotProject)
	assert.Equal(t, 2500.50, gotAmount)
}

func TestPaymentHandler_Pay_NotLoggedIn(t *testing.T) {
	handler := NewPaymentHandler(&MockPaymentService{}, loggedInResolver())

	body := map[string]interface{}{"SelectedProject": "Mobile App", "Amount": 100}
	w := httptest.NewRecorder()
	handler.Pay(w, NewJSONRequest(t, http.MethodPost, "/pay", body))

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
	assert.Contains(t, w.Body.String(), "User not logged in")
}

func TestPaymentHandler_Pay_InvalidJSON(t *testing.T) {
	handler := NewPaymentHandler(&MockPaymentService{}, loggedInResolver())

	req := httptest.NewRequest(http.MethodPost, "/pay", strings.NewReader("{not json"))
	req = WithSessionCookie(req, "token123")
	w := httptest.NewRecorder()
	handler.Pay(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestPaymentHandler_Pay_InvalidAmount(t *testing.T) {
	handler := NewPaymentHandler(&MockPaymentService{}, loggedInResolver())

	for _, amount := range []float64{0, -50} {
		body := map[string]interface{}{"SelectedProject": "Mobile App", "Amount": amount}
		req := WithSessionCookie(NewJSONRequest(t, http.MethodPost, "/pay", body), "token123")
		w := httptest.NewRecorder()
		handler.Pay(w, req)

		AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_failed")
	}
}

func TestPaymentHandler_Pay_MissingProject(t *testing.T) {
	handler := NewPaymentHandler(&MockPaymentService{}, loggedInResolver())

	body := map[string]interface{}{"Amount": 100}
	req := WithSessionCookie(NewJSONRequest(t, http.MethodPost, "/pay", body), "token123")
	w := httptest.NewRecorder()
	handler.Pay(w, req)

	AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_failed")
}

func TestPaymentHandler_Pay_ServiceFailure(t *testing.T) {
	service := &MockPaymentService{
		SubmitFunc: func(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error) {
			return nil, errors.New("sheet append failed")
		},
	}
	handler := NewPaymentHandler(service, loggedInResolver())

	body := map[string]interface{}{"SelectedProject": "Mobile App", "Amount": 100}
	req := WithSessionCookie(NewJSONRequest(t, http.MethodPost, "/pay", body), "token123")
	w := httptest.NewRecorder()
	handler.Pay(w, req)

	AssertErrorResponse(t, w, http.StatusInternalServerError, "internal_error")
}
