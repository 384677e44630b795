package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/services"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

// NewFormRequest creates a form-encoded HTTP request for testing
func NewFormRequest(t *testing.T, method, target string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// NewJSONRequest creates an HTTP request with a JSON body for testing
func NewJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewMultipartRequest creates a multipart request with form fields and one
// file part named "resume".
func NewMultipartRequest(t *testing.T, target string, fields map[string]string, filename string, fileContent []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("failed to create file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			t.Fatalf("failed to write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// WithSessionCookie attaches a session cookie to the request
func WithSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: token})
	return req
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	RegisterFunc    func(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error)
	LoginFunc       func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	LogoutFunc      func(ctx context.Context, token string) (*services.LogoutResponse, error)
	CurrentUserFunc func(token string) (*models.Session, error)
}

func (m *MockAuthService) Register(ctx context.Context, email, mobile, password, retypePassword string) (*services.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, mobile, password, retypePassword)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, models.ErrUnauthorized
}

func (m *MockAuthService) Logout(ctx context.Context, token string) (*services.LogoutResponse, error) {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil, models.ErrUnauthorized
}

func (m *MockAuthService) CurrentUser(token string) (*models.Session, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(token)
	}
	return nil, models.ErrUnauthorized
}

// MockContactService implements ContactServiceInterface for testing
type MockContactService struct {
	SubmitFunc func(ctx context.Context, req models.ContactRequest) error
}

func (m *MockContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil
}

// MockCareersService implements CareersServiceInterface for testing
type MockCareersService struct {
	SubmitFunc func(ctx context.Context, app models.JobApplication, resume services.Attachment) error
}

func (m *MockCareersService) Submit(ctx context.Context, app models.JobApplication, resume services.Attachment) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, app, resume)
	}
	return nil
}

// MockPaymentService implements PaymentServiceInterface for testing
type MockPaymentService struct {
	SubmitFunc func(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error)
}

func (m *MockPaymentService) Submit(ctx context.Context, email, selectedProject string, amount float64) (*models.Payment, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, email, selectedProject, amount)
	}
	return &models.Payment{}, nil
}

// MockResetService implements ResetServiceInterface for testing
type MockResetService struct {
	RequestFunc func(ctx context.Context, email string) error
	VerifyFunc  func(ctx context.Context, email, code string) error
	ResetFunc   func(ctx context.Context, email, newPassword string) error
}

func (m *MockResetService) Request(ctx context.Context, email string) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, email)
	}
	return nil
}

func (m *MockResetService) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	return nil
}

func (m *MockResetService) Reset(ctx context.Context, email, newPassword string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, email, newPassword)
	}
	return nil
}
