package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zoonatech/portal-api/internal/models"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

// ContactServiceInterface defines the interface for contact submissions
type ContactServiceInterface interface {
	Submit(ctx context.Context, req models.ContactRequest) error
}

// ContactHandler handles the contact-us form.
type ContactHandler struct {
	service ContactServiceInterface
}

func NewContactHandler(service ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// ContactForm carries the contact form fields; all are required.
type ContactForm struct {
	Name               string `validate:"required"`
	Phone              string `validate:"required"`
	Email              string `validate:"required,email"`
	ProjectType        string `validate:"required"`
	ProjectDescription string `validate:"required"`
}

// Submit handles POST /contactus.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid form body")
		return
	}

	form := ContactForm{
		Name:               strings.TrimSpace(r.FormValue("name")),
		Phone:              strings.TrimSpace(r.FormValue("phone")),
		Email:              strings.TrimSpace(r.FormValue("email")),
		ProjectType:        strings.TrimSpace(r.FormValue("project_type")),
		ProjectDescription: strings.TrimSpace(r.FormValue("project_description")),
	}
	if err := ValidateRequest(form); err != nil {
		pkghttp.WriteUnprocessable(w, err.Error())
		return
	}

	req := models.ContactRequest{
		Name:               form.Name,
		Phone:              form.Phone,
		Email:              form.Email,
		ProjectType:        form.ProjectType,
		ProjectDescription: form.ProjectDescription,
	}
	if err := h.service.Submit(r.Context(), req); err != nil {
		pkghttp.WriteInternalError(w, "Failed to send one or more emails")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User details received successfully!",
	})
}
