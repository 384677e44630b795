package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/zoonatech/portal-api/internal/models"
	"github.com/zoonatech/portal-api/internal/services"
	pkghttp "github.com/zoonatech/portal-api/pkg/http"
)

const maxResumeSize = 10 << 20 // 10 MiB

// CareersServiceInterface defines the interface for job applications
type CareersServiceInterface interface {
	Submit(ctx context.Context, app models.JobApplication, resume services.Attachment) error
}

// CareersHandler handles the job application form.
type CareersHandler struct {
	service CareersServiceInterface
}

func NewCareersHandler(service CareersServiceInterface) *CareersHandler {
	return &CareersHandler{service: service}
}

// ApplicationForm carries the careers form fields.
type ApplicationForm struct {
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	KeySkills string `validate:"required"`
	JoinUs    string `validate:"required"`
}

// Apply handles POST /apply (multipart form with a resume file).
func (h *CareersHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid multipart body")
		return
	}

	form := ApplicationForm{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		KeySkills: strings.TrimSpace(r.FormValue("keyskills")),
		JoinUs:    strings.TrimSpace(r.FormValue("join_us")),
	}
	if err := ValidateRequest(form); err != nil {
		pkghttp.WriteUnprocessable(w, err.Error())
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		pkghttp.WriteUnprocessable(w, "validation failed: Resume: this field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Failed to read resume file")
		return
	}

	app := models.JobApplication{
		Name:      form.Name,
		Email:     form.Email,
		KeySkills: form.KeySkills,
		JoinUs:    form.JoinUs,
	}
	resume := services.Attachment{Filename: header.Filename, Content: content}

	if err := h.service.Submit(r.Context(), app, resume); err != nil {
		if errors.Is(err, models.ErrUnsupportedFileType) {
			pkghttp.WriteBadRequest(w, "Only PDF, DOC, DOCX files are allowed")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to send job application email")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message":         "Job application submitted successfully!",
		"resume_filename": header.Filename,
	})
}
