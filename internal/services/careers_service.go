package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/zoonatech/portal-api/internal/models"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// allowedResumeExtensions are the only file types accepted for resumes.
var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationSink records job applications in the recruits sheet.
type ApplicationSink interface {
	Append(ctx context.Context, app models.JobApplication) error
}

// CareersService forwards a job application to the admin with the resume
// attached, thanks the applicant, and records the row. The sheet append is
// best-effort: the application already reached the admin by email.
type CareersService struct {
	applications ApplicationSink
	notifier     Notifier
	adminEmail   string
	logger       *slog.Logger
}

func NewCareersService(applications ApplicationSink, notifier Notifier, adminEmail string, logger *slog.Logger) *CareersService {
	return &CareersService{
		applications: applications,
		notifier:     notifier,
		adminEmail:   adminEmail,
		logger:       logger,
	}
}

// Submit validates the resume extension and processes the application.
func (s *CareersService) Submit(ctx context.Context, app models.JobApplication, resume Attachment) error {
	ext := strings.ToLower(filepath.Ext(resume.Filename))
	if !allowedResumeExtensions[ext] {
		return models.ErrUnsupportedFileType
	}
	app.ResumeFilename = resume.Filename
	app.SubmittedAt = models.Now()

	if err := s.notifier.Send(ctx, applicationAdminMessage(s.adminEmail, app, resume)); err != nil {
		return fmt.Errorf("failed to send application email: %w", err)
	}

	if err := s.notifier.Send(ctx, applicantThankYouMessage(app.Email, app.Name)); err != nil {
		return fmt.Errorf("failed to send applicant thank-you email: %w", err)
	}

	if err := s.applications.Append(ctx, app); err != nil {
		s.logger.Error("failed to store job application",
			slog.String("email", pkglogger.SanitizedEmail(app.Email)),
			slog.Any("error", err))
	}

	s.logger.Info("job application submitted",
		slog.String("email", pkglogger.SanitizedEmail(app.Email)),
		slog.String("resume", resume.Filename))
	return nil
}
