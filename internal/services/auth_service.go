package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zoonatech/portal-api/internal/auth"
	"github.com/zoonatech/portal-api/internal/models"
	pkgauth "github.com/zoonatech/portal-api/pkg/auth"
	pkglogger "github.com/zoonatech/portal-api/pkg/logger"
)

// UserStore is the registration-sheet surface the services need.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// LoginLedger records login/logout events in the login-history sheet.
type LoginLedger interface {
	Open(ctx context.Context, username, email, loginTime string) error
	CloseLatest(ctx context.Context, email string, logoutTime time.Time) (string, error)
}

// AuthResponse is the body returned by register and login.
type AuthResponse struct {
	Message   string `json:"message"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	LoginTime string `json:"login_time"`
	SessionID string `json:"session_id,omitempty"`
}

// LogoutResponse is the body returned by logout.
type LogoutResponse struct {
	Message    string `json:"message"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	LogoutTime string `json:"logout_time"`
}

// AuthService handles registration, login, logout and session lookup.
type AuthService struct {
	users    UserStore
	ledger   LoginLedger
	sessions *auth.SessionRegistry
	notifier Notifier
	logger   *slog.Logger
}

func NewAuthService(users UserStore, ledger LoginLedger, sessions *auth.SessionRegistry, notifier Notifier, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		ledger:   ledger,
		sessions: sessions,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates a registration row, sends the welcome email, opens a login
// ledger row and starts a session. The welcome email and ledger append are
// best-effort: registration has already been recorded when they run.
func (s *AuthService) Register(ctx context.Context, email, mobile, password, retypePassword string) (*AuthResponse, error) {
	if password != retypePassword {
		return nil, models.ErrPasswordMismatch
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		PasswordHash:   passwordHash,
		Mobile:         mobile,
		RegisteredTime: models.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.notifier.Send(ctx, welcomeMessage(email, username)); err != nil {
		s.logger.Warn("failed to send welcome email",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
	}

	session, err := s.sessions.Create(username, email)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Open(ctx, username, email, session.LoginTime); err != nil {
		s.logger.Warn("failed to record login history after registration",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
	}

	s.logger.Info("user registered", slog.String("email", pkglogger.SanitizedEmail(email)))

	return &AuthResponse{
		Message:   "Registration successful & logged in",
		Username:  username,
		Email:     email,
		LoginTime: session.LoginTime,
		SessionID: session.Token,
	}, nil
}

// Login verifies credentials against the registration sheet, opens a ledger
// row and starts a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed", slog.String("email", pkglogger.SanitizedEmail(email)))
		return nil, models.ErrUnauthorized
	}

	session, err := s.sessions.Create(user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Open(ctx, user.Username, user.Email, session.LoginTime); err != nil {
		s.sessions.Destroy(session.Token)
		return nil, fmt.Errorf("failed to record login history: %w", err)
	}

	s.logger.Info("user logged in", slog.String("email", pkglogger.SanitizedEmail(user.Email)))

	return &AuthResponse{
		Message:   "Login successful!",
		Username:  user.Username,
		Email:     user.Email,
		LoginTime: session.LoginTime,
		SessionID: session.Token,
	}, nil
}

// Logout closes the most recent open ledger row for the session's email and
// destroys the session. Returns models.ErrUnauthorized when the token does
// not resolve to a session.
func (s *AuthService) Logout(ctx context.Context, token string) (*LogoutResponse, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, models.ErrUnauthorized
	}

	logoutTime := time.Now()
	if _, err := s.ledger.CloseLatest(ctx, session.Email, logoutTime); err != nil {
		return nil, fmt.Errorf("failed to update logout history: %w", err)
	}

	s.sessions.Destroy(token)

	s.logger.Info("user logged out", slog.String("email", pkglogger.SanitizedEmail(session.Email)))

	return &LogoutResponse{
		Message:    "Logout successful!",
		Username:   session.Username,
		Email:      session.Email,
		LogoutTime: logoutTime.Format(models.TimeLayout),
	}, nil
}

// CurrentUser resolves the session behind a token.
func (s *AuthService) CurrentUser(token string) (*models.Session, error) {
	session, ok := s.sessions.Resolve(token)
	if !ok {
		return nil, models.ErrUnauthorized
	}
	return session, nil
}
