package services

import (
	"context"
	"time"

	"github.com/zoonatech/portal-api/internal/models"
)

// MockUserStore implements UserStore for testing
type MockUserStore struct {
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) error
	UpdatePasswordFunc func(ctx context.Context, email, passwordHash string) error
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, email, passwordHash)
	}
	return nil
}

// MockLoginLedger implements LoginLedger for testing
type MockLoginLedger struct {
	OpenFunc        func(ctx context.Context, username, email, loginTime string) error
	CloseLatestFunc func(ctx context.Context, email string, logoutTime time.Time) (string, error)
}

func (m *MockLoginLedger) Open(ctx context.Context, username, email, loginTime string) error {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, username, email, loginTime)
	}
	return nil
}

func (m *MockLoginLedger) CloseLatest(ctx context.Context, email string, logoutTime time.Time) (string, error) {
	if m.CloseLatestFunc != nil {
		return m.CloseLatestFunc(ctx, email, logoutTime)
	}
	return "00:00:00", nil
}

// MockNotifier implements Notifier for testing and records sent messages
type MockNotifier struct {
	SendFunc func(ctx context.Context, msg Message) error
	Sent     []Message
}

func (m *MockNotifier) Send(ctx context.Context, msg Message) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, msg); err != nil {
			return err
		}
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// MockContactSink implements ContactSink for testing
type MockContactSink struct {
	AppendFunc func(ctx context.Context, req models.ContactRequest) error
	Appended   []models.ContactRequest
}

func (m *MockContactSink) Append(ctx context.Context, req models.ContactRequest) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, req); err != nil {
			return err
		}
	}
	m.Appended = append(m.Appended, req)
	return nil
}

// MockApplicationSink implements ApplicationSink for testing
type MockApplicationSink struct {
	AppendFunc func(ctx context.Context, app models.JobApplication) error
	Appended   []models.JobApplication
}

func (m *MockApplicationSink) Append(ctx context.Context, app models.JobApplication) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, app); err != nil {
			return err
		}
	}
	m.Appended = append(m.Appended, app)
	return nil
}

// MockPaymentSink implements PaymentSink for testing
type MockPaymentSink struct {
	AppendFunc func(ctx context.Context, p models.Payment) error
	Appended   []models.Payment
}

func (m *MockPaymentSink) Append(ctx context.Context, p models.Payment) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, p); err != nil {
			return err
		}
	}
	m.Appended = append(m.Appended, p)
	return nil
}
