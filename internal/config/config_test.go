package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CREDS", `{"type":"service_account"}`)
	t.Setenv("EMAIL_FROM", "noreply@zoonatech.com")
	t.Setenv("ADMIN_EMAIL", "admin@zoonatech.com")
	t.Setenv("LOGIN_SPREADSHEET_ID", "login-id")
	t.Setenv("CONTACT_SPREADSHEET_ID", "contact-id")
	t.Setenv("CAREERS_SPREADSHEET_ID", "careers-id")
	t.Setenv("REGISTRATION_SPREADSHEET_ID", "registration-id")
	t.Setenv("PAYMENT_SPREADSHEET_ID", "payment-id")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port: got %v, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Env: got %v, want development", cfg.Server.Env)
	}
	if cfg.Auth.OTPTTL != 2*time.Minute {
		t.Errorf("OTPTTL: got %v, want 2m", cfg.Auth.OTPTTL)
	}
	if cfg.Auth.SecureCookies {
		t.Error("SecureCookies should be false outside production")
	}
	if cfg.Sheets.Registrations.SpreadsheetID != "registration-id" {
		t.Errorf("Registrations spreadsheet: got %v", cfg.Sheets.Registrations.SpreadsheetID)
	}
	if cfg.Sheets.Registrations.Sheet != "Sheet1" {
		t.Errorf("Registrations tab: got %v, want Sheet1", cfg.Sheets.Registrations.Sheet)
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		t.Error("development should allow localhost origins")
	}
}

func TestLoad_ProductionSettings(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://zoonatech.com, https://www.zoonatech.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if !cfg.Auth.SecureCookies {
		t.Error("SecureCookies should be true in production")
	}
	want := []string{"https://zoonatech.com", "https://www.zoonatech.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins: got %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d]: got %v, want %v", i, cfg.Server.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	required := []string{
		"EMAIL_FROM",
		"ADMIN_EMAIL",
		"LOGIN_SPREADSHEET_ID",
		"CONTACT_SPREADSHEET_ID",
		"CAREERS_SPREADSHEET_ID",
		"REGISTRATION_SPREADSHEET_ID",
		"PAYMENT_SPREADSHEET_ID",
	}

	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail without %s", missing)
			}
		})
	}
}

func TestLoad_CredentialsFromFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_CREDS", "")

	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account","from":"file"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_CREDS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if string(cfg.Sheets.CredentialsJSON) != `{"type":"service_account","from":"file"}` {
		t.Errorf("CredentialsJSON: got %s", cfg.Sheets.CredentialsJSON)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_CREDS", "")
	t.Setenv("GOOGLE_CREDS_FILE", "")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without credentials")
	}
}

func TestLoad_CustomOTPTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OTP_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.Auth.OTPTTL != 5*time.Minute {
		t.Errorf("OTPTTL: got %v, want 5m", cfg.Auth.OTPTTL)
	}
}
