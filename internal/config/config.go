package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/zoonatech/portal-api/internal/sheets"
)

type Config struct {
	Server ServerConfig
	Sheets SheetsConfig
	Email  EmailConfig
	Auth   AuthConfig
	Sentry SentryConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// SheetsConfig names the spreadsheets that back each record type. Each table
// lives in its own spreadsheet, with an optional tab name override.
type SheetsConfig struct {
	CredentialsJSON []byte
	LoginHistory    sheets.TableRef
	Contacts        sheets.TableRef
	Applications    sheets.TableRef
	Registrations   sheets.TableRef
	Payments        sheets.TableRef
}

type EmailConfig struct {
	AWSRegion    string
	FromAddress  string
	AdminAddress string
}

type AuthConfig struct {
	OTPTTL        time.Duration
	SecureCookies bool
}

type SentryConfig struct {
	DSN string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	creds, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			AllowedOrigins: parseAllowedOrigins(env),
		},
		Sheets: SheetsConfig{
			CredentialsJSON: creds,
			LoginHistory:    tableRef("LOGIN_SPREADSHEET_ID", "LOGIN_SHEET_NAME", "Sheet1"),
			Contacts:        tableRef("CONTACT_SPREADSHEET_ID", "CONTACT_SHEET_NAME", "Sheet1"),
			Applications:    tableRef("CAREERS_SPREADSHEET_ID", "CAREERS_SHEET_NAME", "Sheet1"),
			Registrations:   tableRef("REGISTRATION_SPREADSHEET_ID", "REGISTRATION_SHEET_NAME", "Sheet1"),
			Payments:        tableRef("PAYMENT_SPREADSHEET_ID", "PAYMENT_SHEET_NAME", "Sheet1"),
		},
		Email: EmailConfig{
			AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
			FromAddress:  getEnv("EMAIL_FROM", ""),
			AdminAddress: getEnv("ADMIN_EMAIL", ""),
		},
		Auth: AuthConfig{
			OTPTTL:        getEnvAsDuration("OTP_TTL", 2*time.Minute),
			SecureCookies: env == "production",
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}

	if cfg.Email.FromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM is required")
	}
	if cfg.Email.AdminAddress == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required")
	}

	for name, ref := range map[string]sheets.TableRef{
		"LOGIN_SPREADSHEET_ID":        cfg.Sheets.LoginHistory,
		"CONTACT_SPREADSHEET_ID":      cfg.Sheets.Contacts,
		"CAREERS_SPREADSHEET_ID":      cfg.Sheets.Applications,
		"REGISTRATION_SPREADSHEET_ID": cfg.Sheets.Registrations,
		"PAYMENT_SPREADSHEET_ID":      cfg.Sheets.Payments,
	} {
		if ref.SpreadsheetID == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	return cfg, nil
}

// loadCredentials reads the service account key, either inline via
// GOOGLE_CREDS or from the file named by GOOGLE_CREDS_FILE.
func loadCredentials() ([]byte, error) {
	if inline := os.Getenv("GOOGLE_CREDS"); inline != "" {
		return []byte(inline), nil
	}

	if path := os.Getenv("GOOGLE_CREDS_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read GOOGLE_CREDS_FILE: %w", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("GOOGLE_CREDS or GOOGLE_CREDS_FILE is required")
}

func tableRef(idKey, sheetKey, defaultSheet string) sheets.TableRef {
	return sheets.TableRef{
		SpreadsheetID: os.Getenv(idKey),
		Sheet:         getEnv(sheetKey, defaultSheet),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{}
		}
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:8080",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:8080",
	}
}
