package models

import "time"

// TimeLayout is the timestamp format written to every sheet column.
const TimeLayout = "2006-01-02 15:04:05"

// Now formats the current local time with TimeLayout.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// User is a row in the registration sheet. Row is the 1-based sheet row the
// record was read from; it is zero for users that have not been persisted yet.
type User struct {
	Serial         int
	Username       string
	Email          string
	PasswordHash   string
	Mobile         string
	RegisteredTime string
	Row            int
}

// Session is an in-process login session resolved from the session_id cookie.
type Session struct {
	Token     string `json:"-"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	LoginTime string `json:"login_time"`
}

// LoginRecord is a row in the login-history sheet. A record with an empty
// LogoutTime is an open login.
type LoginRecord struct {
	Serial     int
	Username   string
	Email      string
	LoginTime  string
	LogoutTime string
	HoursSpent string
	Row        int
}

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name               string
	Phone              string
	Email              string
	ProjectType        string
	ProjectDescription string
	SubmittedAt        string
}

// JobApplication is a careers form submission. The resume itself is emailed,
// not stored; only the filename lands in the sheet.
type JobApplication struct {
	Name           string
	Email          string
	KeySkills      string
	JoinUs         string
	ResumeFilename string
	SubmittedAt    string
}

// Payment is a payment notice recorded for a logged-in user.
type Payment struct {
	Email           string
	SelectedProject string
	Amount          float64
	PaymentTime     string
	Reference       string
}
