package services

import (
	"fmt"
	"html"
	"time"

	"github.com/zoonatech/portal-api/internal/models"
)

// Message builders for every transactional email the portal sends. User input
// is HTML-escaped before interpolation.

func contactThankYouMessage(to, name, projectType string) Message {
	body := fmt.Sprintf(`<html>
<body>
    <p>Hi %s,</p>
    <p>Thank you for reaching out to Zoona Technologies.</p>
    <p>We've received your project request regarding: <b>%s</b>.</p>
    <p>Our team will review the details and connect with you within 24 hours.</p>
    <br>
    <p>Best regards,<br>Team Zoona Technologies</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(projectType))

	return Message{
		To:       to,
		Subject:  "Thank You for Registering",
		HTMLBody: body,
	}
}

func contactAdminMessage(admin string, req models.ContactRequest) Message {
	body := fmt.Sprintf(`<html>
<body>
    <p><b>New Contact Request</b></p>
    <p><b>Name:</b> %s</p>
    <p><b>Email:</b> %s</p>
    <p><b>Phone:</b> %s</p>
    <p><b>Service:</b> %s</p>
    <p><b>Message:</b> %s</p>
    <br>
    <p>Regards,<br>Zoona Portal</p>
</body>
</html>`,
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Phone),
		html.EscapeString(req.ProjectType),
		html.EscapeString(req.ProjectDescription))

	return Message{
		To:       admin,
		Subject:  "New Contact Request",
		HTMLBody: body,
	}
}

func applicationAdminMessage(admin string, app models.JobApplication, resume Attachment) Message {
	body := fmt.Sprintf(`<html>
<body>
    <p><b>New Job Application Received</b></p>
    <p><b>Name:</b> %s</p>
    <p><b>Email:</b> %s</p>
    <p><b>Key Skills:</b> %s</p>
    <p><b>Join Us?:</b> %s</p>
    <br>
    <p>Resume is attached with this email.</p>
    <br>
    <p>Regards,<br>Zoona Careers Portal</p>
</body>
</html>`,
		html.EscapeString(app.Name),
		html.EscapeString(app.Email),
		html.EscapeString(app.KeySkills),
		html.EscapeString(app.JoinUs))

	return Message{
		To:         admin,
		Subject:    "New Job Application",
		HTMLBody:   body,
		Attachment: &resume,
	}
}

func applicantThankYouMessage(to, name string) Message {
	body := fmt.Sprintf(`Dear %s,

Thank you for applying to our company.
Our HR team will review your resume and get back to you if shortlisted.

Best Regards,
HR Team
`, name)

	return Message{
		To:       to,
		Subject:  "Thank You for Applying",
		TextBody: body,
	}
}

func welcomeMessage(to, username string) Message {
	body := fmt.Sprintf(`Hello %s,

Thank you for registering with us!
We're excited to have you on board.

Regards,
Zoona Portal Team
`, username)

	return Message{
		To:       to,
		Subject:  "Registration Successful",
		TextBody: body,
	}
}

func otpMessage(to, code string, ttl time.Duration) Message {
	body := fmt.Sprintf(`Hello,

Your OTP is: %s
It is valid for %d minutes.

Regards,
Team
`, code, int(ttl.Minutes()))

	return Message{
		To:       to,
		Subject:  "Your OTP for Password Reset",
		TextBody: body,
	}
}

func paymentAdminMessage(admin string, p models.Payment) Message {
	body := fmt.Sprintf(`<html>
<body>
    <h2>Zoona Technologies - New Payment Received</h2>
    <p><b>Payment Details:</b></p>
    <table border="1" cellspacing="0" cellpadding="5">
        <tr><td><b>Email</b></td><td>%s</td></tr>
        <tr><td><b>Project</b></td><td>%s</td></tr>
        <tr><td><b>Amount</b></td><td>%.2f</td></tr>
        <tr><td><b>Payment Time</b></td><td>%s</td></tr>
        <tr><td><b>Reference</b></td><td>%s</td></tr>
    </table>
    <p>--<br/>Zoona Technologies Payment System</p>
</body>
</html>`,
		html.EscapeString(p.Email),
		html.EscapeString(p.SelectedProject),
		p.Amount,
		p.PaymentTime,
		p.Reference)

	return Message{
		To:       admin,
		Subject:  "New Payment Notification - Zoona Technologies",
		HTMLBody: body,
	}
}

func paymentReceiptMessage(p models.Payment) Message {
	body := fmt.Sprintf(`<html>
<body>
    <h2>Thank You for Your Payment!</h2>
    <p>Dear %s,</p>
    <p>We have successfully received your payment for the project <b>%s</b>.</p>
    <p><b>Amount Paid:</b> %.2f<br/>
    <b>Payment Time:</b> %s<br/>
    <b>Payment Reference:</b> %s</p>
    <p>We sincerely appreciate your trust in <b>Zoona Technologies</b>.</p>
    <br/>
    <p>Best Regards,<br/>Finance Team<br/>Zoona Technologies</p>
</body>
</html>`,
		html.EscapeString(p.Email),
		html.EscapeString(p.SelectedProject),
		p.Amount,
		p.PaymentTime,
		p.Reference)

	return Message{
		To:       p.Email,
		Subject:  "Payment Confirmation - Zoona Technologies",
		HTMLBody: body,
	}
}
