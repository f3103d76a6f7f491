package utils

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

const companyName = "WODLog"

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #d35400; margin: 0;">WODLog</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>If you did not request this code you can ignore this email.</p>
		</div>
	</div>
</body>
</html>
`

// Mailer sends HTML email over SMTP with PLAIN auth.
type Mailer struct {
	From     string
	Password string
	Host     string
	Port     string
	Logger   *zap.Logger

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// Configured reports whether every SMTP setting is present.
func (m *Mailer) Configured() bool {
	return m != nil && m.From != "" && m.Password != "" && m.Host != "" && m.Port != ""
}

func (m *Mailer) sendEmail(to []string, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("email configuration not set")
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", companyName, m.From),
		"To: " + strings.Join(to, ","),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"X-Mailer: WODLog-Mailer",
	}
	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + body

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(m.Host+":"+m.Port, auth, m.From, to, []byte(message)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	if m.Logger != nil {
		m.Logger.Debug("email sent", zap.Strings("to", to), zap.String("subject", subject))
	}
	return nil
}

// SendLoginCode emails a one-time login code.
func (m *Mailer) SendLoginCode(_ context.Context, email, code string) error {
	subject := "Your Login Code - WODLog"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Your Login Code</h1>
					<p>Hello,</p>
					<p>Use the code below to sign in. It expires in 10 minutes and works once.</p>
					<div style="text-align: center; margin: 30px 0;">
						<span style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</span>
					</div>
					<p>See you at the box,<br>The WODLog Team</p>
				</div>`+emailFooter,
		code)

	return m.sendEmail([]string{email}, subject, body)
}
