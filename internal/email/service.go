package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/cinehub/booking-api/internal/logging"
)

type Service struct {
	smtpHost     string
	smtpPort     string
	smtpUser     string
	smtpPassword string
	fromEmail    string
	fromName     string
}

func NewService(smtpHost, smtpPort, smtpUser, smtpPassword, fromName string) *Service {
	return &Service{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromEmail:    smtpUser,
		fromName:     fromName,
	}
}

// SendPasswordResetOTP mails the one-time code to the account holder.
// This method is designed to be called in a goroutine.
func (s *Service) SendPasswordResetOTP(ctx context.Context, toEmail, name, otp string) error {
	logger := logging.GetLoggerFromContext(ctx)

	subject := "Password Reset OTP - Cinema Booking"
	body, err := s.renderOTPTemplate(name, otp)
	if err != nil {
		logger.Error("failed to render otp email template", "error", err)
		return fmt.Errorf("render template: %w", err)
	}

	if err := s.sendEmail(toEmail, subject, body); err != nil {
		logger.Error("failed to send otp email", "email", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}

	logger.Info("otp email sent", "email", toEmail)
	return nil
}

func (s *Service) sendEmail(to, subject, body string) error {
	auth := smtp.PlainAuth("", s.smtpUser, s.smtpPassword, s.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		s.fromName, s.fromEmail, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg)
}

func (s *Service) renderOTPTemplate(name, otp string) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, sans-serif;
            background-color: #141436;
            color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            background-color: #1a1a3e;
            padding: 30px;
            text-align: center;
            border-radius: 5px 5px 0 0;
            border-bottom: 2px solid #ff3d00;
        }
        .content {
            background-color: #2d2d5f;
            padding: 30px;
            border-radius: 0 0 5px 5px;
        }
        .otp-code {
            font-size: 30px;
            font-weight: 800;
            color: #ff3d00;
            letter-spacing: 8px;
            text-align: center;
            padding: 20px;
            margin: 20px 0;
            border: 2px solid #ff3d00;
            border-radius: 10px;
        }
        .expiry {
            color: #ff6b6b;
            text-align: center;
            font-weight: 600;
        }
        .footer {
            margin-top: 30px;
            font-size: 12px;
            color: #888888;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Cinema Booking</h1>
    </div>
    <div class="content">
        <h2>Hello, {{.Name}}!</h2>
        <p>We received a request to reset your password. Use the One-Time Password below to complete your password reset.</p>

        <div class="otp-code">{{.OTP}}</div>
        <p class="expiry">Valid for 10 minutes</p>

        <p>If you didn't request this, you can safely ignore this email. Never share your OTP with anyone.</p>
    </div>
    <div class="footer">
        <p>This is an automated message, please do not reply.</p>
        <p>&copy; Cinema Booking System. All rights reserved.</p>
    </div>
</body>
</html>
`

	t, err := template.New("otp").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Name string
		OTP  string
	}{
		Name: name,
		OTP:  otp,
	}

	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
