package email

import (
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendInvoiceReadyEmail notifies a customer that their invoice document is ready
func (s *EmailService) SendInvoiceReadyEmail(toEmail, toName, serial string) error {
	htmlContent, err := s.renderInvoiceReadyEmail(toName, serial)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s is ready", serial)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderInvoiceReadyEmail renders the invoice-ready email template
func (s *EmailService) renderInvoiceReadyEmail(name, serial string) (string, error) {
	tmpl, err := template.New("invoice_ready").Parse(invoiceReadyTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Name        string
		Serial      string
		FrontendURL string
	}{
		Name:        name,
		Serial:      serial,
		FrontendURL: strings.TrimRight(s.config.FrontendURL, "/"),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}

const invoiceReadyTemplate = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px; border-radius: 8px;">
    <h2 style="color: #333333;">Hello {{.Name}},</h2>
    <p style="color: #555555; line-height: 1.6;">
      Your invoice <strong>{{.Serial}}</strong> has been issued and is ready for review.
    </p>
    <p style="margin: 30px 0;">
      <a href="{{.FrontendURL}}/invoices"
         style="background-color: #2563eb; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">
        View your invoices
      </a>
    </p>
    <p style="color: #999999; font-size: 12px;">
      If you were not expecting this invoice, please contact us.
    </p>
  </div>
</body>
</html>
`
